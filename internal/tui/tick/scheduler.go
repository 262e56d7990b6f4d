package tick

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Msg 週期任務到期消息，經由 Bubble Tea 事件循環投遞
type Msg struct {
	ID   uint64
	Time time.Time
}

// Task 已註冊的週期任務
type Task struct {
	id      uint64
	period  time.Duration
	fn      func() tea.Cmd
	stopped bool
	owner   *Scheduler
}

// Stop 同步取消任務，之後到期的 Msg 會被丟棄；可重複調用
func (t *Task) Stop() {
	if t == nil || t.stopped {
		return
	}
	t.stopped = true
	delete(t.owner.tasks, t.id)
}

// Stopped 任務是否已取消
func (t *Task) Stopped() bool { return t.stopped }

// ID 任務標識
func (t *Task) ID() uint64 { return t.id }

// Period 觸發週期
func (t *Task) Period() time.Duration { return t.period }

// Scheduler 基於 tea.Tick 的週期調度器
// 所有方法都只能在 Update 所在的 goroutine 調用
type Scheduler struct {
	next    uint64
	tasks   map[uint64]*Task
	pending []tea.Cmd
}

// NewScheduler 創建調度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[uint64]*Task),
	}
}

// Schedule 註冊週期任務，首次觸發的命令需由 Drain 交給運行時
func (s *Scheduler) Schedule(period time.Duration, fn func()) *Task {
	return s.ScheduleCmd(period, func() tea.Cmd {
		fn()
		return nil
	})
}

// ScheduleCmd 註冊返回命令的週期任務，fn 的命令隨到期消息一起交給運行時
func (s *Scheduler) ScheduleCmd(period time.Duration, fn func() tea.Cmd) *Task {
	s.next++
	t := &Task{
		id:     s.next,
		period: period,
		fn:     fn,
		owner:  s,
	}
	s.tasks[t.id] = t
	s.pending = append(s.pending, s.arm(t))
	return t
}

// Drain 取出待投遞的定時命令
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Fire 處理到期消息：任務仍有效則執行並重新佈置
func (s *Scheduler) Fire(m Msg) tea.Cmd {
	t, ok := s.tasks[m.ID]
	if !ok {
		return nil
	}

	cmd := t.fn()

	// fn 內部可能已停止自身
	if t.stopped {
		return cmd
	}
	if cmd == nil {
		return s.arm(t)
	}
	return tea.Batch(cmd, s.arm(t))
}

// Active 仍有效的任務數量
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

func (s *Scheduler) arm(t *Task) tea.Cmd {
	id := t.id
	return tea.Tick(t.period, func(now time.Time) tea.Msg {
		return Msg{ID: id, Time: now}
	})
}
