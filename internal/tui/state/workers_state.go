package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

// HookWorkers Worker 頁在生命週期表中的名稱
const HookWorkers = "workers"

// WorkersState Worker 列表狀態
type WorkersState struct {
	Workers     []jobs.Worker
	Cursor      int
	Loading     bool
	LastUpdated time.Time
	Err         error

	open    map[string]bool
	refresh *tick.Task
	fetch   func() tea.Cmd
	seq     uint64
}

func NewWorkersState() *WorkersState {
	return &WorkersState{open: make(map[string]bool)}
}

// Attach 進入 Worker 頁並定時刷新
func (s *WorkersState) Attach(sched *tick.Scheduler, hooks *lifecycle.Hooks, period time.Duration, fetch func() tea.Cmd) {
	if s.Attached() {
		return
	}

	s.Loading = true
	s.fetch = fetch
	s.refresh = sched.ScheduleCmd(period, fetch)

	route := autoscroll.Route{Path: RouteWorkers, Rule: autoscroll.MatchContains}
	hooks.Add(HookWorkers, func(dest string) bool {
		if route.Covers(dest) {
			return false
		}
		s.Detach()
		return true
	})
}

// Detach 停止刷新並收起所有展開的行
func (s *WorkersState) Detach() {
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
	s.open = make(map[string]bool)
	s.Cursor = 0
	s.Loading = false
}

func (s *WorkersState) Attached() bool {
	return s.refresh != nil && !s.refresh.Stopped()
}

// SetPeriod 綁定中且週期變化時按新週期重新排程
func (s *WorkersState) SetPeriod(sched *tick.Scheduler, period time.Duration) bool {
	if !s.Attached() || period <= 0 || s.refresh.Period() == period {
		return false
	}
	s.refresh.Stop()
	s.refresh = sched.ScheduleCmd(period, s.fetch)
	return true
}

// BeginFetch 開始一輪拉取，返回請求序號
func (s *WorkersState) BeginFetch() uint64 {
	s.seq++
	return s.seq
}

// Apply 寫入拉取結果，展開狀態按 ID 保留
func (s *WorkersState) Apply(seq uint64, workers []jobs.Worker, err error, now time.Time) bool {
	if seq != s.seq {
		return false
	}
	s.Loading = false
	s.Err = err
	if err != nil {
		return true
	}

	s.Workers = workers
	s.LastUpdated = now

	present := make(map[string]bool, len(workers))
	for _, w := range workers {
		present[w.ID] = true
	}
	for id := range s.open {
		if !present[id] {
			delete(s.open, id)
		}
	}
	s.clampCursor()
	return true
}

// Move 移動選中行
func (s *WorkersState) Move(delta int) {
	s.Cursor += delta
	s.clampCursor()
}

// Select 按 ID 選中
func (s *WorkersState) Select(id string) bool {
	for i, w := range s.Workers {
		if w.ID == id {
			s.Cursor = i
			return true
		}
	}
	return false
}

// Selected 當前選中的 Worker
func (s *WorkersState) Selected() (jobs.Worker, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Workers) {
		return jobs.Worker{}, false
	}
	return s.Workers[s.Cursor], true
}

// Toggle 展開或收起詳情，返回新的展開狀態
func (s *WorkersState) Toggle(id string) bool {
	if s.open[id] {
		delete(s.open, id)
		return false
	}
	s.open[id] = true
	return true
}

// IsOpen 詳情是否展開
func (s *WorkersState) IsOpen(id string) bool { return s.open[id] }

// OpenCount 展開的行數
func (s *WorkersState) OpenCount() int { return len(s.open) }

func (s *WorkersState) clampCursor() {
	if s.Cursor >= len(s.Workers) {
		s.Cursor = len(s.Workers) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}
