package state

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/chart"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

// HookJobs 任務頁在生命週期表中的名稱
const HookJobs = "jobs"

// JobsState 任務儀表盤狀態
type JobsState struct {
	Pending   *chart.PieAsBars
	Processed []*chart.Columns

	Fetching    bool
	LastUpdated time.Time
	Err         error

	intervals []jobs.Interval
	refresh   *tick.Task
	fetch     func() tea.Cmd
	seq       uint64
}

// NewJobsState 每個時間粒度一個處理量圖表
func NewJobsState(intervals []jobs.Interval) *JobsState {
	s := &JobsState{}
	s.SetIntervals(intervals)
	return s
}

// SetIntervals 重建圖表，數據回到加載中
func (s *JobsState) SetIntervals(intervals []jobs.Interval) {
	if len(intervals) == 0 {
		intervals = []jobs.Interval{jobs.Hour}
	}
	s.intervals = append([]jobs.Interval(nil), intervals...)
	s.Pending = chart.NewPieAsBars()
	s.Processed = make([]*chart.Columns, len(intervals))
	for i, iv := range intervals {
		s.Processed[i] = chart.NewColumns(iv)
	}
}

// Intervals 圖表時間粒度
func (s *JobsState) Intervals() []jobs.Interval {
	return append([]jobs.Interval(nil), s.intervals...)
}

// Widgets 按展示順序返回所有圖表
func (s *JobsState) Widgets() []chart.Widget {
	out := make([]chart.Widget, 0, len(s.Processed)+1)
	out = append(out, s.Pending)
	for _, c := range s.Processed {
		out = append(out, c)
	}
	return out
}

// Attach 進入任務頁：每個週期調用 fetch 刷新數據
// 已綁定時不重複註冊
func (s *JobsState) Attach(sched *tick.Scheduler, hooks *lifecycle.Hooks, period time.Duration, fetch func() tea.Cmd) {
	if s.Attached() {
		return
	}

	s.fetch = fetch
	s.refresh = sched.ScheduleCmd(period, fetch)

	route := autoscroll.Route{Path: RouteJobs, Rule: autoscroll.MatchExact}
	hooks.Add(HookJobs, func(dest string) bool {
		if route.Covers(dest) {
			return false
		}
		s.Detach()
		return true
	})
}

// Detach 停止定時刷新，可重複調用
func (s *JobsState) Detach() {
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
	s.Fetching = false
}

// Attached 是否正在定時刷新
func (s *JobsState) Attached() bool {
	return s.refresh != nil && !s.refresh.Stopped()
}

// SetPeriod 綁定中且週期變化時按新週期重新排程
func (s *JobsState) SetPeriod(sched *tick.Scheduler, period time.Duration) bool {
	if !s.Attached() || period <= 0 || s.refresh.Period() == period {
		return false
	}
	s.refresh.Stop()
	s.refresh = sched.ScheduleCmd(period, s.fetch)
	return true
}

// BeginFetch 開始一輪拉取，返回請求序號
func (s *JobsState) BeginFetch() uint64 {
	s.seq++
	s.Fetching = true
	return s.seq
}

// Apply 寫入一輪拉取結果，過期序號直接丟棄
func (s *JobsState) Apply(seq uint64, pending []jobs.QueueCount, processed map[jobs.Interval]jobs.ProcessedSeries, err error, now time.Time) bool {
	if seq != s.seq {
		return false
	}
	s.Fetching = false
	s.Err = err
	if err != nil {
		return true
	}

	// 格式不對的圖表保留上一輪數據
	var errs []error
	if err := s.Pending.SetData(pending); err != nil {
		errs = append(errs, err)
	}
	for i, iv := range s.intervals {
		if series, ok := processed[iv]; ok {
			if err := s.Processed[i].SetData(series); err != nil {
				errs = append(errs, err)
			}
		}
	}
	s.Err = errors.Join(errs...)
	if s.Err == nil {
		s.LastUpdated = now
	}
	return true
}
