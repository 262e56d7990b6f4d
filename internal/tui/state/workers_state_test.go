package state

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

func noFetch() tea.Cmd { return nil }

func TestWorkersState_ApplyKeepsOpenRows(t *testing.T) {
	s := NewWorkersState()
	seq := s.BeginFetch()
	require.True(t, s.Apply(seq, []jobs.Worker{{ID: "a"}, {ID: "b"}}, nil, time.Now()))

	s.Toggle("a")
	s.Toggle("b")

	seq = s.BeginFetch()
	s.Apply(seq, []jobs.Worker{{ID: "a"}}, nil, time.Now())
	assert.True(t, s.IsOpen("a"))
	assert.False(t, s.IsOpen("b"), "消失的 Worker 不再保留展開狀態")
	assert.Equal(t, 1, s.OpenCount())
}

func TestWorkersState_StaleAndError(t *testing.T) {
	s := NewWorkersState()
	old := s.BeginFetch()
	seq := s.BeginFetch()

	assert.False(t, s.Apply(old, []jobs.Worker{{ID: "x"}}, nil, time.Now()))
	assert.Empty(t, s.Workers)

	s.Apply(seq, nil, errors.New("down"), time.Now())
	assert.Error(t, s.Err)
}

func TestWorkersState_Cursor(t *testing.T) {
	s := NewWorkersState()
	s.Apply(s.BeginFetch(), []jobs.Worker{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil, time.Now())

	s.Move(5)
	assert.Equal(t, 2, s.Cursor)
	s.Move(-9)
	assert.Equal(t, 0, s.Cursor)

	assert.True(t, s.Select("b"))
	w, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", w.ID)
	assert.False(t, s.Select("zzz"))

	s.Apply(s.BeginFetch(), []jobs.Worker{{ID: "a"}}, nil, time.Now())
	assert.Equal(t, 0, s.Cursor)
}

func TestWorkersState_LeaveResets(t *testing.T) {
	s := NewWorkersState()
	sched := tick.NewScheduler()
	hooks := lifecycle.NewHooks()

	s.Attach(sched, hooks, time.Second, noFetch)
	s.Apply(s.BeginFetch(), []jobs.Worker{{ID: "a"}}, nil, time.Now())
	s.Toggle("a")

	hooks.Fire(RouteWorkers + "?id=a")
	assert.True(t, s.Attached())

	hooks.Fire(RouteJobs)
	assert.False(t, s.Attached())
	assert.Equal(t, 0, s.OpenCount())
	assert.Equal(t, 0, sched.Active())
}

func TestJobsState_AttachAndApply(t *testing.T) {
	s := NewJobsState([]jobs.Interval{jobs.Hour, jobs.Week})
	sched := tick.NewScheduler()
	hooks := lifecycle.NewHooks()

	s.Attach(sched, hooks, time.Second, noFetch)
	s.Attach(sched, hooks, time.Second, noFetch)
	assert.Equal(t, 1, sched.Active())
	assert.Len(t, s.Widgets(), 3)

	seq := s.BeginFetch()
	now := time.Now()
	require.True(t, s.Apply(seq, []jobs.QueueCount{{Name: "q", Value: 1}}, map[jobs.Interval]jobs.ProcessedSeries{
		jobs.Week: {XAxis: []string{"Mon"}, Series: []int{1}},
	}, nil, now))
	assert.False(t, s.Fetching)
	assert.Equal(t, now, s.LastUpdated)

	hooks.Fire(RouteWorkers)
	assert.False(t, s.Attached())
	assert.Equal(t, 0, sched.Active())
}

func TestJobsState_ApplyRecordsWidgetErrors(t *testing.T) {
	s := NewJobsState([]jobs.Interval{jobs.Week})
	before := time.Now().Add(-time.Minute)
	require.True(t, s.Apply(s.BeginFetch(), []jobs.QueueCount{{Name: "q", Value: 1}}, nil, nil, before))
	require.NoError(t, s.Err)

	seq := s.BeginFetch()
	require.True(t, s.Apply(seq, []jobs.QueueCount{{Name: "bad", Value: -1}}, map[jobs.Interval]jobs.ProcessedSeries{
		jobs.Week: {XAxis: []string{"Mon", "Tue"}, Series: []int{1}},
	}, nil, time.Now()))

	require.Error(t, s.Err)
	assert.Contains(t, s.Err.Error(), "bad")
	assert.Contains(t, s.Err.Error(), "不一致")
	assert.Equal(t, before, s.LastUpdated, "數據無效時不更新時間")

	require.True(t, s.Apply(s.BeginFetch(), []jobs.QueueCount{{Name: "q", Value: 2}}, nil, nil, time.Now()))
	assert.NoError(t, s.Err)
}

func TestRefreshState_SetPeriodRearms(t *testing.T) {
	sched := tick.NewScheduler()
	hooks := lifecycle.NewHooks()

	js := NewJobsState([]jobs.Interval{jobs.Hour})
	assert.False(t, js.SetPeriod(sched, time.Second), "未綁定時不排程")

	js.Attach(sched, hooks, time.Second, noFetch)
	sched.Drain()
	assert.False(t, js.SetPeriod(sched, time.Second))
	assert.False(t, js.SetPeriod(sched, 0))

	require.True(t, js.SetPeriod(sched, 3*time.Second))
	assert.Equal(t, 1, sched.Active())
	assert.NotNil(t, sched.Drain())

	hooks.Fire(RouteWorkers)
	assert.Equal(t, 0, sched.Active(), "離開時停止新任務")

	ws := NewWorkersState()
	ws.Attach(sched, hooks, time.Second, noFetch)
	sched.Drain()
	require.True(t, ws.SetPeriod(sched, 2*time.Second))
	assert.Equal(t, 1, sched.Active())
	hooks.Fire(RouteJobs)
	assert.Equal(t, 0, sched.Active())
}
