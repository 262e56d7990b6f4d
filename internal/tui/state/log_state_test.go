package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/domain/logline"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

type closeCounter struct{ n int }

func (c *closeCounter) Close() error { c.n++; return nil }

func attachedLogState(t *testing.T, maxLines int) (*LogState, *tick.Scheduler, *lifecycle.Hooks) {
	t.Helper()
	s := NewLogState(maxLines)
	s.Resize(80, 10+logChromeHeight)

	sched := tick.NewScheduler()
	hooks := lifecycle.NewHooks()
	_, fresh := s.Attach(sched, hooks, 100*time.Millisecond, zap.NewNop())
	require.True(t, fresh)
	return s, sched, hooks
}

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("INFO %d", i)
	}
	return out
}

func TestLogState_AttachIsIdempotent(t *testing.T) {
	s, sched, hooks := attachedLogState(t, 100)

	id, fresh := s.Attach(sched, hooks, time.Second, zap.NewNop())
	assert.False(t, fresh)
	assert.Equal(t, s.TailID(), id)
	assert.Equal(t, 1, sched.Active())
}

func TestLogState_TrimsToMaxLines(t *testing.T) {
	s, _, _ := attachedLogState(t, 5)

	require.True(t, s.Append(s.TailID(), numbered(8)))
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, "INFO 3", s.Visible()[0].Raw)

	s.SetMaxLines(2)
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, "INFO 6", s.Visible()[0].Raw)
}

func TestLogState_TickPinsOnlyWhenLive(t *testing.T) {
	s, _, _ := attachedLogState(t, 100)

	s.Append(s.TailID(), numbered(30))
	s.Controller().Tick()
	assert.Equal(t, 20, s.Viewport.YOffset)

	s.Scroll(autoscroll.KeyPageUp, 10)
	assert.Equal(t, autoscroll.Paused, s.Mode())
	assert.False(t, s.PausedAt.IsZero())

	s.Append(s.TailID(), numbered(30))
	s.Controller().Tick()
	assert.Equal(t, 10, s.Viewport.YOffset)

	s.ResumeLive()
	assert.Equal(t, 50, s.Viewport.YOffset)
	assert.True(t, s.PausedAt.IsZero())
}

func TestLogState_LeaveClosesTail(t *testing.T) {
	s, sched, hooks := attachedLogState(t, 100)
	c := &closeCounter{}
	require.True(t, s.SetTail(s.TailID(), c, make(chan []string), "/tmp/a.log"))

	hooks.Fire(RouteLogFilter)
	assert.True(t, s.Attached())
	assert.Equal(t, 0, c.n)

	hooks.Fire(RouteJobs)
	assert.False(t, s.Attached())
	assert.Equal(t, 1, c.n)
	assert.Nil(t, s.Lines())
	assert.Equal(t, 0, sched.Active())

	s.Detach()
	assert.Equal(t, 1, c.n)
}

func TestLogState_NewSessionAfterLeave(t *testing.T) {
	s, sched, hooks := attachedLogState(t, 100)
	old := s.TailID()
	s.Append(old, numbered(3))

	hooks.Fire(RouteMain)
	id, fresh := s.Attach(sched, hooks, time.Second, zap.NewNop())

	assert.True(t, fresh)
	assert.NotEqual(t, old, id)
	assert.Equal(t, 0, s.Total())
	assert.False(t, s.Append(old, numbered(1)), "舊會話的數據應被丟棄")
	assert.False(t, s.SetTail(old, &closeCounter{}, nil, ""))
}

func TestLogState_FilterAndPlainText(t *testing.T) {
	s, _, _ := attachedLogState(t, 100)
	s.Append(s.TailID(), []string{"DEBUG noisy", "INFO order created", "ERROR order failed"})

	s.SetFilter(logline.Filter{Level: "INFO"})
	assert.Len(t, s.Visible(), 2)

	s.SetFilter(logline.Filter{Msg: "FAILED"})
	assert.Equal(t, "ERROR order failed", s.PlainText())
	assert.Equal(t, 3, s.Total())
}

func TestLogState_WheelFollowsEdge(t *testing.T) {
	s, _, _ := attachedLogState(t, 100)
	s.Append(s.TailID(), numbered(30))
	s.Controller().Tick()

	s.Wheel(-3)
	assert.Equal(t, autoscroll.Paused, s.Mode())

	s.Wheel(100)
	assert.Equal(t, autoscroll.Live, s.Mode())
}

func TestLogState_DetachedIgnoresInput(t *testing.T) {
	s := NewLogState(10)
	assert.NotPanics(t, func() {
		s.Scroll(autoscroll.KeyHome, 0)
		s.Wheel(1)
		s.ResumeLive()
		s.Detach()
	})
	assert.Equal(t, autoscroll.Live, s.Mode())
}
