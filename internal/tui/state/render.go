package state

import (
	"fmt"
	"time"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/view"
)

// Render 按當前視圖渲染
func (m *Manager) Render() string {
	statusMsg := m.ui.Status.Message
	if m.ui.Status.Detail != "" {
		statusMsg = fmt.Sprintf("%s\n%s", statusMsg, m.ui.Status.Detail)
	}

	ti := m.ui.TextInput

	switch m.ui.CurrentView {
	case LogView:
		ls := m.logState
		pausedAt := ""
		if !ls.PausedAt.IsZero() {
			pausedAt = ls.PausedAt.Format("15:04:05")
		}
		filter := ""
		if ls.Filter.Active() {
			filter = ls.Filter.String()
		}
		return view.RenderLogViewer(view.LogViewerData{
			Viewport: ls.Viewport,
			Mode:     ls.Mode(),
			PausedAt: pausedAt,
			Source:   ls.Source,
			Filter:   filter,
			Visible:  len(ls.Visible()),
			Total:    ls.Total(),
			Err:      ls.Err,
			Status:   m.ui.Status.Message,
		})

	case LogFilterView:
		return view.RenderLogFilter(m.logState.Filter, ti, statusMsg)

	case JobsView:
		return view.RenderJobs(view.JobsViewData{
			Widgets:     m.jobs.Widgets(),
			Width:       m.ui.Width,
			Fetching:    m.jobs.Fetching,
			Spinner:     m.ui.Spinner.View(),
			LastUpdated: m.jobs.LastUpdated,
			Err:         m.jobs.Err,
			Status:      m.ui.Status.Message,
		})

	case WorkersView:
		return view.RenderWorkers(view.WorkersViewData{
			Workers: m.workers.Workers,
			Cursor:  m.workers.Cursor,
			IsOpen:  m.workers.IsOpen,
			Now:     time.Now(),
			Loading: m.workers.Loading,
			Spinner: m.ui.Spinner.View(),
			Err:     m.workers.Err,
			Status:  m.ui.Status.Message,
			Zone:    m.zone,
		})

	default:
		return view.RenderMainView(m.cfg.Get(), m.version, ti, statusMsg)
	}
}

func sameIntervals(a, b []jobs.Interval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
