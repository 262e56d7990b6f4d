package view

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/queuedash/internal/tui/chart"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// JobsViewData 任務儀表盤快照
type JobsViewData struct {
	Widgets     []chart.Widget
	Width       int
	Fetching    bool
	Spinner     string
	LastUpdated time.Time
	Err         error
	Status      string
}

// RenderJobs 任務儀表盤：每個圖表一個面板
func RenderJobs(d JobsViewData) string {
	width := d.Width
	if width < 40 {
		width = 40
	}
	// 面板邊框與內邊距佔 4 列
	inner := width - 4

	parts := []string{renderSubpageHeader("任務儀表盤")}
	for _, w := range d.Widgets {
		parts = append(parts, style.PanelStyle.Width(inner).Render(w.View(inner-2)))
	}

	muted := lipgloss.NewStyle().Foreground(style.Snow3)
	var info string
	switch {
	case d.Err != nil:
		info = style.ErrorText(" ✗ 拉取失敗: " + d.Err.Error())
	case d.Fetching:
		info = " " + d.Spinner + muted.Render(" 刷新中…")
	case !d.LastUpdated.IsZero():
		info = muted.Render(" 更新於 " + d.LastUpdated.Format("15:04:05"))
	}
	parts = append(parts, info)

	if d.Status != "" {
		parts = append(parts, style.InfoText(" "+d.Status))
	}
	parts = append(parts, renderHints("r", "刷新", "w", "Workers", "Esc", "返回"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
