package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// LogViewerData 日誌頁渲染所需的快照
type LogViewerData struct {
	Viewport viewport.Model
	Mode     autoscroll.Mode
	PausedAt string
	Source   string
	Filter   string
	Visible  int
	Total    int
	Err      error
	Status   string
}

// RenderLogViewer 日誌頁：頭部一行、滾動區域、位置一行、提示一行、狀態一行
func RenderLogViewer(d LogViewerData) string {
	muted := lipgloss.NewStyle().Foreground(style.Snow3)

	// 頭部：模式指示器 + 來源 + 過濾條件
	var badge string
	if d.Mode == autoscroll.Live {
		badge = style.RenderBadge("● LIVE", "live")
	} else {
		label := "❚❚ PAUSED"
		if d.PausedAt != "" {
			label += " " + d.PausedAt
		}
		badge = style.RenderBadge(label, "paused")
	}

	source := d.Source
	if source == "" {
		source = "等待日誌文件…"
	}
	header := badge + " " + muted.Render(source)
	if d.Filter != "" {
		header += " " + style.RenderBadge(d.Filter, "filter")
	}

	content := d.Viewport.View()
	if d.Total == 0 {
		placeholder := "暫無日誌數據或加載中..."
		if d.Err != nil {
			placeholder = "✗ " + d.Err.Error()
		}
		content = lipgloss.NewStyle().
			Foreground(style.Muted).
			Height(d.Viewport.Height).
			Render(placeholder)
	}

	percent := int(d.Viewport.ScrollPercent() * 100)
	position := muted.Render(fmt.Sprintf(" 第 %d-%d 行 / 共 %d 行 (緩衝 %d) | %d%%",
		firstLine(d), lastLine(d), d.Visible, d.Total, percent))

	hints := renderHints(
		"↑/↓", "滾動",
		"PgUp/PgDn", "翻頁",
		"g/G", "首/尾",
		"l", "跟隨",
		"/", "過濾",
		"y", "複製",
		"Esc", "返回",
	)

	status := ""
	if d.Status != "" {
		status = style.InfoText(" " + d.Status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, position, hints, status)
}

func firstLine(d LogViewerData) int {
	if d.Visible == 0 {
		return 0
	}
	return d.Viewport.YOffset + 1
}

func lastLine(d LogViewerData) int {
	last := d.Viewport.YOffset + d.Viewport.Height
	if last > d.Visible {
		last = d.Visible
	}
	return last
}
