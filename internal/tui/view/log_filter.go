package view

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/queuedash/internal/domain/logline"
	"github.com/Yat-Muk/queuedash/internal/tui/constants"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// RenderLogFilter 日誌過濾設置頁
func RenderLogFilter(current logline.Filter, ti textinput.Model, statusMsg string) string {
	header := renderSubpageHeader("日誌過濾")

	desc := current.String()
	if desc == "" {
		desc = "無"
	}
	currentLine := lipgloss.NewStyle().Foreground(style.Snow2).
		Render(" 當前條件: ") + style.RenderBadge(desc, "filter")

	items := []MenuItem{
		{Num: constants.KeyFilter_LevelInfo, Text: "隱藏 DEBUG", Desc: "(level=INFO)", TextColor: style.Snow1},
		{Num: constants.KeyFilter_LevelAll, Text: "顯示全部級別", Desc: "(level=DEBUG)", TextColor: style.Snow1},
		{Num: constants.KeyFilter_Clear, Text: "清除全部條件", TextColor: style.StatusYellow},
	}

	tip := lipgloss.NewStyle().Foreground(style.Snow3).
		Render(" 輸入其他文字按消息內容過濾 (不區分大小寫)")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		currentLine,
		"",
		renderMenuWithAlignment(items, true),
		tip,
		RenderStatusMessage(statusMsg),
		RenderInputFooter(ti),
	)
}
