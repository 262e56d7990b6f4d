package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline 迷你折線 (不帶樣式)，max <= 0 時取數據最大值
func Sparkline(data []float64, max float64) string {
	if len(data) == 0 {
		return ""
	}

	if max <= 0 {
		for _, v := range data {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	var sb strings.Builder
	for _, v := range data {
		if v < 0 {
			v = 0
		}
		i := int((v / max) * float64(len(sparkChars)-1))
		if i >= len(sparkChars) {
			i = len(sparkChars) - 1
		}
		sb.WriteRune(sparkChars[i])
	}
	return sb.String()
}

// RenderBadge 渲染徽章
func RenderBadge(text string, badgeType string) string {
	switch badgeType {
	case "live":
		return LiveBadgeStyle.Render(text)
	case "paused":
		return PausedBadgeStyle.Render(text)
	case "error":
		return ErrorBadgeStyle.Render(text)
	case "filter":
		return FilterBadgeStyle.Render(text)
	default:
		return text
	}
}

// RenderBox 帶標題的盒子
func RenderBox(title, content string, width int) string {
	if width < 10 {
		width = 40
	}

	box := PanelStyle.Width(width)
	head := lipgloss.NewStyle().Bold(true).Foreground(Aurora1)

	return box.Render(head.Render(title) + "\n" + content)
}
