package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/queuedash/internal/domain/logline"
)

var (
	levelError = lipgloss.NewStyle().Foreground(StatusRed)
	levelWarn  = lipgloss.NewStyle().Foreground(StatusYellow)
	levelInfo  = lipgloss.NewStyle().Foreground(Snow1)
	levelDebug = lipgloss.NewStyle().Foreground(Muted)
)

// LevelStyle 日誌級別對應的樣式
func LevelStyle(l logline.Level) lipgloss.Style {
	switch l {
	case logline.LevelError:
		return levelError
	case logline.LevelWarn:
		return levelWarn
	case logline.LevelDebug:
		return levelDebug
	default:
		return levelInfo
	}
}

// RenderLogLine 按級別著色一行日誌，width 為可用列數
func RenderLogLine(e logline.Entry, width int) string {
	return LevelStyle(e.Level).Render(e.Format(width))
}

// RenderLogLines 拼接多行日誌，每條日誌恰好佔一行
func RenderLogLines(entries []logline.Entry, width int) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = RenderLogLine(e, width)
	}
	return strings.Join(lines, "\n")
}
