package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// 標題
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	LogoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Aurora2).
			Padding(0, 2)

	// 幫助與狀態欄
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info)

	// 面板
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// 選中行
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Polar1).
				Background(Primary).
				Bold(true)

	// 跟隨指示器
	LiveBadgeStyle = lipgloss.NewStyle().
			Foreground(Polar1).
			Background(StatusGreen).
			Padding(0, 1).
			Bold(true)

	PausedBadgeStyle = lipgloss.NewStyle().
				Foreground(Polar1).
				Background(StatusYellow).
				Padding(0, 1).
				Bold(true)

	ErrorBadgeStyle = lipgloss.NewStyle().
			Foreground(Snow1).
			Background(StatusRed).
			Padding(0, 1).
			Bold(true)

	FilterBadgeStyle = lipgloss.NewStyle().
				Foreground(Snow1).
				Background(Polar2).
				Padding(0, 1)
)

// HealthColor Worker 健康狀態顏色
func HealthColor(healthy bool) lipgloss.Color {
	if healthy {
		return Success
	}
	return Error
}
