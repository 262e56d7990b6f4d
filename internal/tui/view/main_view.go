package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/tui/constants"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// RenderMainView 渲染主視圖
func RenderMainView(cfg *domainConfig.Config, version string, ti textinput.Model, statusMsg string) string {
	var sections []string

	sections = append(sections, renderHeader(version))
	sections = append(sections, renderConfigPanel(cfg))
	sections = append(sections, renderMainMenu())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		strings.Join(sections, "\n"),
		RenderStatusMessage(statusMsg),
		RenderTextInput(ti),
	)
}

func renderHeader(version string) string {
	subtitle := lipgloss.NewStyle().
		Foreground(style.Aurora3).
		Width(50).
		AlignHorizontal(lipgloss.Center).
		Render(":: 任務隊列管理面板 ::")

	if version == "" {
		version = "dev"
	} else if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	versionLine := lipgloss.NewStyle().
		Foreground(style.Snow3).
		Width(50).
		AlignHorizontal(lipgloss.Center).
		Render(version)

	return lipgloss.JoinVertical(lipgloss.Left, RenderLogo(), "", subtitle, versionLine, "")
}

// renderConfigPanel 當前生效的連接與日誌配置
func renderConfigPanel(cfg *domainConfig.Config) string {
	labelStyle := lipgloss.NewStyle().Foreground(style.Snow3).Width(8)
	valueStyle := lipgloss.NewStyle().Foreground(style.Snow2)

	row := func(label, value string) string {
		return " " + labelStyle.Render(label) + valueStyle.Render(value)
	}

	if cfg == nil {
		return row("配置", "未加載")
	}

	var intervals []string
	for _, iv := range cfg.ChartIntervals() {
		intervals = append(intervals, string(iv))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		row("服務端", cfg.Server.BaseURL),
		row("日誌", cfg.Logs.Path),
		row("圖表", fmt.Sprintf("%s (每 %s 刷新)", strings.Join(intervals, ", "), cfg.Charts.RefreshInterval)),
		"",
	)
}

func renderMainMenu() string {
	items := []MenuItem{
		{Num: constants.KeyMain_Logs, Text: "實時日誌", Desc: "(/admin/logs)", TextColor: style.Snow1},
		{Num: constants.KeyMain_Jobs, Text: "任務儀表盤", Desc: "(/admin/jobs)", TextColor: style.Snow1},
		{Num: constants.KeyMain_Workers, Text: "Worker 列表", Desc: "(/admin/jobs/workers)", TextColor: style.Snow1},
		{},
		{Num: constants.KeyMain_Reload, Text: "重新加載配置", TextColor: style.Aurora2},
		{Num: constants.KeyMain_Quit, Text: "退出", TextColor: style.StatusRed},
	}
	return renderMenuWithAlignment(items, false)
}
