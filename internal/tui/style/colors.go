package style

import "github.com/charmbracelet/lipgloss"

// 基礎配色
var (
	Lime   = lipgloss.Color("#B2FF00") // 螢光綠 - 跟隨中/健康
	Azure  = lipgloss.Color("#1AAEFC") // 天藍 - 標題/Logo
	Lilac  = lipgloss.Color("#DDAAFF") // 紫 - 邊框
	Amber  = lipgloss.Color("#FFDC65") // 黃 - 暫停/警告
	Rose   = lipgloss.Color("#FF007F") // 紅 - 錯誤
	Chalk  = lipgloss.Color("#F3F3F0")
	Silver = lipgloss.Color("#C0C0C0")
	Slate  = lipgloss.Color("#8A8783")
	Ink    = lipgloss.Color("#1a1a1a")
	Coal   = lipgloss.Color("#2a2a2a")
)

// 功能顏色
var (
	Primary   = Azure
	Secondary = Lilac

	StatusGreen  = Lime
	StatusYellow = Amber
	StatusRed    = Rose

	Aurora1 = Lime
	Aurora2 = Azure
	Aurora3 = Lilac

	Snow1 = Chalk
	Snow2 = Silver
	Snow3 = Slate

	Polar1 = Ink
	Polar2 = Coal
	Polar4 = Slate

	Muted   = Slate
	Success = Lime
	Error   = Rose
	Warning = Amber
	Info    = Azure
)
