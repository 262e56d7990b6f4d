package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextColor 返回使用指定前景色的渲染函數
// 例如 style.TextColor(style.Info)("刷新")
func TextColor(c lipgloss.Color) func(string) string {
	s := lipgloss.NewStyle().Foreground(c)
	return func(str string) string {
		return s.Render(str)
	}
}

func InfoText(s string) string    { return TextColor(Info)(s) }
func SuccessText(s string) string { return TextColor(Success)(s) }
func WarningText(s string) string { return TextColor(Warning)(s) }
func ErrorText(s string) string   { return TextColor(Error)(s) }
func MutedText(s string) string   { return TextColor(Muted)(s) }
func PrimaryText(s string) string { return TextColor(Primary)(s) }

// VisualLength 字符串在終端中的顯示寬度，忽略 ANSI 序列，CJK 按 2 計
func VisualLength(s string) int {
	return ansi.StringWidth(s)
}

// PadRight 按顯示寬度右側補空格
func PadRight(s string, width int) string {
	if n := VisualLength(s); n < width {
		return s + spaces(width-n)
	}
	return s
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
