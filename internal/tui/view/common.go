package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// ruleWidth 分隔線寬度
const ruleWidth = 50

// MenuItem 菜單項，Num 與 Text 都為空時渲染為分隔線
type MenuItem struct {
	Num       string
	Text      string
	Desc      string // 灰色附註，如路由
	TextColor lipgloss.Color
}

func (i MenuItem) separator() bool { return i.Num == "" && i.Text == "" }

// renderMenuWithAlignment 渲染菜單
// alignAll 為 false 時只有帶附註的行參與對齊
func renderMenuWithAlignment(items []MenuItem, alignAll bool) string {
	numWidth, textWidth := 0, 0
	for _, it := range items {
		if it.separator() {
			continue
		}
		numWidth = max(numWidth, len(it.Num))
		if alignAll || it.Desc != "" {
			textWidth = max(textWidth, runewidth.StringWidth(it.Text))
		}
	}

	numStyle := lipgloss.NewStyle().Foreground(style.Aurora3)
	dotStyle := lipgloss.NewStyle().Foreground(style.Snow3)
	descStyle := lipgloss.NewStyle().Foreground(style.Snow3)
	ruleStyle := lipgloss.NewStyle().Foreground(style.Snow2)

	rows := make([]string, 0, len(items)+1)
	for _, it := range items {
		if it.separator() {
			rows = append(rows, ruleStyle.Render(" "+strings.Repeat("┄", ruleWidth-2)))
			continue
		}

		text := it.Text
		if alignAll || it.Desc != "" {
			text = runewidth.FillRight(text, textWidth+2)
		}

		rows = append(rows, fmt.Sprintf(" %s%s %s%s",
			numStyle.Render(fmt.Sprintf("%*s", numWidth, it.Num)),
			dotStyle.Render("."),
			lipgloss.NewStyle().Foreground(it.TextColor).Render(text),
			descStyle.Render(it.Desc),
		))
	}

	rows = append(rows, ruleStyle.Render(strings.Repeat("═", ruleWidth)))
	return strings.Join(rows, "\n")
}

// RenderLogo 渲染 QUEUEDASH Logo
func RenderLogo() string {
	lines := []string{
		" ┏━┓┏┓ ┏┓┏━━┓┏┓ ┏┓┏━━┓ ┳━┓ ┏━┓ ┏━━┓┏┓ ┏┓",
		" ┃ ┃┃┃ ┃┃┃┏━┛┃┃ ┃┃┃┏━┛ ┃ ┃┏┛ ┗┓┃┏━┛┃┃ ┃┃",
		" ┃ ┃┃┃ ┃┃┃┗━┓┃┃ ┃┃┃┗━┓ ┃ ┃┃┏━┓┃┃┗━┓┃┗━┛┃",
		" ┃ ┃┃┃ ┃┃┃┏━┛┃┃ ┃┃┃┏━┛ ┃ ┃┃┣━┫┃┗━┓┃┃┏━┓┃",
		" ┗━╋┛┗━┛┛┗━━┛┗━┛┛┗━━┛ ┻━┛┗┛ ┗┛┗━━┛┗┛ ┗┛",
	}
	// 從上到下 綠 → 藍
	gradient := []lipgloss.Color{style.Lime, "#9BE7A8", "#7FD3E6", style.Azure, "#3C7DD9"}

	for i, line := range lines {
		lines[i] = lipgloss.NewStyle().
			Foreground(gradient[i]).
			Width(ruleWidth).
			AlignHorizontal(lipgloss.Center).
			Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSubpageHeader 子頁面頭部 (不帶 Logo，留出縱向空間給數據)
func renderSubpageHeader(subTitle string) string {
	title := lipgloss.NewStyle().
		Foreground(style.Aurora2).
		Bold(true).
		Render(fmt.Sprintf(" »»» %s «««", subTitle))
	rule := lipgloss.NewStyle().
		Foreground(style.Snow2).
		Render(strings.Repeat("═", ruleWidth))

	return lipgloss.JoinVertical(lipgloss.Left, title, rule)
}

// renderHints 按鍵提示行，pairs 為 (按鍵, 說明) 交替
func renderHints(pairs ...string) string {
	keyStyle := lipgloss.NewStyle().Foreground(style.Snow3)
	descStyle := lipgloss.NewStyle().Foreground(style.Polar4)

	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render(pairs[i]+" ")+descStyle.Render(pairs[i+1]))
	}
	return " " + strings.Join(parts, descStyle.Render(" • "))
}

// statusColor 按消息前綴符號選色
func statusColor(msg string) lipgloss.Color {
	switch {
	case strings.HasPrefix(msg, "✗"):
		return style.StatusRed
	case strings.HasPrefix(msg, "⚠"):
		return style.StatusYellow
	case strings.HasPrefix(msg, "✓"):
		return style.StatusGreen
	default:
		return style.Aurora3
	}
}

// RenderStatusMessage 菜單頁底部的狀態框，多行消息逐行著色
func RenderStatusMessage(msg string) string {
	if msg == "" {
		return ""
	}

	lines := strings.Split(msg, "\n")
	head := lipgloss.NewStyle().Foreground(statusColor(msg))
	rest := lipgloss.NewStyle().Foreground(style.Snow3)
	for i, l := range lines {
		if i == 0 {
			lines[i] = head.Render(l)
		} else {
			lines[i] = rest.Render(l)
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 1).
		Width(ruleWidth + 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func inputPrompt(ti textinput.Model) string {
	prompt := lipgloss.NewStyle().Foreground(style.Snow2).Render(" ❯ 請輸入: ")
	return lipgloss.JoinHorizontal(lipgloss.Left, prompt, ti.View())
}

// RenderTextInput 只有輸入行 (主菜單)
func RenderTextInput(ti textinput.Model) string {
	return inputPrompt(ti)
}

// RenderInputFooter 輸入行加按鍵提示 (子菜單)
func RenderInputFooter(ti textinput.Model) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		inputPrompt(ti),
		"",
		renderHints("Esc", "返回", "Enter", "確認"),
	)
}
