// Package chart 任務頁面的終端圖表
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// Widget 圖表組件
type Widget interface {
	Title() string
	SetLoading(loading bool)
	SetData(data any) error
	View(width int) string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(style.Aurora2)
	barStyle   = lipgloss.NewStyle().Foreground(style.Aurora1)
	emptyStyle = lipgloss.NewStyle().Foreground(style.Polar4)
	axisStyle  = lipgloss.NewStyle().Foreground(style.Snow3)
)

const loadingText = "加載中…"

// PieAsBars 各隊列待處理任務佔比，以橫向條形展示
type PieAsBars struct {
	loading bool
	data    []jobs.QueueCount
}

func NewPieAsBars() *PieAsBars { return &PieAsBars{loading: true} }

func (p *PieAsBars) Title() string { return "Pending Jobs per Queue" }

func (p *PieAsBars) SetLoading(loading bool) { p.loading = loading }

func (p *PieAsBars) SetData(data any) error {
	d, ok := data.([]jobs.QueueCount)
	if !ok {
		return fmt.Errorf("PieAsBars 不支持的數據類型 %T", data)
	}
	for _, q := range d {
		if q.Value < 0 {
			return fmt.Errorf("隊列 %s 的任務數為負: %d", q.Name, q.Value)
		}
	}
	p.data = d
	p.loading = false
	return nil
}

func (p *PieAsBars) View(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Title()))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(axisStyle.Render(loadingText))
		return sb.String()
	}
	if len(p.data) == 0 {
		sb.WriteString(axisStyle.Render("沒有隊列"))
		return sb.String()
	}

	total := 0
	nameWidth := 0
	for _, q := range p.data {
		total += q.Value
		if w := runewidth.StringWidth(q.Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 20 {
		nameWidth = 20
	}

	// 名稱 + 空格 + 條 + " 12345 (100.0%)"
	barWidth := width - nameWidth - 18
	if barWidth < 5 {
		barWidth = 5
	}

	for i, q := range p.data {
		pct := 0.0
		if total > 0 {
			pct = float64(q.Value) * 100 / float64(total)
		}
		filled := int(math.Round(float64(barWidth) * pct / 100))

		name := runewidth.FillRight(runewidth.Truncate(q.Name, nameWidth, "…"), nameWidth)
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		sb.WriteString(emptyStyle.Render(strings.Repeat("░", barWidth-filled)))
		sb.WriteString(fmt.Sprintf(" %5d (%5.1f%%)", q.Value, pct))
		if i < len(p.data)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Columns 已處理任務時間序列
// 小時區間畫柱狀圖，其他區間畫折線
type Columns struct {
	interval jobs.Interval
	height   int
	loading  bool
	data     jobs.ProcessedSeries
}

// DefaultHeight 柱狀圖默認高度 (行)
const DefaultHeight = 6

func NewColumns(interval jobs.Interval) *Columns {
	return &Columns{interval: interval, height: DefaultHeight, loading: true}
}

func (c *Columns) Interval() jobs.Interval { return c.interval }

func (c *Columns) Title() string {
	return fmt.Sprintf("Processed Jobs this %s", c.interval)
}

func (c *Columns) SetLoading(loading bool) { c.loading = loading }

func (c *Columns) SetData(data any) error {
	d, ok := data.(jobs.ProcessedSeries)
	if !ok {
		return fmt.Errorf("Columns 不支持的數據類型 %T", data)
	}
	// 空序列表示暫無數據
	if len(d.Series) > 0 && len(d.XAxis) != len(d.Series) {
		return fmt.Errorf("%s: 橫軸 %d 項與數據 %d 項不一致", c.interval, len(d.XAxis), len(d.Series))
	}
	c.data = d
	c.loading = false
	return nil
}

func (c *Columns) View(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.Title()))
	sb.WriteString("\n")

	if c.loading {
		sb.WriteString(axisStyle.Render(loadingText))
		return sb.String()
	}
	n := c.data.Len()
	if n == 0 {
		sb.WriteString(axisStyle.Render("暫無數據"))
		return sb.String()
	}

	values := c.data.Series[:n]
	labels := c.data.XAxis[:n]

	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	colWidth := 1
	for _, l := range labels {
		if w := runewidth.StringWidth(l); w > colWidth {
			colWidth = w
		}
	}
	// 保證至少能容納全部列
	if width > 0 && (colWidth+1)*n > width {
		colWidth = width/n - 1
		if colWidth < 1 {
			colWidth = 1
		}
	}

	if c.interval.Bars() {
		sb.WriteString(c.renderBars(values, max, colWidth))
	} else {
		sb.WriteString(c.renderLine(values, max, colWidth))
	}
	sb.WriteString("\n")

	cells := make([]string, n)
	for i, l := range labels {
		cells[i] = runewidth.FillRight(runewidth.Truncate(l, colWidth, ""), colWidth)
	}
	sb.WriteString(axisStyle.Render(strings.Join(cells, " ")))
	sb.WriteString("\n")
	sb.WriteString(axisStyle.Render(fmt.Sprintf("max %d jobs", max)))
	return sb.String()
}

// renderBars 自上而下逐行畫柱
func (c *Columns) renderBars(values []int, max, colWidth int) string {
	rows := make([]string, c.height)
	for r := 0; r < c.height; r++ {
		level := c.height - r
		cells := make([]string, len(values))
		for i, v := range values {
			h := scale(v, max, c.height)
			if h >= level {
				cells[i] = barStyle.Render(strings.Repeat("█", colWidth))
			} else {
				cells[i] = strings.Repeat(" ", colWidth)
			}
		}
		rows[r] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}

// renderLine 單行迷你折線
func (c *Columns) renderLine(values []int, max, colWidth int) string {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	spark := []rune(style.Sparkline(data, float64(max)))

	cells := make([]string, len(spark))
	for i, r := range spark {
		cells[i] = strings.Repeat(string(r), colWidth)
	}
	return barStyle.Render(strings.Join(cells, " "))
}

// scale 把數值映射到 0..height，非零值至少佔一格
func scale(v, max, height int) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	h := int(math.Round(float64(v) * float64(height) / float64(max)))
	if h < 1 {
		h = 1
	}
	return h
}
