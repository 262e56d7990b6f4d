package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// WorkerZoneID Worker 行的點擊區域標識
func WorkerZoneID(id string) string { return "worker:" + id }

// WorkersViewData Worker 列表快照
type WorkersViewData struct {
	Workers []jobs.Worker
	Cursor  int
	IsOpen  func(id string) bool
	Now     time.Time
	Loading bool
	Spinner string
	Err     error
	Status  string
	Zone    *zone.Manager
}

const (
	colID      = 24
	colQueue   = 14
	colWorkers = 8
	colVersion = 10
)

// RenderWorkers Worker 表格，行可展開查看任務類型
func RenderWorkers(d WorkersViewData) string {
	parts := []string{renderSubpageHeader("Worker 列表")}

	headStyle := lipgloss.NewStyle().Foreground(style.Snow3).Bold(true)
	parts = append(parts, headStyle.Render(formatRow(" ", "ID", "QUEUE", "WORKERS", "VERSION", "LAST SEEN")))

	switch {
	case d.Loading && len(d.Workers) == 0:
		parts = append(parts, " "+d.Spinner+style.MutedText(" 加載中…"))
	case len(d.Workers) == 0:
		parts = append(parts, style.MutedText(" 暫無 Worker"))
	}

	for i, w := range d.Workers {
		open := d.IsOpen != nil && d.IsOpen(w.ID)
		marker := "▸"
		if open {
			marker = "▾"
		}

		status := lipgloss.NewStyle().
			Foreground(style.HealthColor(w.Healthy(d.Now))).
			Render(w.Status(d.Now))
		row := formatRow(marker, w.ID, w.Queue, fmt.Sprint(w.Workers), w.Version, "") + status
		if i == d.Cursor {
			row = style.SelectedRowStyle.Render(formatRow(marker, w.ID, w.Queue, fmt.Sprint(w.Workers), w.Version, w.Status(d.Now)))
		}

		if open {
			row = lipgloss.JoinVertical(lipgloss.Left, row, renderWorkerDetail(w))
		}
		if d.Zone != nil {
			row = d.Zone.Mark(WorkerZoneID(w.ID), row)
		}
		parts = append(parts, row)
	}

	if d.Err != nil {
		parts = append(parts, style.ErrorText(" ✗ 拉取失敗: "+d.Err.Error()))
	}
	if d.Status != "" {
		parts = append(parts, style.InfoText(" "+d.Status))
	}
	parts = append(parts, "", renderHints("↑/↓", "選擇", "Enter/點擊", "展開", "r", "刷新", "Esc", "返回"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderWorkerDetail(w jobs.Worker) string {
	label := lipgloss.NewStyle().Foreground(style.Snow3)
	value := lipgloss.NewStyle().Foreground(style.Snow2)

	types := "無"
	if len(w.JobTypes) > 0 {
		types = strings.Join(w.JobTypes, ", ")
	}
	seen := "從未"
	if !w.LastSeen.IsZero() {
		seen = w.LastSeen.Local().Format("2006-01-02 15:04:05")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"    "+label.Render("任務類型 ")+value.Render(types),
		"    "+label.Render("最後上報 ")+value.Render(seen),
	)
}

func formatRow(marker, id, queue, workers, version, seen string) string {
	cell := func(s string, w int) string {
		return runewidth.FillRight(runewidth.Truncate(s, w-1, "…"), w)
	}
	return " " + marker + " " +
		cell(id, colID) +
		cell(queue, colQueue) +
		cell(workers, colWorkers) +
		cell(version, colVersion) +
		seen
}
