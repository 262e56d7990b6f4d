package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/domain/logline"
	"github.com/Yat-Muk/queuedash/internal/tui/chart"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

func plain(s string) string { return ansi.Strip(s) }

func logViewport(lines, height int) viewport.Model {
	vp := viewport.New(80, height)
	rows := make([]string, lines)
	for i := range rows {
		rows[i] = "line"
	}
	vp.SetContent(strings.Join(rows, "\n"))
	return vp
}

func TestRenderLogViewer_Badges(t *testing.T) {
	vp := logViewport(30, 10)
	vp.SetYOffset(20)

	out := plain(RenderLogViewer(LogViewerData{
		Viewport: vp,
		Mode:     autoscroll.Live,
		Source:   "/var/log/app.log",
		Visible:  30,
		Total:    30,
	}))
	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, "/var/log/app.log")
	assert.Contains(t, out, "第 21-30 行 / 共 30 行")

	out = plain(RenderLogViewer(LogViewerData{
		Viewport: vp,
		Mode:     autoscroll.Paused,
		PausedAt: "12:00:01",
		Filter:   "level=INFO",
		Visible:  30,
		Total:    30,
	}))
	assert.Contains(t, out, "PAUSED 12:00:01")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "等待日誌文件")
}

func TestRenderLogViewer_EmptyShowsError(t *testing.T) {
	out := plain(RenderLogViewer(LogViewerData{
		Viewport: viewport.New(80, 5),
		Err:      errors.New("log file not found"),
	}))
	assert.Contains(t, out, "✗ log file not found")
	assert.Contains(t, out, "第 0-0 行")
}

func TestRenderLogFilter(t *testing.T) {
	out := plain(RenderLogFilter(logline.Filter{}, textinput.New(), ""))
	assert.Contains(t, out, "當前條件:")
	assert.Contains(t, out, " 無 ")
	assert.Contains(t, out, "隱藏 DEBUG")
}

func TestRenderJobs(t *testing.T) {
	pending := chart.NewPieAsBars()
	_ = pending.SetData([]jobs.QueueCount{{Name: "mail", Value: 3}})

	out := plain(RenderJobs(JobsViewData{
		Widgets:     []chart.Widget{pending, chart.NewColumns(jobs.Week)},
		Width:       100,
		LastUpdated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
	}))
	assert.Contains(t, out, "mail")
	assert.Contains(t, out, "更新於 03:04:05")

	out = plain(RenderJobs(JobsViewData{Err: errors.New("boom")}))
	assert.Contains(t, out, "拉取失敗: boom")
}

func TestRenderWorkers(t *testing.T) {
	now := time.Now()
	z := zone.New()
	defer z.Close()

	d := WorkersViewData{
		Workers: []jobs.Worker{
			{ID: "w-1", Queue: "mail", Workers: 2, Version: "1.0", JobTypes: []string{"send"}, LastSeen: now},
			{ID: "w-2", Queue: "pdf", LastSeen: now.Add(-2 * time.Hour)},
		},
		IsOpen: func(id string) bool { return id == "w-1" },
		Now:    now,
		Zone:   z,
	}

	raw := RenderWorkers(d)
	out := plain(z.Scan(raw))

	assert.Contains(t, out, "w-1")
	assert.Contains(t, out, "任務類型 send")
	assert.Contains(t, out, "2 hours ago")
	assert.NotContains(t, out, "任務類型 無", "收起的行不顯示詳情")
}

func TestRenderWorkers_Empty(t *testing.T) {
	out := plain(RenderWorkers(WorkersViewData{}))
	assert.Contains(t, out, "暫無 Worker")

	out = plain(RenderWorkers(WorkersViewData{Loading: true, Spinner: "*"}))
	assert.Contains(t, out, "加載中")
}

func TestRenderMainView(t *testing.T) {
	out := plain(RenderMainView(domainConfig.DefaultConfig(), "1.2.3", textinput.New(), "✓ 配置加載成功"))
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "實時日誌")
	assert.Contains(t, out, "配置加載成功")
}

func TestRenderMenuWithAlignment(t *testing.T) {
	items := []MenuItem{
		{Num: "1", Text: "實時日誌", Desc: "(/admin/logs)"},
		{Num: "2", Text: "Jobs", Desc: "(/admin/jobs)"},
		{},
		{Num: "q", Text: "退出"},
	}
	lines := strings.Split(plain(renderMenuWithAlignment(items, false)), "\n")

	// 帶附註的行附註列對齊
	col := func(l string) int { return runewidth.StringWidth(l[:strings.Index(l, "(/admin")]) }
	assert.Equal(t, col(lines[0]), col(lines[1]))
	assert.Contains(t, lines[2], "┄")
	assert.Equal(t, " q. 退出", lines[3])
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, style.StatusRed, statusColor("✗ 配置無效"))
	assert.Equal(t, style.StatusYellow, statusColor("⚠️ 日誌跟蹤已停止"))
	assert.Equal(t, style.StatusGreen, statusColor("✓ 已複製 3 行"))
	assert.Equal(t, style.Aurora3, statusColor("正在重新加載配置…"))
}
