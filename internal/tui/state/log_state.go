package state

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/domain/logline"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/style"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

// HookLogs 日誌頁在生命週期表中的名稱
const HookLogs = "logs"

// logChromeHeight 日誌頁除滾動區域外佔用的行數 (標題、狀態、幫助)
const logChromeHeight = 4

// LogState 日誌頁狀態
type LogState struct {
	Viewport      viewport.Model
	ViewportReady bool

	Filter logline.Filter
	Source string
	Err    error

	// PausedAt 最近一次進入 Paused 的時間，Live 時為零值
	PausedAt time.Time

	entries  []logline.Entry
	maxLines int

	ctrl   *autoscroll.Controller
	tailID uint64
	tail   io.Closer
	lines  <-chan []string
}

// NewLogState maxLines 為保留的日誌條數上限
func NewLogState(maxLines int) *LogState {
	if maxLines <= 0 {
		maxLines = 1000
	}
	return &LogState{
		Viewport: viewport.New(80, 20),
		maxLines: maxLines,
	}
}

// Resize 根據窗口尺寸調整滾動區域，並按新寬度重排內容
func (s *LogState) Resize(width, height int) {
	h := height - logChromeHeight
	if h < 1 {
		h = 1
	}
	s.Viewport.Width = width
	s.Viewport.Height = h
	s.ViewportReady = true
	s.rebuild()
}

// SetMaxLines 配置熱更新後調整上限
func (s *LogState) SetMaxLines(n int) {
	if n <= 0 || n == s.maxLines {
		return
	}
	s.maxLines = n
	if s.trim() {
		s.rebuild()
	}
}

// Attach 進入日誌頁：綁定自動滾動並開啟新的跟蹤會話
// 返回會話號 (過期會話的消息以此丟棄)，fresh 表示新開的會話
func (s *LogState) Attach(sched *tick.Scheduler, hooks *lifecycle.Hooks, period time.Duration, log *zap.Logger) (id uint64, fresh bool) {
	if s.Attached() {
		return s.tailID, false
	}

	s.closeTail()
	s.tailID++
	s.entries = nil
	s.Source = ""
	s.Err = nil
	s.PausedAt = time.Time{}
	s.rebuild()

	ctrl := autoscroll.New(&viewportAdapter{vp: &s.Viewport}, schedulerAdapter{s: sched}, autoscroll.Options{
		Period:       period,
		Route:        autoscroll.Route{Path: RouteLogs, Rule: autoscroll.MatchPrefix},
		Log:          log,
		OnModeChange: s.onModeChange,
	})
	s.ctrl = ctrl

	hooks.Add(HookLogs, func(dest string) bool {
		if !ctrl.Leave(dest) {
			return false
		}
		s.closeTail()
		return true
	})
	return s.tailID, true
}

// Detach 停止自動滾動與跟蹤，可重複調用
func (s *LogState) Detach() {
	if s.ctrl != nil {
		s.ctrl.Detach()
	}
	s.closeTail()
}

// Attached 是否處於日誌頁會話中
func (s *LogState) Attached() bool {
	return s.ctrl != nil && s.ctrl.Attached()
}

// Controller 當前自動滾動控制器，未進入過日誌頁時為 nil
func (s *LogState) Controller() *autoscroll.Controller { return s.ctrl }

// Mode 當前跟隨模式
func (s *LogState) Mode() autoscroll.Mode {
	if s.ctrl == nil {
		return autoscroll.Live
	}
	return s.ctrl.Mode()
}

// TailID 當前會話號
func (s *LogState) TailID() uint64 { return s.tailID }

// SetTail 登記跟蹤器，會話已過期返回 false，由調用方關閉
func (s *LogState) SetTail(id uint64, tail io.Closer, lines <-chan []string, source string) bool {
	if !s.Current(id) {
		return false
	}
	s.closeTail()
	s.tail = tail
	s.lines = lines
	s.Source = source
	s.Err = nil
	return true
}

// Lines 當前會話的日誌通道
func (s *LogState) Lines() <-chan []string { return s.lines }

// Current 消息是否屬於仍然有效的會話
func (s *LogState) Current(id uint64) bool {
	return id == s.tailID && s.Attached()
}

// SetTailError 記錄跟蹤失敗
func (s *LogState) SetTailError(id uint64, err error) bool {
	if !s.Current(id) {
		return false
	}
	s.Err = err
	return true
}

// Append 追加一批原始日誌行
// 超過上限從頭部丟棄；滾動位置只由控制器與用戶改變
func (s *LogState) Append(id uint64, lines []string) bool {
	if !s.Current(id) {
		return false
	}
	for _, raw := range lines {
		s.entries = append(s.entries, logline.Parse(raw))
	}
	s.trim()
	s.rebuild()
	return true
}

// Scroll 鍵盤翻閱：先移動，位置有變化時上報滾動，再上報按鍵
func (s *LogState) Scroll(k autoscroll.Key, rows int) {
	if !s.Attached() {
		return
	}

	before := s.Viewport.YOffset
	switch k {
	case autoscroll.KeyArrowUp, autoscroll.KeyPageUp:
		s.Viewport.SetYOffset(before - rows)
	case autoscroll.KeyArrowDown, autoscroll.KeyPageDown:
		s.Viewport.SetYOffset(before + rows)
	case autoscroll.KeyHome:
		s.Viewport.SetYOffset(0)
	case autoscroll.KeyEnd:
		s.Viewport.SetYOffset(s.Viewport.TotalLineCount())
	}

	if s.Viewport.YOffset != before {
		s.ctrl.HandleScroll()
	}
	s.ctrl.HandleKey(k)
}

// Wheel 滾輪翻閱，delta 為負表示向上
func (s *LogState) Wheel(delta int) {
	if !s.Attached() {
		return
	}
	s.Viewport.SetYOffset(s.Viewport.YOffset + delta)
	s.ctrl.HandleWheel()
}

// ResumeLive 顯式恢復跟隨
func (s *LogState) ResumeLive() {
	if s.Attached() {
		s.ctrl.ResumeLive()
	}
}

// SetFilter 更新過濾條件並重排內容
func (s *LogState) SetFilter(f logline.Filter) {
	s.Filter = f
	s.rebuild()
}

// Total 緩衝的日誌條數
func (s *LogState) Total() int { return len(s.entries) }

// Visible 通過過濾的日誌
func (s *LogState) Visible() []logline.Entry {
	return s.Filter.Apply(s.entries)
}

// PlainText 當前可見日誌的純文本，用於複製
func (s *LogState) PlainText() string {
	visible := s.Visible()
	lines := make([]string, len(visible))
	for i, e := range visible {
		lines[i] = e.Text()
	}
	return strings.Join(lines, "\n")
}

func (s *LogState) onModeChange(m autoscroll.Mode) {
	if m == autoscroll.Paused {
		s.PausedAt = time.Now()
	} else {
		s.PausedAt = time.Time{}
	}
}

func (s *LogState) trim() bool {
	n := len(s.entries) - s.maxLines
	if n <= 0 {
		return false
	}
	s.entries = append([]logline.Entry(nil), s.entries[n:]...)
	return true
}

func (s *LogState) rebuild() {
	s.Viewport.SetContent(style.RenderLogLines(s.Visible(), s.Viewport.Width))
}

func (s *LogState) closeTail() {
	if s.tail == nil {
		return
	}
	_ = s.tail.Close()
	s.tail = nil
	s.lines = nil
}

// viewportAdapter 把 bubbles 視口暴露給自動滾動控制器
type viewportAdapter struct {
	vp *viewport.Model
}

func (a *viewportAdapter) Offset() int          { return a.vp.YOffset }
func (a *viewportAdapter) VisibleHeight() int   { return a.vp.Height }
func (a *viewportAdapter) ContentHeight() int   { return a.vp.TotalLineCount() }
func (a *viewportAdapter) SetOffset(offset int) { a.vp.SetYOffset(offset) }

// schedulerAdapter 讓控制器的渲染節拍跑在 Update 循環上
type schedulerAdapter struct {
	s *tick.Scheduler
}

func (a schedulerAdapter) Schedule(period time.Duration, fn func()) autoscroll.Timer {
	return a.s.Schedule(period, fn)
}
