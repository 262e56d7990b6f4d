package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/queuedash/internal/tui/constants"
	"github.com/Yat-Muk/queuedash/internal/tui/handlers"
	"github.com/Yat-Muk/queuedash/internal/tui/msg"
	"github.com/Yat-Muk/queuedash/internal/tui/state"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
	"github.com/Yat-Muk/queuedash/internal/tui/view"
)

// Router 事件路由器
type Router struct {
	stateMgr   *state.Manager
	keyHandler *handlers.KeyHandler
	cmdBuilder *handlers.CommandBuilder
	log        *zap.Logger
}

// NewRouter 創建路由器
func NewRouter(cfg *handlers.Config) *Router {
	cmdBuilder := handlers.NewCommandBuilder(cfg)
	keyHandler := handlers.NewKeyHandler(cfg.StateMgr, cmdBuilder)

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Router{
		stateMgr:   cfg.StateMgr,
		keyHandler: keyHandler,
		cmdBuilder: cmdBuilder,
		log:        log,
	}
}

// InitModel 用於 Model.Init 調用
func (r *Router) InitModel() tea.Cmd {
	return tea.Batch(
		r.stateMgr.UI().TextInput.Focus(),
		r.stateMgr.UI().Spinner.Tick,
	)
}

// Update 適配 bubbletea 的 Update 簽名
func (r *Router) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := r.routeMessage(message); cmd != nil {
		return nil, cmd
	}
	return nil, nil
}

// View 適配 bubbletea 的 View 簽名，掃描並剝離點擊區域標記
func (r *Router) View() string {
	return r.stateMgr.Zone().Scan(r.stateMgr.Render())
}

// Shutdown 退出前釋放資源
func (r *Router) Shutdown() {
	r.stateMgr.Shutdown()
}

// routeMessage 內部路由邏輯
func (r *Router) routeMessage(message tea.Msg) tea.Cmd {
	m := r.stateMgr

	switch msgType := message.(type) {

	case tea.WindowSizeMsg:
		m.UI().UpdateSize(msgType.Width, msgType.Height)
		m.Logs().Resize(msgType.Width, msgType.Height)
		return nil

	case tea.KeyMsg:
		_, cmd := r.keyHandler.Handle(msgType, m)
		return cmd

	case tea.MouseMsg:
		return r.handleMouse(msgType)

	// 週期任務 (自動滾動節拍、圖表刷新) 都在這裡執行
	case tick.Msg:
		return tea.Batch(
			m.Scheduler().Fire(msgType),
			m.Scheduler().Drain(),
		)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.UI().Spinner, cmd = m.UI().Spinner.Update(message)
		return cmd

	// ========================================
	// 日誌跟蹤
	// ========================================

	case msg.LogTailStartedMsg:
		logs := m.Logs()
		if msgType.Err != nil {
			if !logs.SetTailError(msgType.ID, msgType.Err) {
				return nil
			}
			r.log.Warn("打開日誌失敗", zap.Error(msgType.Err))
			return r.cmdBuilder.RetryTailCmd(msgType.ID)
		}

		if !logs.SetTail(msgType.ID, msgType.Tail, msgType.Lines, msgType.Path) {
			// 會話已過期 (期間離開了日誌頁)
			if msgType.Tail != nil {
				_ = msgType.Tail.Close()
			}
			return nil
		}
		r.log.Info("開始跟蹤日誌", zap.String("file", msgType.Path))
		return r.cmdBuilder.WaitLinesCmd(msgType.ID, msgType.Lines)

	case msg.LogLinesMsg:
		logs := m.Logs()
		if !logs.Append(msgType.ID, msgType.Lines) {
			return nil
		}
		return r.cmdBuilder.WaitLinesCmd(msgType.ID, logs.Lines())

	case msg.LogTailClosedMsg:
		if m.Logs().Current(msgType.ID) {
			m.UI().SetStatus(state.StatusWarn, "⚠️ 日誌跟蹤已停止", "", true)
		}
		return nil

	case msg.LogTailRetryMsg:
		if !m.Logs().Current(msgType.ID) {
			return nil
		}
		return r.cmdBuilder.StartTailCmd(msgType.ID, m.Config())

	case msg.ClipboardMsg:
		switch {
		case msgType.Err != nil:
			m.UI().SetStatus(state.StatusError, fmt.Sprintf("✗ 複製失敗: %v", msgType.Err), "", true)
		case msgType.Lines == 0:
			m.UI().SetStatus(state.StatusWarn, "⚠️ 沒有可複製的日誌", "", true)
		default:
			m.UI().SetStatus(state.StatusSuccess, fmt.Sprintf("✓ 已複製 %d 行", msgType.Lines), "", true)
		}
		return nil

	// ========================================
	// 任務數據
	// ========================================

	case msg.ChartsMsg:
		if m.Jobs().Apply(msgType.Seq, msgType.Pending, msgType.Processed, msgType.Err, msgType.At) && msgType.Err != nil {
			r.log.Warn("拉取圖表數據失敗", zap.Error(msgType.Err))
		}
		return nil

	case msg.WorkersMsg:
		if m.Workers().Apply(msgType.Seq, msgType.Workers, msgType.Err, msgType.At) && msgType.Err != nil {
			r.log.Warn("拉取 Worker 列表失敗", zap.Error(msgType.Err))
		}
		return nil

	// ========================================
	// 配置
	// ========================================

	case msg.ConfigLoadedMsg:
		ui := m.UI()
		if msgType.Err != nil {
			r.log.Error("配置加載失敗", zap.Error(msgType.Err))
			ui.SetStatus(state.StatusError, fmt.Sprintf("✗ 配置加載失敗：%v", msgType.Err), "", true)
			return nil
		}
		if err := m.ApplyConfig(msgType.Config); err != nil {
			ui.SetStatus(state.StatusError, fmt.Sprintf("✗ 配置無效：%v", err), "", true)
			return nil
		}
		if !msgType.Silent {
			ui.SetStatus(state.StatusSuccess, "✓ 配置加載成功", "", true)
		}
		// 刷新週期變化時重新排程的任務
		return m.Scheduler().Drain()

	default:
		return m.UI().UpdateInput(message)
	}
}

// handleMouse 滾輪交給日誌頁，點擊交給 Worker 行
func (r *Router) handleMouse(e tea.MouseMsg) tea.Cmd {
	m := r.stateMgr

	switch m.UI().CurrentView {
	case state.LogView:
		switch e.Button {
		case tea.MouseButtonWheelUp:
			m.Logs().Wheel(-constants.WheelRows)
		case tea.MouseButtonWheelDown:
			m.Logs().Wheel(constants.WheelRows)
		}

	case state.WorkersView:
		if e.Action != tea.MouseActionRelease || e.Button != tea.MouseButtonLeft {
			return nil
		}
		for _, w := range m.Workers().Workers {
			if z := m.Zone().Get(view.WorkerZoneID(w.ID)); z != nil && z.InBounds(e) {
				m.Workers().Select(w.ID)
				m.Workers().Toggle(w.ID)
				return nil
			}
		}
	}
	return nil
}
