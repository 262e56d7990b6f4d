package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yat-Muk/queuedash/internal/autoscroll"
	"github.com/Yat-Muk/queuedash/internal/domain/logline"
	"github.com/Yat-Muk/queuedash/internal/tui/constants"
	"github.com/Yat-Muk/queuedash/internal/tui/state"
)

// KeyHandler 核心處理器：負責全局導航和請求分發
type KeyHandler struct {
	stateMgr   *state.Manager
	cmdBuilder *CommandBuilder
}

func NewKeyHandler(stateMgr *state.Manager, cmdBuilder *CommandBuilder) *KeyHandler {
	return &KeyHandler{
		stateMgr:   stateMgr,
		cmdBuilder: cmdBuilder,
	}
}

// Handle 處理全局按鍵
func (h *KeyHandler) Handle(msg tea.KeyMsg, m *state.Manager) (*state.Manager, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// === 數據頁直接按鍵，不經輸入框 ===
	switch m.UI().CurrentView {
	case state.LogView:
		return m, h.handleLogKey(m, msg.String())
	case state.JobsView:
		return m, h.handleJobsKey(m, msg.String())
	case state.WorkersView:
		return m, h.handleWorkersKey(m, msg.String())
	}

	switch msg.Type {
	case tea.KeyEnter:
		return h.handleInputSubmit(m, m.UI().CurrentView)

	case tea.KeyEsc:
		return h.handleInputEscape(m, m.UI().CurrentView)

	default:
		return m, m.UI().UpdateInput(msg)
	}
}

// ========================================
// 日誌頁
// ========================================

func (h *KeyHandler) handleLogKey(m *state.Manager, key string) tea.Cmd {
	logs := m.Logs()
	page := logs.Viewport.Height
	half := page / 2
	if half < 1 {
		half = 1
	}

	switch {
	case constants.Match(key, constants.KeysLog_Up):
		logs.Scroll(autoscroll.KeyArrowUp, 1)
	case constants.Match(key, constants.KeysLog_Down):
		logs.Scroll(autoscroll.KeyArrowDown, 1)
	case constants.Match(key, constants.KeysLog_PageUp):
		logs.Scroll(autoscroll.KeyPageUp, page)
	case constants.Match(key, constants.KeysLog_PageDown):
		logs.Scroll(autoscroll.KeyPageDown, page)
	case constants.Match(key, constants.KeysLog_HalfUp):
		logs.Scroll(autoscroll.KeyPageUp, half)
	case constants.Match(key, constants.KeysLog_HalfDown):
		logs.Scroll(autoscroll.KeyPageDown, half)
	case constants.Match(key, constants.KeysLog_Home):
		logs.Scroll(autoscroll.KeyHome, 0)
	case constants.Match(key, constants.KeysLog_End):
		logs.Scroll(autoscroll.KeyEnd, 0)

	case key == constants.KeyLog_Live:
		logs.ResumeLive()
		m.UI().SetStatus(state.StatusInfo, "已恢復實時跟隨", "", true)

	case key == constants.KeyLog_Filter:
		return m.Navigate(state.LogFilterView)

	case key == constants.KeyLog_Copy:
		return h.cmdBuilder.CopyLogsCmd(m)

	case key == constants.KeyLog_Back, key == "q":
		return m.Navigate(state.MainMenuView)
	}
	return nil
}

// ========================================
// 任務頁
// ========================================

func (h *KeyHandler) handleJobsKey(m *state.Manager, key string) tea.Cmd {
	switch key {
	case constants.KeyJobs_Refresh:
		return h.cmdBuilder.RefreshChartsCmd(m)
	case constants.KeyJobs_Workers:
		return h.cmdBuilder.OpenWorkersCmd(m)
	case "esc", "q":
		return m.Navigate(state.MainMenuView)
	}
	return nil
}

func (h *KeyHandler) handleWorkersKey(m *state.Manager, key string) tea.Cmd {
	ws := m.Workers()

	switch key {
	case "up", "k":
		ws.Move(-1)
	case "down", "j":
		ws.Move(1)
	case constants.KeyWorkers_Toggle, " ":
		if w, ok := ws.Selected(); ok {
			ws.Toggle(w.ID)
		}
	case constants.KeyWorkers_Refresh:
		return h.cmdBuilder.RefreshWorkersCmd(m)
	case "esc", "q":
		// 返回上一級路由
		return h.cmdBuilder.OpenJobsCmd(m)
	}
	return nil
}

// ========================================
// 核心分發邏輯 (Enter 觸發)
// ========================================

func (h *KeyHandler) handleInputSubmit(m *state.Manager, view state.View) (*state.Manager, tea.Cmd) {
	input := strings.TrimSpace(m.UI().GetInputBuffer())
	m.UI().ClearInput()

	if input == "" {
		return m, nil
	}

	switch view {
	case state.MainMenuView:
		return h.submitMainMenu(m, input)
	case state.LogFilterView:
		return h.submitLogFilter(m, input)
	}
	return m, nil
}

func (h *KeyHandler) submitMainMenu(m *state.Manager, input string) (*state.Manager, tea.Cmd) {
	switch input {
	case constants.KeyMain_Logs:
		return m, h.cmdBuilder.OpenLogsCmd(m)
	case constants.KeyMain_Jobs:
		return m, h.cmdBuilder.OpenJobsCmd(m)
	case constants.KeyMain_Workers:
		return m, h.cmdBuilder.OpenWorkersCmd(m)
	case constants.KeyMain_Reload:
		m.UI().SetStatus(state.StatusInfo, "正在重新加載配置…", "", true)
		return m, h.cmdBuilder.LoadConfigCmd(false)
	case constants.KeyMain_Quit:
		return m, tea.Quit
	default:
		m.UI().SetStatus(state.StatusError, "✗ 無效選項: "+input, "", true)
		return m, nil
	}
}

func (h *KeyHandler) submitLogFilter(m *state.Manager, input string) (*state.Manager, tea.Cmd) {
	f := m.Logs().Filter

	switch input {
	case constants.KeyFilter_LevelInfo:
		f.Level = "INFO"
	case constants.KeyFilter_LevelAll:
		f.Level = "DEBUG"
	case constants.KeyFilter_Clear:
		f = logline.Filter{}
	default:
		f.Msg = input
	}

	m.Logs().SetFilter(f)
	cmd := m.Navigate(state.LogView)
	m.UI().SetStatus(state.StatusSuccess, "✓ 過濾條件已更新", "", true)
	return m, cmd
}

// handleInputEscape Esc 返回上一級
func (h *KeyHandler) handleInputEscape(m *state.Manager, view state.View) (*state.Manager, tea.Cmd) {
	switch view {
	case state.LogFilterView:
		return m, m.Navigate(state.LogView)
	case state.MainMenuView:
		m.UI().ClearInput()
		m.UI().ClearStatus()
		return m, nil
	}
	return m, m.Navigate(state.MainMenuView)
}

// logFilterFromLevel 配置中的默認級別轉為過濾條件
func logFilterFromLevel(level string, f logline.Filter) logline.Filter {
	f.Level = strings.ToUpper(strings.TrimSpace(level))
	return f
}
