package state

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/queuedash/internal/tui/style"
)

// View 視圖枚舉
type View int

const (
	MainMenuView View = iota
	LogView
	LogFilterView
	JobsView
	WorkersView
)

// 視圖路由，生命週期信號以此判斷是否離開
const (
	RouteMain      = "/admin"
	RouteLogs      = "/admin/logs"
	RouteLogFilter = "/admin/logs/filter"
	RouteJobs      = "/admin/jobs"
	RouteWorkers   = "/admin/jobs/workers"
)

// Path 視圖對應的路由
func (v View) Path() string {
	switch v {
	case LogView:
		return RouteLogs
	case LogFilterView:
		return RouteLogFilter
	case JobsView:
		return RouteJobs
	case WorkersView:
		return RouteWorkers
	default:
		return RouteMain
	}
}

func (v View) String() string {
	switch v {
	case LogView:
		return "logs"
	case LogFilterView:
		return "log-filter"
	case JobsView:
		return "jobs"
	case WorkersView:
		return "workers"
	default:
		return "main"
	}
}

// StatusType 狀態類型
type StatusType int

const (
	StatusReady StatusType = iota
	StatusSuccess
	StatusError
	StatusInfo
	StatusWarn
)

// StatusMsg 狀態欄消息
type StatusMsg struct {
	Type    StatusType
	Message string
	Detail  string
	Show    bool
}

// UIState UI 核心狀態
type UIState struct {
	CurrentView  View
	PreviousView View
	TextInput    textinput.Model
	Spinner      spinner.Model
	Width        int
	Height       int
	Status       StatusMsg
}

// NewUIState 創建 UI 狀態
func NewUIState() *UIState {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Secondary)

	return &UIState{
		CurrentView: MainMenuView,
		TextInput:   ti,
		Spinner:     s,
		Width:       80,
		Height:      24,
		Status:      StatusMsg{Type: StatusReady},
	}
}

// SwitchView 切換視圖
// 只改變顯示狀態，生命週期信號由 Manager.Navigate 負責
func (s *UIState) SwitchView(v View) tea.Cmd {
	s.PreviousView = s.CurrentView
	s.CurrentView = v
	s.TextInput.Reset()

	// 錯誤保留給用戶看
	if s.Status.Type != StatusError {
		s.Status = StatusMsg{Type: StatusReady}
	}

	return s.TextInput.Focus()
}

// SetStatus 設置狀態欄消息
func (s *UIState) SetStatus(t StatusType, msg, detail string, show bool) {
	s.Status = StatusMsg{
		Type:    t,
		Message: msg,
		Detail:  detail,
		Show:    show,
	}
}

// ClearStatus 清空狀態欄
func (s *UIState) ClearStatus() {
	s.Status = StatusMsg{Type: StatusReady}
}

// UpdateInput 更新輸入框
func (s *UIState) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.TextInput, cmd = s.TextInput.Update(msg)
	return cmd
}

func (s *UIState) GetInputBuffer() string {
	return s.TextInput.Value()
}

func (s *UIState) ClearInput() {
	s.TextInput.Reset()
}

// UpdateSize 更新尺寸
func (s *UIState) UpdateSize(w, h int) {
	s.Width = w
	s.Height = h
}
