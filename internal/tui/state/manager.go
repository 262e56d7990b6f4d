package state

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/pkg/appctx"
	"github.com/Yat-Muk/queuedash/internal/tui/lifecycle"
	"github.com/Yat-Muk/queuedash/internal/tui/tick"
)

// Config 初始化配置
type Config struct {
	Log        *zap.Logger
	ConfigRepo domainConfig.Repository
	Config     *domainConfig.AtomicContainer
	Paths      *appctx.Paths
	Version    string

	// Overrides 命令行覆蓋項，每次替換配置前重新套用
	Overrides func(*domainConfig.Config)

	// 可選，為空時內部創建
	Scheduler *tick.Scheduler
	Zone      *zone.Manager
}

// Manager 狀態管理器 (State Container)
type Manager struct {
	log *zap.Logger

	ui       *UIState
	logState *LogState
	jobs     *JobsState
	workers  *WorkersState

	cfg     *domainConfig.AtomicContainer
	repo    domainConfig.Repository
	sched   *tick.Scheduler
	hooks   *lifecycle.Hooks
	zone    *zone.Manager
	paths   *appctx.Paths
	version string

	overrides func(*domainConfig.Config)
}

// NewManager 創建狀態管理器
func NewManager(cfg *Config) *Manager {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	container := cfg.Config
	if container == nil {
		container = domainConfig.NewAtomicContainer(domainConfig.DefaultConfig())
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = tick.NewScheduler()
	}
	z := cfg.Zone
	if z == nil {
		z = zone.New()
	}

	current := container.Get()
	m := &Manager{
		log:     log,
		cfg:     container,
		repo:    cfg.ConfigRepo,
		sched:   sched,
		hooks:   lifecycle.NewHooks(),
		zone:    z,
		paths:   cfg.Paths,
		version: cfg.Version,

		overrides: cfg.Overrides,
	}

	m.ui = NewUIState()
	m.logState = NewLogState(current.Logs.MaxLines)
	m.jobs = NewJobsState(current.ChartIntervals())
	m.workers = NewWorkersState()

	return m
}

// Getters 訪問器

func (m *Manager) UI() *UIState                                   { return m.ui }
func (m *Manager) Logs() *LogState                                { return m.logState }
func (m *Manager) Jobs() *JobsState                               { return m.jobs }
func (m *Manager) Workers() *WorkersState                         { return m.workers }
func (m *Manager) Scheduler() *tick.Scheduler                     { return m.sched }
func (m *Manager) Hooks() *lifecycle.Hooks                        { return m.hooks }
func (m *Manager) Zone() *zone.Manager                            { return m.zone }
func (m *Manager) ConfigRepo() domainConfig.Repository            { return m.repo }
func (m *Manager) ConfigContainer() *domainConfig.AtomicContainer { return m.cfg }
func (m *Manager) Paths() *appctx.Paths                           { return m.paths }
func (m *Manager) Log() *zap.Logger                               { return m.log }

// Config 當前生效的配置快照
func (m *Manager) Config() *domainConfig.Config { return m.cfg.Get() }

// Navigate 切換視圖
// 先以目標路由廣播離開信號，再改變顯示狀態
func (m *Manager) Navigate(v View) tea.Cmd {
	if left := m.hooks.Fire(v.Path()); len(left) > 0 {
		m.log.Debug("視圖行為已解綁",
			zap.Strings("hooks", left),
			zap.String("dest", v.Path()),
		)
	}
	return m.ui.SwitchView(v)
}

// ApplyConfig 替換配置並同步到各子狀態
// 正在運行的刷新任務按新週期重新排程，命令需由 Scheduler().Drain 取出
// 日誌節拍由控制器持有，新週期從下一次進入日誌頁生效
func (m *Manager) ApplyConfig(cfg *domainConfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("配置為空")
	}
	next := cfg.DeepCopy()
	if m.overrides != nil {
		m.overrides(next)
	}
	if err := m.cfg.Replace(next); err != nil {
		return err
	}

	current := m.cfg.Get()
	m.logState.SetMaxLines(current.Logs.MaxLines)

	if !sameIntervals(m.jobs.Intervals(), current.ChartIntervals()) {
		m.jobs.SetIntervals(current.ChartIntervals())
	}

	period := current.Charts.RefreshInterval
	jobsRearmed := m.jobs.SetPeriod(m.sched, period)
	workersRearmed := m.workers.SetPeriod(m.sched, period)
	if jobsRearmed || workersRearmed {
		m.log.Debug("刷新週期已更新", zap.Duration("period", period))
	}
	return nil
}

// Shutdown 退出前釋放跟蹤器與定時任務
func (m *Manager) Shutdown() {
	m.logState.Detach()
	m.jobs.Detach()
	m.workers.Detach()
	m.zone.Close()
}
