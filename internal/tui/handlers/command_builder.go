package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/infra/jobsapi"
	"github.com/Yat-Muk/queuedash/internal/infra/logtail"
	"github.com/Yat-Muk/queuedash/internal/tui/msg"
	"github.com/Yat-Muk/queuedash/internal/tui/state"
)

// tailRetryDelay 日誌文件不存在時的重試間隔
const tailRetryDelay = 2 * time.Second

type CommandBuilder struct {
	log       *zap.Logger
	stateMgr  *state.Manager
	openTail  TailOpener
	newSource SourceFactory
	clipboard func(string) error

	// 按服務端配置緩存的數據來源，只在 Update 協程訪問
	source    jobs.Source
	sourceKey domainConfig.ServerConfig
}

// NewCommandBuilder 構造函數
func NewCommandBuilder(cfg *Config) *CommandBuilder {
	b := &CommandBuilder{
		log:       cfg.Log,
		stateMgr:  cfg.StateMgr,
		openTail:  cfg.OpenTail,
		newSource: cfg.NewSource,
		clipboard: cfg.Clipboard,
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.openTail == nil {
		b.openTail = openLogTail
	}
	if b.newSource == nil {
		b.newSource = newAPISource
	}
	if b.clipboard == nil {
		b.clipboard = clipboard.WriteAll
	}
	return b
}

// openLogTail 默認實現：按 glob 取最新文件並跟蹤
func openLogTail(ctx context.Context, pattern string, backlog int64, log *zap.Logger) (string, io.Closer, <-chan []string, error) {
	path, err := logtail.Resolve(pattern)
	if err != nil {
		return "", nil, nil, err
	}

	t := logtail.NewTailer(path, backlog, log)
	lines, err := t.Start(ctx)
	if err != nil {
		_ = t.Close()
		return path, nil, nil, err
	}
	return path, t, lines, nil
}

func newAPISource(server domainConfig.ServerConfig, log *zap.Logger) (jobs.Source, error) {
	return jobsapi.New(server.BaseURL, server.Timeout, log)
}

// jobSource 配置未變時複用數據來源
func (b *CommandBuilder) jobSource(cfg *domainConfig.Config) (jobs.Source, error) {
	if b.source != nil && b.sourceKey == cfg.Server {
		return b.source, nil
	}
	src, err := b.newSource(cfg.Server, b.log)
	if err != nil {
		return nil, err
	}
	b.source = src
	b.sourceKey = cfg.Server
	return src, nil
}

// ========================================
// 頁面入口
// ========================================

// OpenLogsCmd 進入日誌頁，新會話時開始跟蹤
func (b *CommandBuilder) OpenLogsCmd(m *state.Manager) tea.Cmd {
	cfg := m.Config()
	nav := m.Navigate(state.LogView)

	id, fresh := m.Logs().Attach(m.Scheduler(), m.Hooks(), cfg.Logs.TickInterval, b.log)
	m.Logs().Resize(m.UI().Width, m.UI().Height)
	if cfg.Logs.Level != "" && fresh {
		m.Logs().SetFilter(logFilterFromLevel(cfg.Logs.Level, m.Logs().Filter))
	}

	cmds := []tea.Cmd{nav, m.Scheduler().Drain()}
	if fresh {
		cmds = append(cmds, b.StartTailCmd(id, cfg))
	}
	return tea.Batch(cmds...)
}

// OpenJobsCmd 進入任務頁並立即拉取一次
func (b *CommandBuilder) OpenJobsCmd(m *state.Manager) tea.Cmd {
	cfg := m.Config()
	nav := m.Navigate(state.JobsView)

	m.Jobs().Attach(m.Scheduler(), m.Hooks(), cfg.Charts.RefreshInterval, func() tea.Cmd {
		return b.RefreshChartsCmd(m)
	})
	return tea.Batch(nav, b.RefreshChartsCmd(m), m.Scheduler().Drain())
}

// OpenWorkersCmd 進入 Worker 頁並立即拉取一次
func (b *CommandBuilder) OpenWorkersCmd(m *state.Manager) tea.Cmd {
	cfg := m.Config()
	nav := m.Navigate(state.WorkersView)

	m.Workers().Attach(m.Scheduler(), m.Hooks(), cfg.Charts.RefreshInterval, func() tea.Cmd {
		return b.RefreshWorkersCmd(m)
	})
	return tea.Batch(nav, b.RefreshWorkersCmd(m), m.Scheduler().Drain())
}

// ========================================
// 日誌跟蹤
// ========================================

// StartTailCmd 在後台解析路徑並啟動跟蹤
func (b *CommandBuilder) StartTailCmd(id uint64, cfg *domainConfig.Config) tea.Cmd {
	pattern := cfg.Logs.Path
	backlog := cfg.Logs.BacklogBytes
	return func() tea.Msg {
		path, tail, lines, err := b.openTail(context.Background(), pattern, backlog, b.log)
		return msg.LogTailStartedMsg{ID: id, Path: path, Tail: tail, Lines: lines, Err: err}
	}
}

// WaitLinesCmd 等待下一批日誌
func (b *CommandBuilder) WaitLinesCmd(id uint64, lines <-chan []string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		batch, ok := <-lines
		if !ok {
			return msg.LogTailClosedMsg{ID: id}
		}
		return msg.LogLinesMsg{ID: id, Lines: batch}
	}
}

// RetryTailCmd 延遲後重新嘗試打開日誌
func (b *CommandBuilder) RetryTailCmd(id uint64) tea.Cmd {
	return tea.Tick(tailRetryDelay, func(time.Time) tea.Msg {
		return msg.LogTailRetryMsg{ID: id}
	})
}

// CopyLogsCmd 複製當前可見日誌到剪貼板
func (b *CommandBuilder) CopyLogsCmd(m *state.Manager) tea.Cmd {
	text := m.Logs().PlainText()
	n := len(m.Logs().Visible())
	return func() tea.Msg {
		if n == 0 {
			return msg.ClipboardMsg{}
		}
		return msg.ClipboardMsg{Lines: n, Err: b.clipboard(text)}
	}
}

// ========================================
// 任務數據
// ========================================

// RefreshChartsCmd 並發拉取待處理與各時間粒度的處理量
func (b *CommandBuilder) RefreshChartsCmd(m *state.Manager) tea.Cmd {
	cfg := m.Config()
	seq := m.Jobs().BeginFetch()
	intervals := m.Jobs().Intervals()

	src, err := b.jobSource(cfg)
	if err != nil {
		return func() tea.Msg {
			return msg.ChartsMsg{Seq: seq, Err: err, At: time.Now()}
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		var pending []jobs.QueueCount
		series := make([]jobs.ProcessedSeries, len(intervals))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			pending, err = src.Pending(ctx)
			return err
		})
		for i, iv := range intervals {
			g.Go(func() error {
				s, err := src.Processed(ctx, iv)
				if err != nil {
					return fmt.Errorf("%s: %w", iv, err)
				}
				series[i] = s
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return msg.ChartsMsg{Seq: seq, Err: err, At: time.Now()}
		}

		processed := make(map[jobs.Interval]jobs.ProcessedSeries, len(intervals))
		for i, iv := range intervals {
			processed[iv] = series[i]
		}
		return msg.ChartsMsg{Seq: seq, Pending: pending, Processed: processed, At: time.Now()}
	}
}

// RefreshWorkersCmd 拉取 Worker 列表
func (b *CommandBuilder) RefreshWorkersCmd(m *state.Manager) tea.Cmd {
	cfg := m.Config()
	seq := m.Workers().BeginFetch()

	src, err := b.jobSource(cfg)
	if err != nil {
		return func() tea.Msg {
			return msg.WorkersMsg{Seq: seq, Err: err, At: time.Now()}
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		ws, err := src.Workers(ctx)
		return msg.WorkersMsg{Seq: seq, Workers: ws, Err: err, At: time.Now()}
	}
}

// ========================================
// 配置
// ========================================

// LoadConfigCmd 從倉庫重新加載配置
func (b *CommandBuilder) LoadConfigCmd(silent bool) tea.Cmd {
	repo := b.stateMgr.ConfigRepo()
	return func() tea.Msg {
		if repo == nil {
			return msg.ConfigLoadedMsg{Err: fmt.Errorf("配置倉庫未初始化"), Silent: silent}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := repo.Load(ctx)
		return msg.ConfigLoadedMsg{Config: cfg, Err: err, Silent: silent}
	}
}
