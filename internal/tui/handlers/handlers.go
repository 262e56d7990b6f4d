package handlers

import (
	"context"
	"io"

	"go.uber.org/zap"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	"github.com/Yat-Muk/queuedash/internal/tui/state"
)

// TailOpener 解析日誌路徑並開始跟蹤
type TailOpener func(ctx context.Context, pattern string, backlog int64, log *zap.Logger) (path string, tail io.Closer, lines <-chan []string, err error)

// SourceFactory 按服務端配置創建任務數據來源
type SourceFactory func(server domainConfig.ServerConfig, log *zap.Logger) (jobs.Source, error)

// Config 用於初始化 Handlers 的配置結構體
type Config struct {
	Log      *zap.Logger
	StateMgr *state.Manager

	// 以下可選，為空時使用默認實現
	OpenTail  TailOpener
	NewSource SourceFactory
	Clipboard func(text string) error
}
