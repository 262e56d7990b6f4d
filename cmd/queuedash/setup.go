package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	infraConfig "github.com/Yat-Muk/queuedash/internal/infra/config"
	"github.com/Yat-Muk/queuedash/internal/pkg/appctx"
	"github.com/Yat-Muk/queuedash/internal/pkg/logger"
	"github.com/Yat-Muk/queuedash/internal/pkg/version"
	"github.com/Yat-Muk/queuedash/internal/tui/handlers"
	"github.com/Yat-Muk/queuedash/internal/tui/state"
)

// Options 命令行選項
type Options struct {
	ConfigPath string
	LogsPath   string
	Debug      bool
}

type AppDependencies struct {
	Log           *zap.Logger
	Paths         *appctx.Paths
	ConfigRepo    *infraConfig.FileRepository
	Config        *domainConfig.AtomicContainer
	HandlerConfig *handlers.Config
}

func initializeDependencies(paths *appctx.Paths, opts Options) (*AppDependencies, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.ConfigFile
	}

	// 1. 加載配置 (日誌配置來自配置文件，此時還沒有 logger)
	bootRepo := infraConfig.NewFileRepository(configPath, nil)
	cfg, loadErr := bootRepo.Load(context.Background())
	if loadErr != nil {
		cfg = domainConfig.DefaultConfig()
	}
	overrides := cliOverrides(opts)
	overrides(cfg)

	// 2. 日誌
	log, err := logger.New(loggerConfig(cfg.Log, paths, opts.Debug))
	if err != nil {
		return nil, fmt.Errorf("日誌初始化失敗: %w", err)
	}
	if loadErr != nil {
		log.Warn("加載配置失敗，使用默認值", zap.String("path", configPath), zap.Error(loadErr))
	}

	// 3. 配置倉庫與熱更新容器
	configRepo := infraConfig.NewFileRepository(configPath, log)
	container := domainConfig.NewAtomicContainer(cfg)

	// 4. 狀態管理
	stateMgr := state.NewManager(&state.Config{
		Log:        log,
		ConfigRepo: configRepo,
		Config:     container,
		Paths:      paths,
		Version:    version.Version,
		Overrides:  overrides,
	})

	return &AppDependencies{
		Log:        log,
		Paths:      paths,
		ConfigRepo: configRepo,
		Config:     container,
		HandlerConfig: &handlers.Config{
			Log:      log,
			StateMgr: stateMgr,
		},
	}, nil
}

// cliOverrides 命令行參數優先於配置文件，重新加載後同樣生效
func cliOverrides(opts Options) func(*domainConfig.Config) {
	return func(cfg *domainConfig.Config) {
		if opts.LogsPath != "" {
			cfg.Logs.Path = opts.LogsPath
		}
	}
}

// loggerConfig 默認輸出路徑跟隨工作目錄
func loggerConfig(c domainConfig.LogConfig, paths *appctx.Paths, debug bool) logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Level
	lc.OutputPath = c.OutputPath
	if lc.OutputPath == "" || lc.OutputPath == domainConfig.DefaultConfig().Log.OutputPath {
		lc.OutputPath = paths.LogFile
	}
	if c.MaxSize > 0 {
		lc.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		lc.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		lc.MaxAge = c.MaxAge
	}
	lc.Compress = c.Compress
	lc.Journal = c.Journal
	// TUI 佔用終端
	lc.Console = false
	if debug {
		lc.Level = "debug"
	}
	return lc
}
