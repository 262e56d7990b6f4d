package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Yat-Muk/queuedash/internal/pkg/appctx"
	"github.com/Yat-Muk/queuedash/internal/pkg/version"
	"github.com/Yat-Muk/queuedash/internal/tui/model"
)

func main() {
	// 1. 命令行參數解析
	var (
		workDir    = flag.String("dir", "", "指定工作目錄 (默認: /etc/queuedash 或 ~/.queuedash)")
		configPath = flag.String("config", "", "配置文件路徑 (.yaml/.toml，默認: <dir>/config.yaml)")
		logsPath   = flag.String("logs", "", "覆蓋要跟蹤的日誌文件 (支持 ** 通配)")
		showVer    = flag.Bool("version", false, "顯示版本信息")
		debugFlag  = flag.Bool("debug", false, "開啟調試模式")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "queuedash 需要在交互式終端中運行")
		os.Exit(2)
	}

	// 2. 環境初始化
	paths, err := appctx.NewPaths(*workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "致命錯誤: 無法初始化路徑: %v\n", err)
		os.Exit(1)
	}

	redirectStdErr(filepath.Join(paths.LogDir, "stderr.log"))

	deps, err := initializeDependencies(paths, Options{
		ConfigPath: *configPath,
		LogsPath:   *logsPath,
		Debug:      *debugFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失敗: %v\n", err)
		os.Exit(1)
	}
	defer deps.Log.Sync()

	deps.Log.Info("queuedash 正在啟動",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit),
		zap.String("config", deps.ConfigRepo.Path()),
	)

	runTUI(deps)
}

func runTUI(deps *AppDependencies) {
	router := model.NewRouter(deps.HandlerConfig)
	defer router.Shutdown()

	p := tea.NewProgram(
		model.NewModel(router),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// 崩潰保護
	defer func() {
		if r := recover(); r != nil {
			p.ReleaseTerminal()
			fmt.Printf("\n\n❌ 程序崩潰: %v\n", r)
			deps.Log.Error("Panic", zap.Any("error", r), zap.String("stack", string(debug.Stack())))
			os.Exit(1)
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("程序運行錯誤: %v\n", err)
		os.Exit(1)
	}
	deps.Log.Info("queuedash 已退出")
}

func redirectStdErr(filename string) {
	_ = os.MkdirAll(filepath.Dir(filename), 0755)
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		os.Stderr = f
	}
}
