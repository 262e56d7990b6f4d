package msg

import (
	"io"
	"time"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
)

// ConfigLoadedMsg 配置加載消息
type ConfigLoadedMsg struct {
	Config *domainConfig.Config
	Err    error
	Silent bool
}

// LogTailStartedMsg 日誌跟蹤啟動結果
type LogTailStartedMsg struct {
	ID    uint64
	Path  string
	Tail  io.Closer
	Lines <-chan []string
	Err   error
}

// LogLinesMsg 一批新的日誌行
type LogLinesMsg struct {
	ID    uint64
	Lines []string
}

// LogTailClosedMsg 跟蹤通道已關閉
type LogTailClosedMsg struct {
	ID uint64
}

// ChartsMsg 一輪圖表數據拉取結果
type ChartsMsg struct {
	Seq       uint64
	Pending   []jobs.QueueCount
	Processed map[jobs.Interval]jobs.ProcessedSeries
	Err       error
	At        time.Time
}

// WorkersMsg Worker 列表拉取結果
type WorkersMsg struct {
	Seq     uint64
	Workers []jobs.Worker
	Err     error
	At      time.Time
}

// ClipboardMsg 複製結果
type ClipboardMsg struct {
	Lines int
	Err   error
}

// LogTailRetryMsg 日誌文件暫不可用，稍後重試
type LogTailRetryMsg struct {
	ID uint64
}
