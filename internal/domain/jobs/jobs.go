package jobs

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

// Interval 已處理任務統計區間
type Interval string

const (
	Hour  Interval = "hour"
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
)

// Intervals 所有支持的區間
var Intervals = []Interval{Hour, Day, Week, Month}

// ParseInterval 解析區間字符串
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if string(iv) == s {
			return iv, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidInterval, s)
}

// Bars 小時區間用柱狀圖，其他區間用折線
func (i Interval) Bars() bool { return i == Hour }

// QueueCount 單個隊列的待處理任務數
type QueueCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProcessedSeries 已處理任務時間序列
type ProcessedSeries struct {
	XAxis  []string `json:"xAxis"`
	Series []int    `json:"series"`
}

// Len 有效數據點數 (兩軸取短)
func (p ProcessedSeries) Len() int {
	if len(p.XAxis) < len(p.Series) {
		return len(p.XAxis)
	}
	return len(p.Series)
}

// StaleAfter 工作池超過此時間未上報即告警
const StaleAfter = 30 * time.Second

// Worker 工作池
type Worker struct {
	ID       string    `json:"id"`
	Queue    string    `json:"queue"`
	Workers  int       `json:"workers"`
	Version  string    `json:"version"`
	JobTypes []string  `json:"job_types"`
	LastSeen time.Time `json:"last_seen"`
}

// Healthy 最近是否上報過
func (w Worker) Healthy(now time.Time) bool {
	return now.Sub(w.LastSeen) < StaleAfter
}

// Status 上報狀態描述
func (w Worker) Status(now time.Time) string {
	since := now.Sub(w.LastSeen)
	switch {
	case since < StaleAfter:
		return "now"
	case since < time.Minute:
		return "recently"
	case since < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(math.Round(since.Minutes())))
	default:
		return fmt.Sprintf("%d hours ago", int(math.Round(since.Hours())))
	}
}

// SortWorkers 按 ID 排序並對任務類型排序
func SortWorkers(ws []Worker) {
	for i := range ws {
		sort.Strings(ws[i].JobTypes)
	}
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
}

// Source 任務數據來源
type Source interface {
	Pending(ctx context.Context) ([]QueueCount, error)
	Processed(ctx context.Context, interval Interval) (ProcessedSeries, error)
	Workers(ctx context.Context) ([]Worker, error)
}
