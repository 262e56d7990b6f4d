package jobsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

// workersPath 原版服務端只提供 HTML 頁面，此 JSON 接口需服務端補充
const (
	pendingPath   = "/admin/jobs/data/pending"
	processedPath = "/admin/jobs/data/processed/"
	workersPath   = "/admin/jobs/data/workers"

	// 錯誤響應最多讀取的字節數
	maxErrorBody = 512
)

// Client 任務服務端 HTTP 客戶端
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

var _ jobs.Source = (*Client)(nil)

// New 創建客戶端
func New(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstream, fmt.Sprintf("無效的服務端地址 %q", baseURL))
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// Pending 各隊列待處理任務數
func (c *Client) Pending(ctx context.Context) ([]jobs.QueueCount, error) {
	var out []jobs.QueueCount
	if err := c.getJSON(ctx, pendingPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Processed 指定區間的已處理任務序列
func (c *Client) Processed(ctx context.Context, interval jobs.Interval) (jobs.ProcessedSeries, error) {
	iv, err := jobs.ParseInterval(string(interval))
	if err != nil {
		return jobs.ProcessedSeries{}, err
	}

	var out jobs.ProcessedSeries
	if err := c.getJSON(ctx, processedPath+string(iv), &out); err != nil {
		return jobs.ProcessedSeries{}, err
	}
	return out, nil
}

// Workers 工作池列表，按 ID 排序
func (c *Client) Workers(ctx context.Context) ([]jobs.Worker, error) {
	var out []jobs.Worker
	if err := c.getJSON(ctx, workersPath, &out); err != nil {
		return nil, err
	}
	jobs.SortWorkers(out)
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	endpoint := c.base.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("構建請求失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUpstream, "請求服務端失敗")
	}
	defer resp.Body.Close()

	c.log.Debug("服務端響應",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.Wrap(
			fmt.Errorf("%w: %d", apperrors.ErrUpstreamStatus, resp.StatusCode),
			apperrors.CodeUpstream,
			fmt.Sprintf("%s 返回 %s", path, strings.TrimSpace(string(body))),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUpstream, "解析響應失敗")
	}
	return nil
}
