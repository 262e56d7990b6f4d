package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yat-Muk/queuedash/internal/domain/jobs"
	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

// CurrentVersion 配置文件格式版本
const CurrentVersion = 1

// Repository 配置倉庫接口
type Repository interface {
	// Load 加載配置
	Load(ctx context.Context) (*Config, error)

	// Save 保存配置
	Save(ctx context.Context, cfg *Config) error
}

// Config 主配置結構
type Config struct {
	Version int          `yaml:"version" toml:"version"`
	Server  ServerConfig `yaml:"server" toml:"server"`
	Logs    LogsConfig   `yaml:"logs" toml:"logs"`     // 日誌跟蹤視圖
	Charts  ChartsConfig `yaml:"charts" toml:"charts"` // 任務圖表
	Log     LogConfig    `yaml:"log" toml:"log"`       // 本程序自身的日誌
}

// ServerConfig 任務服務端
type ServerConfig struct {
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

// LogsConfig 日誌跟蹤配置
type LogsConfig struct {
	// Path 支持 doublestar 通配，多個匹配時取最新修改的文件
	Path         string        `yaml:"path" toml:"path"`
	TickInterval time.Duration `yaml:"tick_interval" toml:"tick_interval"`
	MaxLines     int           `yaml:"max_lines" toml:"max_lines"`
	BacklogBytes int64         `yaml:"backlog_bytes" toml:"backlog_bytes"`
	Level        string        `yaml:"level" toml:"level"`
}

// ChartsConfig 圖表配置
type ChartsConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" toml:"refresh_interval"`
	Intervals       []string      `yaml:"intervals" toml:"intervals"`
}

// LogConfig 日誌配置
type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	OutputPath string `yaml:"output_path" toml:"output_path"`
	MaxSize    int    `yaml:"max_size" toml:"max_size"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAge     int    `yaml:"max_age" toml:"max_age"`
	Compress   bool   `yaml:"compress" toml:"compress"`
	Journal    bool   `yaml:"journal" toml:"journal"`
}

// DefaultConfig 默認配置
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: 5 * time.Second,
		},
		Logs: LogsConfig{
			Path:         "/var/log/app/*.log",
			TickInterval: 100 * time.Millisecond,
			MaxLines:     1000,
			BacklogBytes: 64 * 1024,
			Level:        "DEBUG",
		},
		Charts: ChartsConfig{
			RefreshInterval: 10 * time.Second,
			Intervals:       []string{string(jobs.Hour), string(jobs.Week)},
		},
		Log: LogConfig{
			Level:      "info",
			OutputPath: "/var/log/queuedash/queuedash.log",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// FillDefaults 補全缺省字段 (舊文件或手寫文件可能不完整)
func (c *Config) FillDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = def.Server.Timeout
	}
	if c.Logs.Path == "" {
		c.Logs.Path = def.Logs.Path
	}
	if c.Logs.TickInterval <= 0 {
		c.Logs.TickInterval = def.Logs.TickInterval
	}
	if c.Logs.MaxLines <= 0 {
		c.Logs.MaxLines = def.Logs.MaxLines
	}
	if c.Logs.BacklogBytes <= 0 {
		c.Logs.BacklogBytes = def.Logs.BacklogBytes
	}
	if c.Logs.Level == "" {
		c.Logs.Level = def.Logs.Level
	}
	if c.Charts.RefreshInterval <= 0 {
		c.Charts.RefreshInterval = def.Charts.RefreshInterval
	}
	if len(c.Charts.Intervals) == 0 {
		c.Charts.Intervals = append([]string(nil), def.Charts.Intervals...)
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.OutputPath == "" {
		c.Log.OutputPath = def.Log.OutputPath
	}
}

// Validate 驗證配置
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("server.base_url 無效: %q", c.Server.BaseURL))
	}
	if c.Server.Timeout <= 0 {
		problems = append(problems, "server.timeout 必須大於 0")
	}
	if strings.TrimSpace(c.Logs.Path) == "" {
		problems = append(problems, "logs.path 不能為空")
	}
	if c.Logs.TickInterval < 10*time.Millisecond {
		problems = append(problems, "logs.tick_interval 不能小於 10ms")
	}
	if c.Logs.MaxLines < 1 {
		problems = append(problems, "logs.max_lines 必須大於 0")
	}
	if c.Logs.BacklogBytes < 0 {
		problems = append(problems, "logs.backlog_bytes 不能為負")
	}
	switch strings.ToUpper(c.Logs.Level) {
	case "", "INFO", "DEBUG":
	default:
		problems = append(problems, fmt.Sprintf("logs.level 只支持 INFO/DEBUG: %q", c.Logs.Level))
	}
	if c.Charts.RefreshInterval < time.Second {
		problems = append(problems, "charts.refresh_interval 不能小於 1s")
	}
	for _, iv := range c.Charts.Intervals {
		if _, err := jobs.ParseInterval(iv); err != nil {
			problems = append(problems, fmt.Sprintf("charts.intervals 包含無效區間: %q", iv))
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level 無效: %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConfigInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ChartIntervals 已解析的圖表區間，忽略無效值
func (c *Config) ChartIntervals() []jobs.Interval {
	out := make([]jobs.Interval, 0, len(c.Charts.Intervals))
	for _, s := range c.Charts.Intervals {
		if iv, err := jobs.ParseInterval(s); err == nil {
			out = append(out, iv)
		}
	}
	return out
}

// DeepCopy 深拷貝配置 (序列化回環)
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		panic(fmt.Errorf("DeepCopy 序列化失敗 (這是一個 Bug): %w", err))
	}

	var newCfg Config
	if err := yaml.Unmarshal(data, &newCfg); err != nil {
		panic(fmt.Errorf("DeepCopy 反序列化失敗 (這是一個 Bug): %w", err))
	}

	return &newCfg
}
