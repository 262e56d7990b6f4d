package logger

import (
	"os"

	"github.com/Yat-Muk/queuedash/internal/pkg/sanitizer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日誌配置
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // 日誌文件路徑
	MaxSize    int    // 單個文件最大大小（MB）
	MaxBackups int    // 保留的舊日誌文件數量
	MaxAge     int    // 保留的天數
	Compress   bool   // 是否壓縮
	Console    bool   // 是否輸出到控制台
	Journal    bool   // 是否同時寫入 systemd journal
}

// DefaultConfig 返回默認配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		OutputPath: "/var/log/queuedash/queuedash.log",
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
		Console:    true,
	}
}

// New 創建新的日誌記錄器
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	// 文件輸出 (JSON，便於日誌頁面解析)
	if cfg.OutputPath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		))
	}

	// 控制台輸出
	if cfg.Console {
		consoleEncoder := encoderConfig
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoder),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	// journald 輸出 (不可用時靜默跳過)
	if cfg.Journal {
		if core, ok := NewJournalCore(level); ok {
			cores = append(cores, core)
		}
	}

	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	return logger, nil
}

// NewDevelopment 創建開發環境日誌記錄器
func NewDevelopment() (*zap.Logger, error) {
	return zap.NewDevelopment()
}

// String 創建字符串字段
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

// Int 創建整數字段
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Error 創建錯誤字段
func Error(err error) zap.Field {
	return zap.Error(err)
}

// SanitizedString 脫敏字符串字段
func SanitizedString(key, val string) zap.Field {
	return zap.String(key, sanitizer.String(val, 4, 4))
}

// SanitizedLine 按日誌行規則脫敏
func SanitizedLine(key, val string) zap.Field {
	return zap.String(key, sanitizer.Line(val))
}
