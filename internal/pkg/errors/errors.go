package errors

import (
	"errors"
	"fmt"
)

// 預定義錯誤類型
var (
	// 配置相關
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrConfigInvalid     = errors.New("configuration is invalid")
	ErrConfigParseFailed = errors.New("failed to parse configuration")

	// 日誌跟蹤
	ErrLogFileNotFound = errors.New("log file not found")
	ErrTailerClosed    = errors.New("log tailer is closed")

	// 任務服務端
	ErrUpstreamStatus  = errors.New("unexpected upstream status")
	ErrInvalidInterval = errors.New("invalid chart interval")
)

// 錯誤碼
const (
	CodeConfig   = "CONFIG"
	CodeLogTail  = "LOGTAIL"
	CodeUpstream = "UPSTREAM"
)

// Error 自定義錯誤類型
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 創建新錯誤
func New(code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf 取出錯誤鏈上第一個錯誤碼
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is 透傳標準庫，避免調用方同時導入兩個 errors 包
func Is(err, target error) bool {
	return errors.Is(err, target)
}
