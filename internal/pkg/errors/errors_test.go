package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWrapFunction 測試Wrap函數
func TestWrapFunction(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("Wrap保留原錯誤", func(t *testing.T) {
		wrapped := Wrap(baseErr, CodeLogTail, "context")
		assert.True(t, errors.Is(wrapped, baseErr))
		assert.Equal(t, "[LOGTAIL] context: base error", wrapped.Error())
	})

	t.Run("Wrap nil創建新錯誤", func(t *testing.T) {
		wrapped := Wrap(nil, "TestError", "context")
		assert.Error(t, wrapped)
		assert.Equal(t, "[TestError] context", wrapped.Error())
	})

	t.Run("包裝哨兵錯誤", func(t *testing.T) {
		wrapped := Wrap(ErrUpstreamStatus, CodeUpstream, "GET /admin/jobs/data/pending")
		assert.True(t, Is(wrapped, ErrUpstreamStatus))
		assert.False(t, Is(wrapped, ErrInvalidInterval))
	})
}

// TestNewFunction 測試New函數
func TestNewFunction(t *testing.T) {
	err1 := New("Type1", "message1")
	err2 := New("Type2", "message2")

	assert.Contains(t, err1.Error(), "message1")
	assert.NotEqual(t, err1.Error(), err2.Error())
	assert.Nil(t, errors.Unwrap(err1))
}

// TestCodeOf 測試錯誤碼提取
func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("刷新圖表失敗: %w", Wrap(ErrUpstreamStatus, CodeUpstream, "pending"))

	assert.Equal(t, CodeUpstream, CodeOf(wrapped))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

// TestSentinelsDistinct 哨兵錯誤互不相等
func TestSentinelsDistinct(t *testing.T) {
	all := []error{
		ErrConfigNotFound, ErrConfigInvalid, ErrConfigParseFailed,
		ErrLogFileNotFound, ErrTailerClosed, ErrUpstreamStatus, ErrInvalidInterval,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]))
			}
		}
	}
}
