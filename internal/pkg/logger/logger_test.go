package logger

import (
	"testing"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type sentEntry struct {
	msg  string
	pri  journal.Priority
	vars map[string]string
}

func newRecordingCore(level zapcore.Level) (*journalCore, *[]sentEntry) {
	var sent []sentEntry
	core := newJournalCore(level, func(msg string, pri journal.Priority, vars map[string]string) error {
		sent = append(sent, sentEntry{msg: msg, pri: pri, vars: vars})
		return nil
	})
	return core, &sent
}

// TestJournalCore_Write 測試 journald 字段映射
func TestJournalCore_Write(t *testing.T) {
	core, sent := newRecordingCore(zapcore.InfoLevel)
	log := zap.New(core).Named("logs").With(zap.String("controller", "abc"))

	log.Debug("ignored")
	log.Warn("跟隨模式切換", zap.String("mode", "paused"), zap.Int("line-count", 3))

	require.Len(t, *sent, 1)
	got := (*sent)[0]
	assert.Equal(t, "跟隨模式切換", got.msg)
	assert.Equal(t, journal.PriWarning, got.pri)
	assert.Equal(t, "abc", got.vars["CONTROLLER"])
	assert.Equal(t, "paused", got.vars["MODE"])
	assert.Equal(t, "3", got.vars["LINE_COUNT"])
	assert.Equal(t, "logs", got.vars["LOGGER"])
}

// TestJournalCore_WithDoesNotLeak With 不影響父 core
func TestJournalCore_WithDoesNotLeak(t *testing.T) {
	core, sent := newRecordingCore(zapcore.DebugLevel)
	base := zap.New(core)
	_ = base.With(zap.String("child", "1"))

	base.Info("parent")
	require.Len(t, *sent, 1)
	_, ok := (*sent)[0].vars["CHILD"]
	assert.False(t, ok)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, journal.PriDebug, priority(zapcore.DebugLevel))
	assert.Equal(t, journal.PriInfo, priority(zapcore.InfoLevel))
	assert.Equal(t, journal.PriErr, priority(zapcore.ErrorLevel))
	assert.Equal(t, journal.PriCrit, priority(zapcore.FatalLevel))
}

func TestJournalKey(t *testing.T) {
	assert.Equal(t, "QUEUE_NAME", journalKey("queue.name"))
	assert.Equal(t, "X1", journalKey("_x1"))
	assert.Equal(t, "FIELD", journalKey("__"))
}
