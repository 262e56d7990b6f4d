package logger

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"go.uber.org/zap/zapcore"
)

// journalCore 將日誌寫入 systemd journal
type journalCore struct {
	zapcore.LevelEnabler
	fields map[string]string
	send   func(msg string, pri journal.Priority, vars map[string]string) error
}

// NewJournalCore journald 不可用時返回 false
func NewJournalCore(enab zapcore.LevelEnabler) (zapcore.Core, bool) {
	if !journal.Enabled() {
		return nil, false
	}
	return newJournalCore(enab, journal.Send), true
}

func newJournalCore(enab zapcore.LevelEnabler, send func(string, journal.Priority, map[string]string) error) *journalCore {
	return &journalCore{
		LevelEnabler: enab,
		fields:       map[string]string{},
		send:         send,
	}
}

func (c *journalCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &journalCore{
		LevelEnabler: c.LevelEnabler,
		fields:       make(map[string]string, len(c.fields)+len(fields)),
		send:         c.send,
	}
	for k, v := range c.fields {
		clone.fields[k] = v
	}
	addFields(clone.fields, fields)
	return clone
}

func (c *journalCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *journalCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	vars := make(map[string]string, len(c.fields)+len(fields)+2)
	for k, v := range c.fields {
		vars[k] = v
	}
	addFields(vars, fields)

	if ent.LoggerName != "" {
		vars["LOGGER"] = ent.LoggerName
	}
	if ent.Caller.Defined {
		vars["CODE_LOCATION"] = ent.Caller.TrimmedPath()
	}

	return c.send(ent.Message, priority(ent.Level), vars)
}

func (c *journalCore) Sync() error { return nil }

func priority(l zapcore.Level) journal.Priority {
	switch l {
	case zapcore.DebugLevel:
		return journal.PriDebug
	case zapcore.InfoLevel:
		return journal.PriInfo
	case zapcore.WarnLevel:
		return journal.PriWarning
	case zapcore.ErrorLevel:
		return journal.PriErr
	default:
		return journal.PriCrit
	}
}

func addFields(dst map[string]string, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	for k, v := range enc.Fields {
		dst[journalKey(k)] = fmt.Sprint(v)
	}
}

// journalKey journald 字段名只允許大寫字母、數字與下劃線，且不能以下劃線開頭
func journalKey(k string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(k) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	key := strings.TrimLeft(sb.String(), "_")
	if key == "" {
		return "FIELD"
	}
	return key
}
