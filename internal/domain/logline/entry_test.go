package logline

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSON(t *testing.T) {
	raw := `{"time":"2026-03-01T10:20:30Z","level":"WARN","msg":"queue slow","queue":"mail","depth":42,"tags":["a","b"]}`
	e := Parse(raw)

	require.True(t, e.Structured)
	assert.Equal(t, LevelWarn, e.Level)
	assert.Equal(t, "queue slow", e.Msg)
	assert.True(t, e.Time.Equal(time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)))
	assert.Equal(t, []Attr{
		{Key: "depth", Value: "42"},
		{Key: "queue", Value: "mail"},
		{Key: "tags", Value: `["a","b"]`},
	}, e.Attrs)
}

func TestParse_ZapEpochTimestamp(t *testing.T) {
	e := Parse(`{"level":"info","ts":1767225600.5,"msg":"started"}`)

	require.True(t, e.Structured)
	assert.Equal(t, LevelInfo, e.Level)
	assert.Equal(t, int64(1767225600), e.Time.Unix())
	assert.Equal(t, 500*time.Millisecond, time.Duration(e.Time.Nanosecond()))
	assert.Empty(t, e.Attrs)
}

func TestParse_PlainText(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
	}{
		{"2026/01/01 ERROR connection refused", LevelError},
		{"[warn] disk almost full", LevelWarn},
		{"DEBUG cache miss", LevelDebug},
		{"INFO ready", LevelInfo},
		{"just text", LevelUnknown},
		{"{not json", LevelUnknown},
	}

	for _, tt := range tests {
		e := Parse(tt.raw)
		assert.False(t, e.Structured, tt.raw)
		assert.Equal(t, tt.want, e.Level, tt.raw)
		assert.Equal(t, tt.raw, e.Msg)
	}
}

func TestParse_StripsANSIAndNewline(t *testing.T) {
	e := Parse("\x1b[31mERROR\x1b[0m boom\r\n")
	assert.Equal(t, "ERROR boom", e.Raw)
	assert.Equal(t, LevelError, e.Level)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("dpanic"))
	assert.Equal(t, LevelDebug, ParseLevel(" trace "))
	assert.Equal(t, LevelUnknown, ParseLevel("loud"))
	assert.Equal(t, "", LevelUnknown.String())
}

func TestEntryText(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)
	e := Entry{
		Structured: true,
		Time:       ts,
		Level:      LevelInfo,
		Msg:        "job done",
		Attrs:      []Attr{{Key: "id", Value: "7"}, {Key: "note", Value: `"two words"`}},
	}

	want := ts.Local().Format("15:04:05") + ` INFO  job done id=7 note="two words"`
	assert.Equal(t, want, e.Text())
}

func TestEntryText_Sanitized(t *testing.T) {
	e := Parse(`{"level":"error","msg":"login failed","password":"hunter22"}`)
	assert.Contains(t, e.Text(), "password=***MASKED***")
	assert.NotContains(t, e.Text(), "hunter22")

	plain := Parse("Authorization: Bearer abcdefghijklmnop")
	assert.NotContains(t, plain.Text(), "abcdefghijklmnop")
}

func TestEntryFormat_Truncates(t *testing.T) {
	e := Parse("INFO 這是一行很長的中文日誌內容")

	out := e.Format(12)
	assert.LessOrEqual(t, runewidth.StringWidth(out), 12)
	assert.Contains(t, out, "…")

	assert.Equal(t, e.Text(), e.Format(0))
	assert.Equal(t, "INFO ok", Parse("INFO ok").Format(80))
}

func TestEntryFormat_ExpandsTabs(t *testing.T) {
	assert.Equal(t, "a    b", Parse("a\tb").Format(0))
}

func TestEntryFormat_SingleLine(t *testing.T) {
	e := Parse(`{"level":"error","msg":"first\nsecond"}`)
	assert.Equal(t, "ERROR first second", e.Format(0))
}
