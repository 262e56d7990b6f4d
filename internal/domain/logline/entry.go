package logline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/mattn/go-runewidth"

	"github.com/Yat-Muk/queuedash/internal/pkg/sanitizer"
)

// Level 日誌級別
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return ""
	}
}

// ParseLevel 解析級別名稱，兼容 zap/slog/logrus 的寫法
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "TRACE", "DBG":
		return LevelDebug
	case "INFO", "INF", "NOTICE":
		return LevelInfo
	case "WARN", "WARNING", "WRN":
		return LevelWarn
	case "ERROR", "ERR", "FATAL", "PANIC", "DPANIC", "CRITICAL":
		return LevelError
	default:
		return LevelUnknown
	}
}

// Attr 結構化日誌的附加字段
type Attr struct {
	Key   string
	Value string
}

// Entry 一行解析後的日誌
type Entry struct {
	Raw        string
	Time       time.Time
	Level      Level
	Msg        string
	Attrs      []Attr
	Structured bool
}

var (
	timeKeys  = []string{"time", "ts", "timestamp"}
	levelKeys = []string{"level", "lvl", "severity"}
	msgKeys   = []string{"msg", "message"}
)

// Parse 解析一行原始日誌
// JSON 對象按結構化日誌處理，其餘按純文本處理並嗅探級別
func Parse(raw string) Entry {
	clean := strings.TrimRight(stripansi.Strip(raw), "\r\n")

	if trimmed := strings.TrimSpace(clean); strings.HasPrefix(trimmed, "{") {
		if e, ok := parseJSON(trimmed); ok {
			e.Raw = clean
			return e
		}
	}

	return Entry{
		Raw:   clean,
		Msg:   clean,
		Level: sniffLevel(clean),
	}
}

func parseJSON(s string) (Entry, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return Entry{}, false
	}

	e := Entry{Structured: true}
	if v, ok := take(fields, timeKeys); ok {
		e.Time = parseTime(v)
	}
	if v, ok := take(fields, levelKeys); ok {
		e.Level = ParseLevel(fmt.Sprint(v))
	}
	if v, ok := take(fields, msgKeys); ok {
		e.Msg = fmt.Sprint(v)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		e.Attrs = append(e.Attrs, Attr{Key: k, Value: formatValue(fields[k])})
	}
	return e, true
}

// take 取出第一個存在的鍵並從 map 中刪除
func take(fields map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			delete(fields, k)
			return v, true
		}
	}
	return nil, false
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700", "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	case json.Number:
		// zap 默認以秒為單位的浮點時間戳
		if f, err := t.Float64(); err == nil {
			sec := int64(f)
			return time.Unix(sec, int64((f-float64(sec))*1e9))
		}
	}
	return time.Time{}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		if t == "" || strings.ContainsAny(t, " \t\"=") {
			return strconv.Quote(t)
		}
		return t
	case json.Number:
		return t.String()
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimRight(buf.String(), "\n")
	}
}

// sniffLevel 純文本日誌按關鍵字判斷級別，嚴重級別優先
func sniffLevel(s string) Level {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "ERROR"), strings.Contains(upper, "FATAL"), strings.Contains(upper, "PANIC"):
		return LevelError
	case strings.Contains(upper, "WARN"):
		return LevelWarn
	case strings.Contains(upper, "DEBUG"):
		return LevelDebug
	case strings.Contains(upper, "INFO"):
		return LevelInfo
	default:
		return LevelUnknown
	}
}

// Text 未截斷的顯示文本
func (e Entry) Text() string {
	if !e.Structured {
		return sanitizer.Line(e.Raw)
	}

	var sb strings.Builder
	if !e.Time.IsZero() {
		sb.WriteString(e.Time.Local().Format("15:04:05"))
		sb.WriteByte(' ')
	}
	if lvl := e.Level.String(); lvl != "" {
		fmt.Fprintf(&sb, "%-5s ", lvl)
	}
	sb.WriteString(e.Msg)
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	return sanitizer.Line(sb.String())
}

var displayReplacer = strings.NewReplacer("\t", "    ", "\r\n", " ", "\n", " ", "\r", " ")

// Format 單行顯示文本，按顯示寬度截斷 (width <= 0 不截斷)
func (e Entry) Format(width int) string {
	text := displayReplacer.Replace(e.Text())
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
