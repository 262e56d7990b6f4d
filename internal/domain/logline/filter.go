package logline

import "strings"

// Filter 日誌過濾條件
// Level 為 INFO 時隱藏 DEBUG，為 DEBUG 或空時全部顯示
type Filter struct {
	Level string
	Msg   string
}

// Active 是否有生效的過濾條件
func (f Filter) Active() bool {
	return strings.EqualFold(f.Level, "INFO") || strings.TrimSpace(f.Msg) != ""
}

// Match 判斷日誌是否通過過濾
func (f Filter) Match(e Entry) bool {
	if strings.EqualFold(f.Level, "INFO") && e.Level == LevelDebug {
		return false
	}

	needle := strings.ToLower(strings.TrimSpace(f.Msg))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Msg), needle) {
		return true
	}
	// 純文本行沒有獨立的 msg 字段
	return !e.Structured && strings.Contains(strings.ToLower(e.Raw), needle)
}

// Apply 返回通過過濾的日誌，保持順序
func (f Filter) Apply(entries []Entry) []Entry {
	if !f.Active() {
		return entries
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// String 狀態欄描述
func (f Filter) String() string {
	var parts []string
	if f.Level != "" {
		parts = append(parts, "level="+strings.ToUpper(f.Level))
	}
	if m := strings.TrimSpace(f.Msg); m != "" {
		parts = append(parts, "msg="+m)
	}
	return strings.Join(parts, " ")
}
