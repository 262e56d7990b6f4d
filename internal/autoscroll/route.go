package autoscroll

import "strings"

// MatchRule 路由匹配規則
type MatchRule int

const (
	MatchExact MatchRule = iota
	MatchPrefix
	MatchContains
)

func (r MatchRule) String() string {
	switch r {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Route 行為綁定的視圖路由
type Route struct {
	Path string
	Rule MatchRule
}

// Covers 判斷目標路徑是否仍屬於本視圖
// 空路由表示不綁定任何視圖，任何導航都視為離開
func (r Route) Covers(dest string) bool {
	if r.Path == "" {
		return false
	}

	dest = normalize(dest)
	path := normalize(r.Path)

	switch r.Rule {
	case MatchPrefix:
		// 只接受路徑段邊界，/admin/logs 不覆蓋 /admin/logsx
		return dest == path || strings.HasPrefix(dest, path+"/")
	case MatchContains:
		return strings.Contains(dest, path)
	default:
		return dest == path
	}
}

// normalize 去除查詢串與結尾斜杠
func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
