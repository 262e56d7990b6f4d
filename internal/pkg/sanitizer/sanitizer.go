package sanitizer

import (
	"regexp"
	"strings"
)

// 敏感字段關鍵詞 (Fast Path 過濾用)
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "key", "auth", "credential",
	"bearer", "private", "session", "cookie",
	"sk_", "pk_", "ghp_", "gho_", "api_",
}

// 預編譯正則表達式 (Slow Path 用)
var (
	// key=value / key: value / "key":"value"
	pairRegex = regexp.MustCompile(`(?i)("?(?:password|passwd|pwd|secret|token|api[_-]?key|access[_-]?key|session|cookie|credential)s?"?\s*[:=]\s*)("[^"]*"|'[^']*'|[^\s,}]+)`)
	// Authorization: Bearer xxx
	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+)([a-z0-9._~+/=-]{8,})`)
	// API Key 常見模式 (sk_..., ghp_...)
	apiKeyRegex = regexp.MustCompile(`(?i)\b(sk|pk|api|ghp|gho|token)_[a-zA-Z0-9_-]{16,}`)
	// Email
	emailRegex = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
)

// Line 對一行日誌做脫敏，用於界面展示
func Line(s string) string {
	// Fast Path: 連一個敏感關鍵詞都沒有，直接返回
	if !mightContainSensitiveData(s) {
		return s
	}

	s = pairRegex.ReplaceAllStringFunc(s, func(match string) string {
		parts := pairRegex.FindStringSubmatch(match)
		return parts[1] + quoteLike(parts[2], Password(parts[2]))
	})
	s = bearerRegex.ReplaceAllStringFunc(s, func(match string) string {
		parts := bearerRegex.FindStringSubmatch(match)
		return parts[1] + APIKey(parts[2])
	})
	s = apiKeyRegex.ReplaceAllStringFunc(s, APIKey)
	s = emailRegex.ReplaceAllStringFunc(s, Email)

	return s
}

// mightContainSensitiveData 快速檢查 (O(N) 字符串搜索)
func mightContainSensitiveData(s string) bool {
	sLower := strings.ToLower(s)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(sLower, kw) {
			return true
		}
	}
	return strings.Contains(s, "@")
}

// quoteLike 保留原值的引號形式
func quoteLike(orig, masked string) string {
	if len(orig) >= 2 {
		q := orig[0]
		if (q == '"' || q == '\'') && orig[len(orig)-1] == q {
			return string(q) + masked + string(q)
		}
	}
	return masked
}

// String 通用字符串脫敏 (保留首尾)
func String(s string, start, end int) string {
	if len(s) <= start+end {
		return "***"
	}
	return s[:start] + "***" + s[len(s)-end:]
}

// Password 密碼全脫敏
func Password(s string) string {
	if s == "" {
		return ""
	}
	return "***MASKED***"
}

// APIKey API Key 脫敏 (保留前綴)
func APIKey(s string) string {
	if len(s) < 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}

// Email 郵箱脫敏
func Email(s string) string {
	at := strings.Index(s, "@")
	if at <= 1 {
		return s
	}
	name := s[:at]
	domain := s[at:]

	if len(name) > 2 {
		return name[:2] + "***" + domain
	}
	return name[:1] + "***" + domain
}
