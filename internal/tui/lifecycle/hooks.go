package lifecycle

import "sort"

// LeaveFunc 導航發生時調用，dest 為目標路由
// 返回 true 表示該行為已離開並解除註冊
type LeaveFunc func(dest string) bool

// Hooks 視圖離開信號的監聽表
type Hooks struct {
	hooks map[string]LeaveFunc
}

// NewHooks 創建監聽表
func NewHooks() *Hooks {
	return &Hooks{hooks: make(map[string]LeaveFunc)}
}

// Add 註冊 (同名覆蓋)
func (h *Hooks) Add(name string, fn LeaveFunc) {
	h.hooks[name] = fn
}

// Remove 解除註冊
func (h *Hooks) Remove(name string) {
	delete(h.hooks, name)
}

// Has 是否已註冊
func (h *Hooks) Has(name string) bool {
	_, ok := h.hooks[name]
	return ok
}

// Len 已註冊數量
func (h *Hooks) Len() int {
	return len(h.hooks)
}

// Fire 廣播導航，返回本次解除註冊的名稱
func (h *Hooks) Fire(dest string) []string {
	// 按名稱排序，保證觸發順序穩定
	names := make([]string, 0, len(h.hooks))
	for name := range h.hooks {
		names = append(names, name)
	}
	sort.Strings(names)

	var left []string
	for _, name := range names {
		fn, ok := h.hooks[name]
		if !ok {
			continue
		}
		if fn(dest) {
			delete(h.hooks, name)
			left = append(left, name)
		}
	}
	return left
}
