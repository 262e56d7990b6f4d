package constants

const (
	// ==========================================
	// 主菜單 (Main Menu)
	// ==========================================
	KeyMain_Logs    = "1" // 實時日誌
	KeyMain_Jobs    = "2" // 任務儀表盤
	KeyMain_Workers = "3" // Worker 列表
	KeyMain_Reload  = "r" // 重新加載配置
	KeyMain_Quit    = "q" // 退出程序

	// ==========================================
	// 日誌過濾 (Log Filter)
	// ==========================================
	KeyFilter_LevelInfo = "1" // 隱藏 DEBUG
	KeyFilter_LevelAll  = "2" // 顯示全部級別
	KeyFilter_Clear     = "c" // 清除全部條件
)

// 日誌頁直接按鍵 (不經輸入框)
var (
	KeysLog_Up       = []string{"up", "k"}
	KeysLog_Down     = []string{"down", "j"}
	KeysLog_PageUp   = []string{"pgup", "b"}
	KeysLog_PageDown = []string{"pgdown", "f", " "}
	KeysLog_HalfUp   = []string{"u", "ctrl+u"}
	KeysLog_HalfDown = []string{"d", "ctrl+d"}
	KeysLog_Home     = []string{"home", "g"}
	KeysLog_End      = []string{"end", "G"}
)

const (
	KeyLog_Live   = "l" // 恢復跟隨
	KeyLog_Filter = "/" // 打開過濾
	KeyLog_Copy   = "y" // 複製可見日誌
	KeyLog_Back   = "esc"

	// 任務頁
	KeyJobs_Refresh = "r"
	KeyJobs_Workers = "w"

	// Worker 頁
	KeyWorkers_Toggle  = "enter"
	KeyWorkers_Refresh = "r"

	// 滾輪每格行數
	WheelRows = 3
)

// Match 按鍵是否屬於集合
func Match(key string, set []string) bool {
	for _, k := range set {
		if k == key {
			return true
		}
	}
	return false
}
