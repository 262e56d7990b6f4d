package appctx

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvVar 運行環境變量
const EnvVar = "QUEUEDASH_ENV"

// Paths 定義應用程序所有的關鍵路徑
type Paths struct {
	BaseDir   string
	ConfigDir string
	DataDir   string
	LogDir    string

	ConfigFile string
	LogFile    string
}

func NewPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		if isProduction() {
			baseDir = "/etc/queuedash"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("無法獲取用戶主目錄: %w", err)
			}
			baseDir = filepath.Join(home, ".queuedash")
		}
	}

	absPath, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("無法解析絕對路徑: %w", err)
	}

	// 日誌目錄邏輯
	logDir := filepath.Join(absPath, "logs")
	if isProduction() {
		logDir = "/var/log/queuedash"
	}

	paths := &Paths{
		BaseDir:    absPath,
		ConfigDir:  absPath,
		DataDir:    filepath.Join(absPath, "data"),
		LogDir:     logDir,
		ConfigFile: filepath.Join(absPath, "config.yaml"),
		LogFile:    filepath.Join(logDir, "queuedash.log"),
	}

	// 確保目錄存在
	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.LogDir} {
		perm := os.FileMode(0700)
		if dir == paths.LogDir {
			perm = 0755
		}
		if err := os.MkdirAll(dir, perm); err != nil {
			return nil, fmt.Errorf("無法創建目錄 %s: %w", dir, err)
		}
	}

	return paths, nil
}

func isProduction() bool {
	return os.Getenv(EnvVar) == "production"
}
