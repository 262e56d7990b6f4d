package logtail

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

// Resolve 解析日誌路徑，支持 ** 通配
// 多個匹配時返回修改時間最新的普通文件
func Resolve(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: 路徑為空", apperrors.ErrLogFileNotFound)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("無效的日誌路徑模式 %q: %w", pattern, err)
	}

	var (
		newest  string
		newestT int64
	)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if mt := info.ModTime().UnixNano(); newest == "" || mt > newestT {
			newest, newestT = m, mt
		}
	}

	if newest == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrLogFileNotFound, pattern)
	}
	return filepath.Clean(newest), nil
}
