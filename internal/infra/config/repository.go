package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domainConfig "github.com/Yat-Muk/queuedash/internal/domain/config"
	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

// FileRepository 基於文件的配置倉庫 (.yaml/.yml 或 .toml)
// 讀取按修改時間緩存，寫入使用臨時文件加重命名
type FileRepository struct {
	filePath string
	logger   *zap.Logger

	mu          sync.RWMutex
	cached      *domainConfig.Config
	lastModTime time.Time

	fileMu sync.Mutex
}

func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRepository{
		filePath: path,
		logger:   logger,
	}
}

// Path 配置文件路徑
func (r *FileRepository) Path() string { return r.filePath }

// Load 加載配置，文件不存在時返回默認配置
func (r *FileRepository) Load(ctx context.Context) (*domainConfig.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg, ok, err := r.fromCache(); err != nil || ok {
		return cfg, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 雙重檢查：等鎖期間可能已被其他協程加載
	stat, err := os.Stat(r.filePath)
	if os.IsNotExist(err) {
		return domainConfig.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("檢查配置文件狀態失敗: %w", err)
	}
	if r.cached != nil && !stat.ModTime().After(r.lastModTime) {
		return r.cached.DeepCopy(), nil
	}

	r.fileMu.Lock()
	content, err := os.ReadFile(r.filePath)
	r.fileMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("讀取配置文件失敗: %w", err)
	}

	cfg := &domainConfig.Config{}
	if err := r.decode(content, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfigParseFailed, err)
	}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.cached = cfg.DeepCopy()
	r.lastModTime = stat.ModTime()

	r.logger.Info("配置文件已從磁盤重新加載",
		zap.String("path", r.filePath),
		zap.Time("mod_time", r.lastModTime),
	)
	return cfg, nil
}

// fromCache 文件未變更時直接返回緩存副本
func (r *FileRepository) fromCache() (*domainConfig.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stat, err := os.Stat(r.filePath)
	if os.IsNotExist(err) {
		r.logger.Info("配置文件不存在，使用默認配置", zap.String("path", r.filePath))
		return domainConfig.DefaultConfig(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("檢查配置文件狀態失敗: %w", err)
	}

	if r.cached == nil || stat.ModTime().After(r.lastModTime) {
		return nil, false, nil
	}
	r.logger.Debug("配置未變更，使用內存緩存")
	return r.cached.DeepCopy(), true, nil
}

// Save 保存配置 (原子寫入)
func (r *FileRepository) Save(ctx context.Context, cfg *domainConfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("配置對象為空")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.fileMu.Lock()
	defer r.fileMu.Unlock()

	data, err := r.encode(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失敗: %w", err)
	}

	if err := writeAtomic(r.filePath, data); err != nil {
		return err
	}

	r.mu.Lock()
	r.cached = cfg.DeepCopy()
	if stat, err := os.Stat(r.filePath); err == nil {
		r.lastModTime = stat.ModTime()
	}
	r.mu.Unlock()

	r.logger.Debug("配置已保存", zap.String("path", r.filePath))
	return nil
}

func (r *FileRepository) isTOML() bool {
	return strings.EqualFold(filepath.Ext(r.filePath), ".toml")
}

func (r *FileRepository) decode(data []byte, cfg *domainConfig.Config) error {
	if r.isTOML() {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func (r *FileRepository) encode(cfg *domainConfig.Config) ([]byte, error) {
	if !r.isTOML() {
		return yaml.Marshal(cfg)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAtomic 臨時文件 -> Sync -> Rename，權限 0600
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("創建配置目錄失敗: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "config.*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("創建臨時文件失敗: %w", err)
	}
	tmpName := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("寫入數據失敗: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("同步磁盤失敗: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		return fmt.Errorf("設置文件權限失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("關閉臨時文件失敗: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("替換配置文件失敗: %w", err)
	}

	ok = true
	return nil
}
