package config

import (
	"sync"
	"sync/atomic"
)

// AtomicContainer 運行時配置快照容器
// 讀取無鎖，寫入串行並採用寫時複製
type AtomicContainer struct {
	store atomic.Pointer[Config]
	mu    sync.Mutex
}

// NewAtomicContainer 以配置的深拷貝初始化
func NewAtomicContainer(cfg *Config) *AtomicContainer {
	c := &AtomicContainer{}
	c.store.Store(cfg.DeepCopy())
	return c
}

// Get 當前配置快照，返回值只讀
func (c *AtomicContainer) Get() *Config {
	return c.store.Load()
}

// Update 在副本上修改，驗證通過後替換
func (c *AtomicContainer) Update(fn func(*Config) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.store.Load().DeepCopy()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	c.store.Store(next)
	return nil
}

// Replace 整體替換 (重新加載配置文件後使用)
func (c *AtomicContainer) Replace(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.store.Store(cfg.DeepCopy())
	c.mu.Unlock()
	return nil
}
