package logtail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	apperrors "github.com/Yat-Muk/queuedash/internal/pkg/errors"
)

const (
	// DefaultBacklog 啟動時回讀的字節數
	DefaultBacklog int64 = 64 * 1024

	// pollInterval 兜底輪詢，覆蓋 fsnotify 漏報 (如網絡文件系統)
	pollInterval = time.Second

	maxLineBytes = 256 * 1024
)

// Tailer 跟蹤單個日誌文件的追加內容
// 只負責產出行，不關心界面如何滾動
type Tailer struct {
	path    string
	backlog int64
	log     *zap.Logger

	file      *os.File
	offset    int64
	partial   []byte
	skipFirst bool

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// NewTailer 創建跟蹤器，backlog <= 0 時使用默認值
func NewTailer(path string, backlog int64, log *zap.Logger) *Tailer {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tailer{
		path:    filepath.Clean(path),
		backlog: backlog,
		log:     log.With(zap.String("file", path)),
		done:    make(chan struct{}),
	}
}

// Path 跟蹤的文件
func (t *Tailer) Path() string { return t.path }

// Start 開始跟蹤
// 第一批為文件末尾 backlog 字節內的完整行，之後每次追加產生一批
// ctx 取消或 Close 後通道關閉
func (t *Tailer) Start(ctx context.Context) (<-chan []string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, apperrors.ErrTailerClosed
	}
	if t.started {
		return nil, fmt.Errorf("%w: 已經啟動", apperrors.ErrTailerClosed)
	}
	t.started = true

	if err := t.open(true); err != nil {
		close(t.done)
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.closeFile()
		close(t.done)
		return nil, fmt.Errorf("創建文件監聽失敗: %w", err)
	}
	// 監聽目錄而不是文件本身，輪轉後新文件的 Create 事件才能收到
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		_ = watcher.Close()
		t.closeFile()
		close(t.done)
		return nil, fmt.Errorf("監聽日誌目錄失敗: %w", err)
	}

	first, err := t.readLines()
	if err != nil {
		_ = watcher.Close()
		t.closeFile()
		close(t.done)
		return nil, err
	}

	ctx, t.cancel = context.WithCancel(ctx)
	out := make(chan []string, 16)
	if len(first) > 0 {
		out <- first
	}

	go t.run(ctx, watcher, out)

	t.log.Debug("日誌跟蹤已啟動", zap.Int("backlog_lines", len(first)))
	return out, nil
}

// Close 停止跟蹤並等待後台協程退出，可重複調用
func (t *Tailer) Close() error {
	t.once.Do(func() {
		t.mu.Lock()
		t.closed = true
		cancel, started := t.cancel, t.started
		t.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if started {
			<-t.done
		}
	})
	return nil
}

func (t *Tailer) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- []string) {
	defer close(t.done)
	defer close(out)
	defer watcher.Close()
	defer t.closeFile()

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	for {
		var (
			lines []string
			err   error
		)

		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != t.path {
				continue
			}
			lines, err = t.handleEvent(ev)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			t.log.Warn("文件監聽錯誤", zap.Error(werr))
			continue

		case <-poll.C:
			lines, err = t.poll()
		}

		if err != nil {
			t.log.Warn("讀取日誌失敗", zap.Error(err))
			continue
		}
		if len(lines) == 0 {
			continue
		}

		select {
		case out <- lines:
		case <-ctx.Done():
			return
		}
	}
}

func (t *Tailer) handleEvent(ev fsnotify.Event) ([]string, error) {
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		// 輪轉：舊文件被移走，等待新文件出現
		t.log.Debug("日誌文件已移走", zap.Stringer("op", ev.Op))
		t.closeFile()
		return nil, nil

	case ev.Has(fsnotify.Create):
		t.log.Debug("日誌文件已重建")
		t.closeFile()
		if err := t.open(false); err != nil {
			return nil, err
		}
		return t.readLines()

	case ev.Has(fsnotify.Write):
		if t.file == nil {
			if err := t.open(false); err != nil {
				return nil, err
			}
		}
		return t.readLines()
	}
	return nil, nil
}

// poll 兜底檢查：文件被替換時重新打開，然後讀取新增內容
func (t *Tailer) poll() ([]string, error) {
	cur, err := os.Stat(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if t.file != nil {
		if held, err := t.file.Stat(); err == nil && !os.SameFile(held, cur) {
			t.closeFile()
		}
	}
	if t.file == nil {
		if err := t.open(false); err != nil {
			return nil, err
		}
	}
	return t.readLines()
}

// open 打開文件；withBacklog 為 true 時從末尾 backlog 處開始讀
func (t *Tailer) open(withBacklog bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrLogFileNotFound, t.path)
		}
		return fmt.Errorf("打開日誌文件失敗: %w", err)
	}

	var start int64
	if withBacklog {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return fmt.Errorf("讀取日誌文件信息失敗: %w", err)
		}
		if info.Size() > t.backlog {
			// 多讀一個字節：若它正好是換行，回讀起點的行是完整的
			start = info.Size() - t.backlog - 1
		}
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		return fmt.Errorf("定位日誌文件失敗: %w", err)
	}

	t.file = f
	t.offset = start
	t.partial = nil
	// 從中間開始讀，第一個換行之前的內容不完整，丟棄
	t.skipFirst = withBacklog && start > 0
	return nil
}

func (t *Tailer) closeFile() {
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}

// readLines 讀取 offset 之後的完整行，不完整的尾部留到下次
func (t *Tailer) readLines() ([]string, error) {
	if t.file == nil {
		return nil, nil
	}

	info, err := t.file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < t.offset {
		// 截斷：從頭重新讀
		t.log.Debug("日誌文件被截斷", zap.Int64("size", info.Size()), zap.Int64("offset", t.offset))
		if _, err := t.file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		t.offset = 0
		t.partial = nil
		t.skipFirst = false
	}

	data, err := io.ReadAll(t.file)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	var lines []string
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := buf[:i]
		buf = buf[i+1:]

		if t.skipFirst {
			t.skipFirst = false
			continue
		}
		lines = append(lines, string(bytes.TrimRight(line, "\r")))
	}

	if len(buf) > maxLineBytes {
		// 超長且無換行，強制輸出避免內存無限增長
		lines = append(lines, string(buf))
		buf = buf[:0]
	}
	t.partial = append([]byte(nil), buf...)
	return lines, nil
}
