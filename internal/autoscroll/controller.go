package autoscroll

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTickPeriod 渲染節拍默認週期
const DefaultTickPeriod = 100 * time.Millisecond

// Mode 跟隨模式
type Mode int

const (
	Live Mode = iota
	Paused
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Key 影響跟隨狀態的按鍵分類
type Key int

const (
	KeyOther Key = iota
	KeyPageUp
	KeyHome
	KeyArrowUp
	KeyPageDown
	KeyEnd
	KeyArrowDown
)

// Backward 向上翻閱的按鍵，無論結果位置如何都會暫停
func (k Key) Backward() bool {
	return k == KeyPageUp || k == KeyHome || k == KeyArrowUp
}

// Forward 向下翻閱的按鍵，只有到達底部才恢復跟隨
func (k Key) Forward() bool {
	return k == KeyPageDown || k == KeyEnd || k == KeyArrowDown
}

// Viewport 控制器獨佔的滾動區域
type Viewport interface {
	Offset() int
	VisibleHeight() int
	ContentHeight() int
	SetOffset(offset int)
}

// Timer 週期任務句柄
type Timer interface {
	Stop()
}

// Scheduler 週期任務調度器
// fn 必須在與輸入事件相同的事件循環中執行
type Scheduler interface {
	Schedule(period time.Duration, fn func()) Timer
}

// Options 控制器選項
type Options struct {
	Period time.Duration
	Route  Route
	Log    *zap.Logger

	// OnModeChange 模式切換回調 (用於刷新指示器)
	OnModeChange func(Mode)
}

// Controller 日誌自動滾動控制器
type Controller struct {
	id     string
	mode   Mode
	vp     Viewport
	timer  Timer
	route  Route
	log    *zap.Logger
	notify func(Mode)
}

// New 綁定視口並啟動渲染節拍，初始為 Live
func New(vp Viewport, sched Scheduler, opts Options) *Controller {
	if opts.Period <= 0 {
		opts.Period = DefaultTickPeriod
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	c := &Controller{
		id:     uuid.NewString(),
		mode:   Live,
		vp:     vp,
		route:  opts.Route,
		notify: opts.OnModeChange,
	}
	c.log = opts.Log.With(zap.String("controller", c.id))

	c.pin()
	c.timer = sched.Schedule(opts.Period, c.Tick)

	c.log.Debug("自動滾動已綁定",
		zap.String("route", opts.Route.Path),
		zap.Duration("period", opts.Period),
	)
	return c
}

// ID 實例標識
func (c *Controller) ID() string { return c.id }

// Mode 當前模式
func (c *Controller) Mode() Mode { return c.mode }

// Live 是否處於跟隨模式
func (c *Controller) Live() bool { return c.mode == Live }

// Attached 是否仍綁定視口
func (c *Controller) Attached() bool { return c.vp != nil }

// Route 綁定的路由
func (c *Controller) Route() Route { return c.route }

// HandleScroll 滾動事件
func (c *Controller) HandleScroll() {
	if !c.Attached() {
		return
	}
	c.followEdge()
}

// HandleWheel 滾輪事件
func (c *Controller) HandleWheel() {
	if !c.Attached() {
		return
	}
	c.followEdge()
}

// HandleKey 按鍵事件，須在按鍵引起的位移之後調用
func (c *Controller) HandleKey(k Key) {
	if !c.Attached() {
		return
	}

	switch {
	case k.Backward():
		c.setMode(Paused)
	case k.Forward():
		if c.atBottom() {
			c.setMode(Live)
		}
	}
}

// ResumeLive 顯式恢復跟隨
func (c *Controller) ResumeLive() {
	if !c.Attached() {
		return
	}
	c.setMode(Live)
}

// Tick 渲染節拍：Live 時釘到底部，Paused 時不觸碰位置
func (c *Controller) Tick() {
	if !c.Attached() || c.mode != Live {
		return
	}
	c.pin()
}

// Leave 視圖切換信號，目標不在綁定路由內時解綁
// 返回 true 表示已解綁
func (c *Controller) Leave(dest string) bool {
	if !c.Attached() {
		return true
	}
	if c.route.Covers(dest) {
		return false
	}
	c.Detach()
	return true
}

// Detach 停止節拍並釋放視口，可重複調用
func (c *Controller) Detach() {
	if c.vp == nil {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.vp = nil
	c.notify = nil

	c.log.Debug("自動滾動已解綁")
}

func (c *Controller) followEdge() {
	if c.atBottom() {
		c.setMode(Live)
	} else {
		c.setMode(Paused)
	}
}

func (c *Controller) setMode(m Mode) {
	if m == Live {
		// 進入 Live 立即釘底，即使已經是 Live
		c.pin()
	}
	if c.mode == m {
		return
	}

	c.mode = m
	c.log.Debug("跟隨模式切換", zap.Stringer("mode", m))
	if c.notify != nil {
		c.notify(m)
	}
}

func (c *Controller) atBottom() bool {
	return AtBottom(c.vp)
}

func (c *Controller) pin() {
	c.vp.SetOffset(BottomOffset(c.vp))
}

// AtBottom 底部邊緣判斷 (容忍亞像素取整)
func AtBottom(vp Viewport) bool {
	return vp.Offset()+vp.VisibleHeight() >= vp.ContentHeight()
}

// BottomOffset 最大滾動偏移
func BottomOffset(vp Viewport) int {
	max := vp.ContentHeight() - vp.VisibleHeight()
	if max < 0 {
		return 0
	}
	return max
}
