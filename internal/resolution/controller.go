// Package resolution 根据实际帧率动态调整渲染分辨率。
//
// 一个 Controller 对应一个场景；跨场景共享的状态放在 Session 里。
// 宿主每帧调用 Frame，并推进 Scheduler；决策按固定间隔执行，
// 帧率低于下限时降档、高于上限时升档，分辨率始终夹在 [0.69×原生, 原生] 之间。
package resolution

import (
	"errors"
	"fmt"
	"log/slog"
)

// Options 可选协作者
type Options struct {
	Overlay  OverlaySink
	Observer Observer
	Logger   *slog.Logger
}

// Controller 单个场景的分辨率控制器
type Controller struct {
	cfg      Config
	session  *Session
	clock    Clock
	display  Display
	sched    Scheduler
	overlay  OverlaySink
	observer Observer
	log      *slog.Logger

	sampler   *Sampler
	budget    int // 剩余降档次数，Unlimited 表示不限
	task      Task
	started   bool
	stopped   bool
	decisions int
	resizes   int
}

// New 构造控制器，还不会做任何事，调用 Start 进入场景
func New(cfg Config, session *Session, clock Clock, display Display, sched Scheduler, opts Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	if session == nil || clock == nil || display == nil || sched == nil {
		return nil, errors.New("session/clock/display/scheduler 不能为空")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:      cfg,
		session:  session,
		clock:    clock,
		display:  display,
		sched:    sched,
		overlay:  opts.Overlay,
		observer: opts.Observer,
		log:      logger.With("component", "resolution"),
		budget:   cfg.MaxStepCount,
	}, nil
}

// Start 场景开始：捕获原生分辨率、处理起始比例或延迟的分辨率、启动决策循环
func (c *Controller) Start() {
	if c.started || c.cfg.DisableAdaptive {
		return
	}
	c.started = true

	w, h := c.display.Size()
	c.session.Init(w, h)
	c.sampler = NewSampler(c.clock.SinceStart())

	c.enterScene()
	c.publish()

	if c.cfg.adaptive() {
		c.arm()
	}
}

// Stop 场景结束，取消尚未执行的决策
func (c *Controller) Stop() {
	c.stopped = true
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
}

// Frame 每渲染一帧调用一次
func (c *Controller) Frame() {
	if !c.started || c.stopped {
		return
	}
	r, ok := c.sampler.Tick(c.clock.SinceStart(), c.clock.SinceSceneStart())
	if !ok {
		return
	}
	if r.Trusted {
		c.session.LastSceneAverageFPS = r.AverageFPS
	}
	if c.observer != nil {
		c.observer.ObserveReading(r)
	}
	c.publish()
}

// Status 当前覆盖层字段
func (c *Controller) Status() Status {
	st := Status{
		PendingWidth:   c.session.CurrentWidth,
		PendingHeight:  c.session.CurrentHeight,
		OriginalWidth:  c.session.OriginalWidth,
		OriginalHeight: c.session.OriginalHeight,
		ActiveRatio:    1,
		Mode:           c.cfg.modeString(),
	}
	if c.sampler != nil {
		st.InstantFPS = c.sampler.InstantFPS()
		st.AverageFPS = c.sampler.AverageFPS()
	}
	st.DisplayWidth, st.DisplayHeight = c.display.Size()
	if c.session.Phase == Unadjusted {
		st.ActiveRatio = c.cfg.StartingRatio
	}
	return st
}

func (c *Controller) publish() {
	if !c.cfg.EnableOverlay || c.overlay == nil {
		return
	}
	c.overlay.Publish(c.Status())
}

// Running 决策循环是否还排着
func (c *Controller) Running() bool { return c.task != nil }

// Budget 剩余降档次数
func (c *Controller) Budget() int { return c.budget }

// Decisions 已执行的决策次数
func (c *Controller) Decisions() int { return c.decisions }

// Resizes 本控制器调用宿主改分辨率的次数
func (c *Controller) Resizes() int { return c.resizes }

// Config 控制器使用的配置
func (c *Controller) Config() Config { return c.cfg }

func formatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
