// File /ui/screen.go
package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"dynres/internal/config"
	"dynres/internal/resolution"
)

const hexRows = 12 // 背景六边形行数

// Options SceneScreen 的可选项
type Options struct {
	StartScene string // 起始场景名；空表示第一个
	// Observe 可选：为每个场景提供观察者（比如指标）
	Observe func(scene string) resolution.Observer
	Logger  *slog.Logger

	now func() time.Time // 测试里替换时钟
}

// SceneScreen 实现 ebiten.Game：逐个跑配置里的场景，
// 每个场景一个控制器，场景之间共享 Session 和调度器
type SceneScreen struct {
	cfg     config.Config
	session *resolution.Session
	sched   *resolution.FrameScheduler
	clock   *wallClock
	display resolution.Display
	observe func(string) resolution.Observer
	log     *slog.Logger

	ctrl    *resolution.Controller
	scene   config.Scene
	index   int
	pending bool // 控制器已构造但还没 Start
	drawn   int  // 已画的帧数

	overlay     string // 控制器最后一次发布的状态文字
	showOverlay bool
	fontFace    font.Face
}

// NewSceneScreen 构造并准备起始场景；控制器在第一帧画完后的 Update 里才启动，
// 建窗口和第一帧的耗时不计入采样
func NewSceneScreen(cfg config.Config, display resolution.Display, opts Options) (*SceneScreen, error) {
	if display == nil {
		return nil, errors.New("display 不能为空")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := newWallClock(opts.now)
	s := &SceneScreen{
		cfg:         cfg,
		session:     resolution.NewSession(),
		sched:       resolution.NewFrameScheduler(clock.SinceStart()),
		clock:       clock,
		display:     display,
		observe:     opts.Observe,
		log:         logger,
		showOverlay: true,
		fontFace:    basicfont.Face7x13,
	}

	start := 0
	if opts.StartScene != "" {
		i, ok := sceneIndex(cfg, opts.StartScene)
		if !ok {
			return nil, fmt.Errorf("未知场景: %q", opts.StartScene)
		}
		start = i
	}
	if err := s.loadScene(start); err != nil {
		return nil, err
	}
	return s, nil
}

func sceneIndex(cfg config.Config, name string) (int, bool) {
	for i, sc := range cfg.Scenes {
		if sc.Name == name {
			return i, true
		}
	}
	return 0, false
}

// loadScene 停掉旧控制器，换成第 i 个场景（越界时循环）。
// 窗口已经出过帧时立即启动，否则等 step
func (s *SceneScreen) loadScene(i int) error {
	if s.ctrl != nil {
		s.ctrl.Stop()
	}
	sc := s.cfg.SceneAt(i)
	if n := len(s.cfg.Scenes); n > 0 {
		i = ((i % n) + n) % n
	}

	var observer resolution.Observer
	if s.observe != nil {
		observer = s.observe(sc.Name)
	}
	ctrl, err := resolution.New(sc.Controller, s.session, s.clock, s.display, s.sched, resolution.Options{
		Overlay:  s,
		Observer: observer,
		Logger:   s.log.With("scene", sc.Name),
	})
	if err != nil {
		return fmt.Errorf("场景 %q: %w", sc.Name, err)
	}
	s.ctrl, s.scene, s.index = ctrl, sc, i
	s.overlay = ""
	s.pending = true
	if s.drawn > 0 {
		s.startScene()
	}
	return nil
}

// startScene 场景计时和调度器都从现在算起
func (s *SceneScreen) startScene() {
	s.pending = false
	s.clock.newScene()
	s.sched.Advance(s.clock.SinceStart())
	s.log.Info("scene start", "scene", s.scene.Name, "load", s.scene.Load)
	s.ctrl.Start()
}

// Publish 接收控制器的状态
func (s *SceneScreen) Publish(st resolution.Status) {
	s.overlay = st.String()
}

// Update 处理输入，再推进到期的控制器任务
func (s *SceneScreen) Update() error {
	if err := s.handleInput(); err != nil {
		return err
	}
	s.step()
	return nil
}

// step 等第一帧画完再启动控制器，然后推进到期的任务
func (s *SceneScreen) step() {
	if s.pending && s.drawn > 0 {
		s.startScene()
	}
	s.sched.Advance(s.clock.SinceStart())
}

// frame 每画一帧喂一次采样器
func (s *SceneScreen) frame() {
	s.drawn++
	s.ctrl.Frame()
}

// Draw 画合成负载和状态文字
func (s *SceneScreen) Draw(screen *ebiten.Image) {
	s.frame()

	screen.Fill(color.Black)
	drawHexField(screen, hexRows)
	drawWorkload(screen, passesFor(s.scene.Load), s.clock.SinceSceneStart().Seconds())

	info := fmt.Sprintf("Scene: %s (%d/%d)", s.scene.Name, s.index+1, max(len(s.cfg.Scenes), 1))
	if s.showOverlay && s.overlay != "" {
		info += "\n" + s.overlay
	}
	text.Draw(screen, info, s.fontFace, 20, 24, color.White)
}

// Layout 渲染尺寸就是控制器要求的分辨率，和窗口大小无关
func (s *SceneScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.display.Size()
}

// Close 退出前停掉当前控制器
func (s *SceneScreen) Close() {
	if s.ctrl != nil {
		s.ctrl.Stop()
	}
}

// Elapsed 进程启动至今
func (s *SceneScreen) Elapsed() time.Duration { return s.clock.SinceStart() }
