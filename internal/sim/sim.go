// Package sim 无窗口地跑控制器：用合成负载模型代替真实渲染，逐帧推进时钟。
// 用于 cmd/simulate 和端到端测试。
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"dynres/internal/config"
	"dynres/internal/resolution"
)

// Options 一次模拟的参数
type Options struct {
	NativeWidth, NativeHeight int
	SceneDuration             time.Duration
	Scenes                    []config.Scene
	Jitter                    float64 // 帧时间的相对抖动，0 表示没有
	Seed                      int64
	Logger                    *slog.Logger
	// Observe 可选：为每个场景提供观察者（比如指标）
	Observe func(scene string) resolution.Observer
}

// Resize 宿主收到的一次改分辨率请求
type Resize struct {
	At            time.Duration
	Scene         string
	Width, Height int
	Fullscreen    bool
	TargetFPS     int
}

// SceneReport 每个场景结束时的状态
type SceneReport struct {
	Name          string
	Frames        int
	Decisions     int
	Resizes       int
	Width, Height int // 场景结束时显示表面的尺寸
	Pending       [2]int
	Status        resolution.Status
}

// Report 模拟结果
type Report struct {
	Scenes  []SceneReport
	Resizes []Resize
	Session resolution.Session
}

// Clock 手动推进的时钟
type Clock struct {
	now, sceneStart time.Duration
}

func (c *Clock) SinceStart() time.Duration      { return c.now }
func (c *Clock) SinceSceneStart() time.Duration { return c.now - c.sceneStart }

// Display 记录请求的显示表面；模拟里改分辨率总是成功
type Display struct {
	clock         *Clock
	scene         string
	width, height int
	resizes       []Resize
}

func (d *Display) SetResolution(w, h int, fullscreen bool, targetFPS int) {
	d.width, d.height = w, h
	d.resizes = append(d.resizes, Resize{
		At: d.clock.now, Scene: d.scene,
		Width: w, Height: h, Fullscreen: fullscreen, TargetFPS: targetFPS,
	})
}

func (d *Display) Size() (int, int) { return d.width, d.height }

type lastStatus struct {
	st resolution.Status
}

func (l *lastStatus) Publish(st resolution.Status) { l.st = st }

// FrameRate 负载模型：原生分辨率下帧率 = target / load，渲染代价与像素数成正比，不超过 target
func FrameRate(load float64, targetFPS, width, height, nativeW, nativeH int) float64 {
	if targetFPS <= 0 {
		return 0
	}
	if load <= 0 || nativeW <= 0 || nativeH <= 0 {
		return float64(targetFPS)
	}
	pixels := float64(width*height) / float64(nativeW*nativeH)
	fps := float64(targetFPS) / (load * pixels)
	return math.Min(fps, float64(targetFPS))
}

// Run 依次跑完所有场景，场景之间共享同一个 Session
func Run(opts Options) (Report, error) {
	if opts.NativeWidth <= 0 || opts.NativeHeight <= 0 {
		return Report{}, fmt.Errorf("原生分辨率无效: %dx%d", opts.NativeWidth, opts.NativeHeight)
	}
	if opts.SceneDuration <= 0 {
		return Report{}, errors.New("场景时长必须大于 0")
	}
	if len(opts.Scenes) == 0 {
		return Report{}, errors.New("没有场景")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	clock := &Clock{}
	display := &Display{clock: clock, width: opts.NativeWidth, height: opts.NativeHeight}
	sched := resolution.NewFrameScheduler(0)
	session := resolution.NewSession()

	var rep Report
	for _, sc := range opts.Scenes {
		clock.sceneStart = clock.now
		display.scene = sc.Name
		overlay := &lastStatus{}
		var observer resolution.Observer
		if opts.Observe != nil {
			observer = opts.Observe(sc.Name)
		}

		ctrl, err := resolution.New(sc.Controller, session, clock, display, sched, resolution.Options{
			Overlay:  overlay,
			Observer: observer,
			Logger:   logger.With("scene", sc.Name),
		})
		if err != nil {
			return Report{}, fmt.Errorf("scene %q: %w", sc.Name, err)
		}
		logger.Info("scene start", "scene", sc.Name, "load", sc.Load)
		ctrl.Start()

		frames := 0
		end := clock.now + opts.SceneDuration
		for clock.now < end {
			fps := FrameRate(sc.Load, sc.Controller.TargetFPS, display.width, display.height, opts.NativeWidth, opts.NativeHeight)
			frame := time.Duration(float64(time.Second) / fps)
			if opts.Jitter > 0 {
				frame = time.Duration(float64(frame) * (1 + opts.Jitter*(rng.Float64()*2-1)))
			}
			if frame <= 0 {
				frame = time.Millisecond
			}
			clock.now += frame
			ctrl.Frame()
			sched.Advance(clock.now)
			frames++
		}
		ctrl.Stop()

		rep.Scenes = append(rep.Scenes, SceneReport{
			Name:      sc.Name,
			Frames:    frames,
			Decisions: ctrl.Decisions(),
			Resizes:   ctrl.Resizes(),
			Width:     display.width,
			Height:    display.height,
			Pending:   [2]int{session.CurrentWidth, session.CurrentHeight},
			Status:    overlay.st,
		})
		logger.Info("scene end",
			"scene", sc.Name,
			"frames", frames,
			"decisions", ctrl.Decisions(),
			"display", fmt.Sprintf("%dx%d", display.width, display.height),
			"pending", fmt.Sprintf("%dx%d", session.CurrentWidth, session.CurrentHeight))
	}
	rep.Resizes = display.resizes
	rep.Session = *session
	return rep, nil
}
