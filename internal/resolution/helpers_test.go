package resolution

import (
	"io"
	"log/slog"
	"time"
)

type manualClock struct {
	now, sceneStart time.Duration
}

func (c *manualClock) SinceStart() time.Duration      { return c.now }
func (c *manualClock) SinceSceneStart() time.Duration { return c.now - c.sceneStart }

func (c *manualClock) advance(d time.Duration) { c.now += d }
func (c *manualClock) newScene()               { c.sceneStart = c.now }

type resizeCall struct {
	w, h       int
	fullscreen bool
	fps        int
}

type fakeDisplay struct {
	w, h  int
	calls []resizeCall
}

func (d *fakeDisplay) SetResolution(w, h int, fullscreen bool, fps int) {
	d.w, d.h = w, h
	d.calls = append(d.calls, resizeCall{w, h, fullscreen, fps})
}

func (d *fakeDisplay) Size() (int, int) { return d.w, d.h }

type overlayRecorder struct {
	got []Status
}

func (o *overlayRecorder) Publish(st Status) { o.got = append(o.got, st) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type rig struct {
	clock   *manualClock
	display *fakeDisplay
	sched   *FrameScheduler
	session *Session
	overlay *overlayRecorder
}

func newRig() *rig {
	return &rig{
		clock:   &manualClock{},
		display: &fakeDisplay{w: 1920, h: 1080},
		sched:   NewFrameScheduler(0),
		session: NewSession(),
		overlay: &overlayRecorder{},
	}
}

func (r *rig) controller(cfg Config) *Controller {
	c, err := New(cfg, r.session, r.clock, r.display, r.sched, Options{
		Overlay: r.overlay,
		Logger:  quietLogger(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

// runFrames 以固定帧率跑 d 时长，同时推进调度器
func (r *rig) runFrames(c *Controller, fps int, d time.Duration) {
	step := time.Second / time.Duration(fps)
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		r.clock.advance(step)
		c.Frame()
		r.sched.Advance(r.clock.now)
	}
}

func immediateConfig() Config {
	cfg := DefaultConfig()
	cfg.ApplyOnlyAtSceneBoundary = false
	return cfg
}
