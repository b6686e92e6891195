package ui

import "time"

// wallClock 进程和场景两级计时，场景切换时 newScene
type wallClock struct {
	now        func() time.Time
	start      time.Time
	sceneStart time.Time
}

func newWallClock(now func() time.Time) *wallClock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &wallClock{now: now, start: t, sceneStart: t}
}

func (c *wallClock) newScene() { c.sceneStart = c.now() }

func (c *wallClock) SinceStart() time.Duration { return c.now().Sub(c.start) }

func (c *wallClock) SinceSceneStart() time.Duration { return c.now().Sub(c.sceneStart) }
