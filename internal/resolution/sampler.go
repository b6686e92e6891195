package resolution

import "time"

// Reading 一个测量窗口结束时产生的帧率读数
type Reading struct {
	InstantFPS float64
	AverageFPS float64
	Trusted    bool // 平均帧率是否已经可信（预热结束并观察到帧率回落）
}

// Sampler 统计瞬时帧率和场景平均帧率。每个控制器实例一个，随场景重建。
type Sampler struct {
	period    time.Duration // 当前测量窗口长度
	windowEnd time.Duration
	frames    int // 本窗口内的帧数

	totalFrames float64 // 场景内累计帧数（未可信前按瞬时帧率外推）
	steady      bool    // 瞬时帧率出现过回落

	instant float64
	average float64
}

// NewSampler 从 now 开始第一个（较短的）测量窗口
func NewSampler(now time.Duration) *Sampler {
	return &Sampler{
		period:    bootstrapPeriod,
		windowEnd: now + bootstrapPeriod,
	}
}

// Tick 每渲染一帧调用一次。窗口结束时返回新的读数。
func (s *Sampler) Tick(now, sceneElapsed time.Duration) (Reading, bool) {
	s.frames++
	s.totalFrames++

	if now <= s.windowEnd {
		return Reading{}, false
	}

	prev := s.instant
	if s.period > 0 {
		s.instant = float64(s.frames) / s.period.Seconds()
	}
	if prev > s.instant {
		s.steady = true
	}
	s.frames = 0
	if s.period == bootstrapPeriod {
		s.period = steadyPeriod
	}
	s.windowEnd += s.period

	r := Reading{InstantFPS: s.instant}
	if secs := sceneElapsed.Seconds(); s.steady && sceneElapsed > averageWarmup && secs > 0 {
		s.average = s.totalFrames / secs
		r.Trusted = true
	} else {
		// 还不可信：平均值跟随瞬时值，并把累计帧数外推，保证下游总有值可用
		s.average = s.instant
		s.totalFrames = s.instant * secs
	}
	r.AverageFPS = s.average
	return r, true
}

// InstantFPS 最近一个窗口的瞬时帧率
func (s *Sampler) InstantFPS() float64 { return s.instant }

// AverageFPS 最近一次计算的场景平均帧率
func (s *Sampler) AverageFPS() float64 { return s.average }

// Period 当前测量窗口长度
func (s *Sampler) Period() time.Duration { return s.period }
