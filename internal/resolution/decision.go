package resolution

// Decision 一次决策的结果
type Decision int

const (
	Hold Decision = iota
	StepDown
	StepUp
)

func (d Decision) String() string {
	switch d {
	case StepDown:
		return "step_down"
	case StepUp:
		return "step_up"
	default:
		return "hold"
	}
}

// 降档系数按阶段查表：第一次假定还在原生分辨率，跳得大一些；之后细调避免过冲
var stepDownFactor = map[Phase]float64{
	Unadjusted: firstStepDown,
	Adjusted:   nextStepDown,
}

// Signal 按配置选择参与决策的帧率
func (c *Controller) Signal() float64 {
	if c.cfg.UseSceneAverage {
		// 场景切换后上一场景的平均值可能还没有
		if c.session.LastSceneAverageFPS > 0 {
			return c.session.LastSceneAverageFPS
		}
		return c.sampler.AverageFPS()
	}
	return c.sampler.InstantFPS()
}

// decide 纯判断，不修改状态
func (c *Controller) decide(signal float64) Decision {
	s := c.session
	if signal <= 0 {
		return Hold // 还没有数据
	}
	if signal < float64(c.cfg.LowerFPSLimit) && s.CurrentHeight > s.MinHeight {
		if c.budget == 0 {
			return Hold
		}
		return StepDown
	}
	if s.Phase == Adjusted && signal >= float64(c.cfg.UpperFPSLimit) && s.CurrentHeight < s.OriginalHeight {
		return StepUp
	}
	return Hold
}

// Decide 决策循环的一次执行：判断、必要时改分辨率、再排下一次
func (c *Controller) Decide() Decision {
	c.task = nil
	if c.stopped || c.sampler == nil {
		return Hold
	}

	signal := c.Signal()
	d := c.decide(signal)
	switch d {
	case StepDown:
		w, h := c.session.scaled(stepDownFactor[c.session.Phase])
		c.resize(w, h)
		if c.budget > 0 {
			c.budget--
		}
	case StepUp:
		w, h := c.session.scaled(stepUp)
		c.resize(w, h)
	}
	c.decisions++

	c.log.Debug("resolution decision",
		"decision", d.String(),
		"fps", signal,
		"width", c.session.CurrentWidth,
		"height", c.session.CurrentHeight,
		"budget", c.budget)
	if c.observer != nil {
		c.observer.ObserveDecision(d, c.session.CurrentWidth, c.session.CurrentHeight)
	}

	c.arm()
	return d
}

// arm 安排下一次决策
func (c *Controller) arm() {
	if c.stopped || !c.cfg.adaptive() {
		return
	}
	if c.task != nil {
		c.task.Cancel()
	}
	c.task = c.sched.After(c.cfg.interval(), func() { c.Decide() })
}
