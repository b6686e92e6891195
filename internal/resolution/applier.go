package resolution

// resize 按配置立即应用，或只记录下来等下一个场景
func (c *Controller) resize(width, height int) {
	if c.cfg.ApplyOnlyAtSceneBoundary {
		c.stage(width, height)
		return
	}
	c.apply(width, height)
}

// apply 调用宿主改分辨率；不等待结果，直接认为成功
func (c *Controller) apply(width, height int) {
	width, height = c.session.clamp(width, height)
	c.log.Info("resizing", "to", formatSize(width, height))
	c.display.SetResolution(width, height, c.cfg.Fullscreen, c.cfg.TargetFPS)
	c.session.CurrentWidth, c.session.CurrentHeight = width, height
	c.session.markAdjusted()
	c.resizes++
}

// stage 只更新待生效的分辨率，下一个场景开始时才真正应用
func (c *Controller) stage(width, height int) {
	width, height = c.session.clamp(width, height)
	c.log.Info("resolution staged for next scene", "to", formatSize(width, height))
	c.session.CurrentWidth, c.session.CurrentHeight = width, height
	c.session.markAdjusted()
}

// enterScene 场景开始时的特殊处理：起始比例，或补上一场景留下的分辨率
func (c *Controller) enterScene() {
	s := c.session
	ratio := c.cfg.StartingRatio
	if ratio != 1 && (s.Phase == Unadjusted || c.cfg.StaticResolution) {
		// 从原生分辨率算，避免静态场景每次进入都叠乘
		c.apply(int(float64(s.OriginalWidth)*ratio), int(float64(s.OriginalHeight)*ratio))
		return
	}
	// 上一场景可能只记录了分辨率没应用；即使本场景是立即模式也要补上
	w, h := c.display.Size()
	if s.Phase == Adjusted && (c.cfg.ApplyOnlyAtSceneBoundary || w != s.CurrentWidth || h != s.CurrentHeight) {
		c.apply(s.CurrentWidth, s.CurrentHeight)
		s.LastSceneAverageFPS = 0
	}
}
