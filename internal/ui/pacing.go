package ui

import "github.com/hajimehoshi/ebiten/v2"

var (
	pacedFPS = -1 // 当前生效的目标帧率；-1 表示还没设置过
)

// tpsFor 目标帧率换算成 ebiten 的 TPS；<=0 表示跟随显示器刷新率
func tpsFor(targetFPS int) int {
	if targetFPS <= 0 {
		return ebiten.DefaultTPS
	}
	return targetFPS
}

// ensurePacing 按目标帧率设置逻辑帧和垂直同步，只在变化时调用 ebiten
func ensurePacing(targetFPS int) {
	if targetFPS == pacedFPS {
		return
	}
	// 指定了帧率就关掉 vsync，否则帧率会被刷新率卡住
	ebiten.SetVsyncEnabled(targetFPS <= 0)
	ebiten.SetTPS(tpsFor(targetFPS))
	pacedFPS = targetFPS
}
