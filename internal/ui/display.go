package ui

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// 拿不到显示器尺寸时用的原生分辨率
const (
	fallbackWidth  = 1920
	fallbackHeight = 1080
)

// Display 把控制器的改分辨率请求落到 ebiten 窗口上。
// 渲染尺寸由 Layout 返回，ebiten 负责拉伸到窗口或全屏。
type Display struct {
	width, height int
	windowed      bool // 强制窗口模式，忽略配置里的全屏
	fullscreen    bool
	log           *slog.Logger
}

// NewDisplay 以显示器尺寸作为原生分辨率
func NewDisplay(windowed bool, logger *slog.Logger) *Display {
	w, h := nativeSize()
	if logger == nil {
		logger = slog.Default()
	}
	return &Display{width: w, height: h, windowed: windowed, log: logger}
}

func nativeSize() (int, int) {
	if m := ebiten.Monitor(); m != nil {
		if w, h := m.Size(); w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackWidth, fallbackHeight
}

// SetResolution 立即返回，不确认是否生效
func (d *Display) SetResolution(width, height int, fullscreen bool, targetFPS int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.width, d.height = width, height
	full := fullscreen && !d.windowed
	if full != d.fullscreen || full != ebiten.IsFullscreen() {
		ebiten.SetFullscreen(full)
		d.fullscreen = full
	}
	if !full {
		ebiten.SetWindowSize(width, height)
	}
	ensurePacing(targetFPS)
	d.log.Debug("display updated", "width", width, "height", height, "fullscreen", full, "fps", targetFPS)
}

// Size 当前渲染尺寸
func (d *Display) Size() (int, int) { return d.width, d.height }
