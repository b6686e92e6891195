package resolution

import "fmt"

// Display 宿主显示表面
type Display interface {
	SetResolution(width, height int, fullscreen bool, targetFPS int)
	Size() (width, height int) // 当前实际显示尺寸
}

// OverlaySink 接收覆盖层状态
type OverlaySink interface {
	Publish(Status)
}

// Observer 可选：观察读数与决策（指标、调试）
type Observer interface {
	ObserveReading(Reading)
	ObserveDecision(d Decision, width, height int)
}

// Status 覆盖层上展示的字段
type Status struct {
	InstantFPS                    float64
	AverageFPS                    float64
	PendingWidth, PendingHeight   int // 下次刷新时的分辨率
	OriginalWidth, OriginalHeight int
	DisplayWidth, DisplayHeight   int
	ActiveRatio                   float64
	Mode                          string
}

const statusFormat = "%.0f FPS - %.0f Avg FPS\n" +
	"Resolution at next refresh: %dx%d\n" +
	"Original resolution: %dx%d\n" +
	"Current res and modifier: %dx%d * %g\n" +
	"Mode: %s"

// String 覆盖层文本；排版只用于显示
func (st Status) String() string {
	return fmt.Sprintf(statusFormat,
		st.InstantFPS, st.AverageFPS,
		st.PendingWidth, st.PendingHeight,
		st.OriginalWidth, st.OriginalHeight,
		st.DisplayWidth, st.DisplayHeight, st.ActiveRatio,
		st.Mode)
}
