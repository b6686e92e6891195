package resolution

// Phase 记录自适应系统是否已经调整过分辨率，决定降档幅度
type Phase int

const (
	Unadjusted Phase = iota // 仍是原生分辨率，第一次降档用大步长
	Adjusted                // 已经调整过，之后用小步长
)

func (p Phase) String() string {
	if p == Adjusted {
		return "adjusted"
	}
	return "unadjusted"
}

// Session 进程级的分辨率状态，跨场景复用。
// 每个 Controller 构造时传入同一个 *Session；只在渲染线程上读写。
type Session struct {
	OriginalWidth, OriginalHeight int
	CurrentWidth, CurrentHeight   int
	MinWidth, MinHeight           int

	Phase               Phase
	LastSceneAverageFPS float64
}

// NewSession 创建一个空的会话状态，原生分辨率在第一次 Init 时捕获
func NewSession() *Session {
	return &Session{}
}

// Init 在每个场景开始时调用。原生分辨率只记录一次；下限每次从原生分辨率重新计算。
func (s *Session) Init(nativeWidth, nativeHeight int) {
	if s.OriginalWidth == 0 {
		s.OriginalWidth = nativeWidth
	}
	if s.OriginalHeight == 0 {
		s.OriginalHeight = nativeHeight
	}
	if s.CurrentWidth == 0 {
		s.CurrentWidth = s.OriginalWidth
	}
	if s.CurrentHeight == 0 {
		s.CurrentHeight = s.OriginalHeight
	}
	s.MinWidth = int(float64(s.OriginalWidth) * floorRatio)
	s.MinHeight = int(float64(s.OriginalHeight) * floorRatio)
}

// markAdjusted 单调：一旦进入 Adjusted 不会回退
func (s *Session) markAdjusted() {
	s.Phase = Adjusted
}

// clamp 把尺寸逐轴限制在 [Min, Original]
func (s *Session) clamp(width, height int) (int, int) {
	return clampInt(width, s.MinWidth, s.OriginalWidth), clampInt(height, s.MinHeight, s.OriginalHeight)
}

// scaled 当前分辨率按 factor 缩放，两个轴同一系数，结果已夹紧
func (s *Session) scaled(factor float64) (int, int) {
	w := int(float64(s.CurrentWidth) * factor)
	h := int(float64(s.CurrentHeight) * factor)
	return s.clamp(w, h)
}

// Ratio 当前分辨率相对原生的比例（按高度）
func (s *Session) Ratio() float64 {
	if s.OriginalHeight == 0 {
		return 1
	}
	return float64(s.CurrentHeight) / float64(s.OriginalHeight)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
