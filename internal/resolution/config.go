// File resolution/config.go
package resolution

import (
	"errors"
	"fmt"
	"time"
)

// 步进与采样相关的固定参数
const (
	floorRatio = 0.69 // 最低分辨率 = 原生分辨率 × 0.69

	firstStepDown = 0.82 // 第一次降档幅度更大
	nextStepDown  = 0.92
	stepUp        = 1.10

	bootstrapPeriod = 500 * time.Millisecond // 首个测量窗口，尽快拿到第一帧率
	steadyPeriod    = 2 * time.Second        // 之后的测量窗口，降低噪声
	averageWarmup   = 2 * time.Second        // 平均帧率可信之前的预热时间

	DefaultDecisionInterval = 2 * time.Second
)

// Unlimited 表示降档次数不受限制（直到最低分辨率）
const Unlimited = -1

// Config 单个控制器实例（一个场景）的只读配置
type Config struct {
	EnableOverlay            bool
	DisableAdaptive          bool    // true 时控制器完全不工作
	StartingRatio            float64 // 1 表示原生，0.9 表示 90%
	StaticResolution         bool
	UseSceneAverage          bool
	MaxStepCount             int // -1 不限，0 关闭，N 最多 N 次降档
	ApplyOnlyAtSceneBoundary bool
	LowerFPSLimit            int
	UpperFPSLimit            int
	TargetFPS                int
	Fullscreen               bool
	DecisionInterval         time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		EnableOverlay:            true,
		StartingRatio:            1,
		UseSceneAverage:          true,
		MaxStepCount:             1,
		ApplyOnlyAtSceneBoundary: true,
		LowerFPSLimit:            29,
		UpperFPSLimit:            49,
		TargetFPS:                60,
		Fullscreen:               true,
		DecisionInterval:         DefaultDecisionInterval,
	}
}

var (
	ErrFPSLimits     = errors.New("帧率下限必须小于上限")
	ErrStartingRatio = errors.New("起始比例必须在 (0, 1] 之间")
)

// Validate 检查配置是否自洽
func (c Config) Validate() error {
	if c.LowerFPSLimit >= c.UpperFPSLimit {
		return fmt.Errorf("%w: lower=%d upper=%d", ErrFPSLimits, c.LowerFPSLimit, c.UpperFPSLimit)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("目标帧率无效: %d", c.TargetFPS)
	}
	if c.StartingRatio <= 0 || c.StartingRatio > 1 {
		return fmt.Errorf("%w: %g", ErrStartingRatio, c.StartingRatio)
	}
	if c.MaxStepCount < Unlimited {
		return fmt.Errorf("降档次数无效: %d", c.MaxStepCount)
	}
	if c.DecisionInterval < 0 {
		return fmt.Errorf("决策间隔无效: %s", c.DecisionInterval)
	}
	return nil
}

// adaptive 是否会启动决策循环
func (c Config) adaptive() bool {
	return !c.DisableAdaptive && !c.StaticResolution && c.MaxStepCount != 0
}

func (c Config) interval() time.Duration {
	if c.DecisionInterval <= 0 {
		return DefaultDecisionInterval
	}
	return c.DecisionInterval
}

// modeString 覆盖层上的配置回显
func (c Config) modeString() string {
	mode := "can change during scene"
	if c.ApplyOnlyAtSceneBoundary {
		mode = "only at scene change"
	}
	steps := fmt.Sprintf("%d times", c.MaxStepCount)
	if c.MaxStepCount == Unlimited {
		steps = "recursively"
	}
	s := mode + " " + steps
	if c.UseSceneAverage {
		s += "\n      based on scene average"
	}
	return s
}
