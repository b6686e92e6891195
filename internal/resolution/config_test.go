package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.EnableOverlay)
	assert.False(t, cfg.DisableAdaptive)
	assert.Equal(t, 1.0, cfg.StartingRatio)
	assert.False(t, cfg.StaticResolution)
	assert.True(t, cfg.UseSceneAverage)
	assert.Equal(t, 1, cfg.MaxStepCount)
	assert.True(t, cfg.ApplyOnlyAtSceneBoundary)
	assert.Equal(t, 29, cfg.LowerFPSLimit)
	assert.Equal(t, 49, cfg.UpperFPSLimit)
	assert.Equal(t, 60, cfg.TargetFPS)
	assert.True(t, cfg.adaptive())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"limits inverted": func(c *Config) { c.LowerFPSLimit, c.UpperFPSLimit = 50, 40 },
		"target zero":     func(c *Config) { c.TargetFPS = 0 },
		"ratio zero":      func(c *Config) { c.StartingRatio = 0 },
		"ratio above one": func(c *Config) { c.StartingRatio = 1.2 },
		"step count":      func(c *Config) { c.MaxStepCount = -2 },
		"interval":        func(c *Config) { c.DecisionInterval = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigModeString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOnlyAtSceneBoundary = false
	cfg.MaxStepCount = Unlimited
	cfg.UseSceneAverage = false
	assert.Equal(t, "can change during scene recursively", cfg.modeString())
}
