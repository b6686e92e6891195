package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynres/internal/resolution"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, embeddedSource, cfg.Source)
	assert.Equal(t, resolution.DefaultConfig(), cfg.Controller)
	require.Len(t, cfg.Scenes, 4)
	assert.Equal(t, "menu", cfg.Scenes[0].Name)

	forest, ok := cfg.Scene("forest")
	require.True(t, ok)
	assert.Equal(t, resolution.Unlimited, forest.Controller.MaxStepCount)
	assert.False(t, forest.Controller.ApplyOnlyAtSceneBoundary)
	assert.Equal(t, 29, forest.Controller.LowerFPSLimit, "未覆盖的字段继承全局配置")

	credits, ok := cfg.Scene("credits")
	require.True(t, ok)
	assert.True(t, credits.Controller.StaticResolution)
	assert.Equal(t, 0.8, credits.Controller.StartingRatio)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[controller]
lower_fps_limit = 25
upper_fps_limit = 55
decision_interval = " 500ms "
enable_overlay = false

[[scenes]]
name = "  arena "
load = 3.0
[scenes.controller]
target_fps = 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 25, cfg.Controller.LowerFPSLimit)
	assert.Equal(t, 55, cfg.Controller.UpperFPSLimit)
	assert.Equal(t, 500*time.Millisecond, cfg.Controller.DecisionInterval)
	assert.False(t, cfg.Controller.EnableOverlay)
	assert.Equal(t, 1, cfg.Controller.MaxStepCount)

	arena, ok := cfg.Scene("arena")
	require.True(t, ok)
	assert.Equal(t, 3.0, arena.Load)
	assert.Equal(t, 30, arena.Controller.TargetFPS)
	assert.Equal(t, 25, arena.Controller.LowerFPSLimit)
	assert.False(t, arena.Controller.EnableOverlay)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad toml":        "controller = [",
		"bad level":       `log_level = "loud"`,
		"bad interval":    "[controller]\ndecision_interval = \"soon\"",
		"inverted limits": "[controller]\nlower_fps_limit = 60",
		"unnamed scene":   "[[scenes]]\nload = 1.0",
		"duplicate scene": "[[scenes]]\nname = \"a\"\n[[scenes]]\nname = \"a\"",
		"negative load":   "[[scenes]]\nname = \"a\"\nload = -1.0",
		"scene ratio":     "[[scenes]]\nname = \"a\"\n[scenes.controller]\nstarting_ratio = 2.0",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidScenesReportName(t *testing.T) {
	_, err := Parse([]byte("[[scenes]]\nname = \"boss\"\n[scenes.controller]\nmax_step_count = -5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scene "boss"`)
}

func TestSceneAt(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	sc := cfg.SceneAt(3)
	assert.Equal(t, "default", sc.Name)
	assert.Equal(t, resolution.DefaultConfig(), sc.Controller)

	cfg, err = Embedded()
	require.NoError(t, err)
	assert.Equal(t, "menu", cfg.SceneAt(4).Name)
	assert.Equal(t, "credits", cfg.SceneAt(-1).Name)
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "dynres")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[controller]\ntarget_fps = 90\nupper_fps_limit = 80"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Controller.TargetFPS)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.Source)
}
