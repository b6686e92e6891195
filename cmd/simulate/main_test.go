package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynres/internal/config"
	"dynres/internal/resolution"
	"dynres/internal/sim"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("2560x1440")
	require.NoError(t, err)
	assert.Equal(t, 2560, w)
	assert.Equal(t, 1440, h)

	w, h, err = parseSize(" 1280X720 ")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1280, 720}, [2]int{w, h})

	for _, bad := range []string{"", "1920", "x1080", "0x100", "-1x5"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestSelectScenes(t *testing.T) {
	cfg, err := config.Embedded()
	require.NoError(t, err)

	all, err := selectScenes(cfg, "")
	require.NoError(t, err)
	assert.Len(t, all, len(cfg.Scenes))

	picked, err := selectScenes(cfg, "city, city,menu")
	require.NoError(t, err)
	require.Len(t, picked, 3)
	assert.Equal(t, "city", picked[0].Name)
	assert.Equal(t, "menu", picked[2].Name)

	_, err = selectScenes(cfg, "nowhere")
	assert.Error(t, err)
	_, err = selectScenes(cfg, " , ")
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, sim.Report{
		Scenes: []sim.SceneReport{{Name: "city", Frames: 600, Decisions: 9, Width: 1920, Height: 1080, Pending: [2]int{1574, 885}}},
		Resizes: []sim.Resize{{Scene: "forest", Width: 1574, Height: 885}},
		Session: resolution.Session{CurrentWidth: 1574, CurrentHeight: 885, Phase: resolution.Adjusted},
	})
	out := buf.String()
	assert.Contains(t, out, "city")
	assert.Contains(t, out, "1574x885")
	assert.Contains(t, out, "resize to 1574x885")
	assert.Contains(t, out, "(adjusted)")
}

func TestRun_BadConfigReturnsError(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = [\n"), 0o644))

	var out bytes.Buffer
	err := run(options{configPath: path, native: "1920x1080", duration: time.Second}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
