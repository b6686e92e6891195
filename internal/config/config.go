// Package config 读取 dynres 的 TOML 配置：全局控制器参数加按场景覆盖。
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"dynres/internal/assets"
	"dynres/internal/resolution"
)

// Config 解析后的配置
type Config struct {
	LogLevel   slog.Level
	Controller resolution.Config
	Scenes     []Scene
	Source     string // 配置来源：文件路径，或 "embedded"
}

// Scene 一个场景：名字、合成负载、最终生效的控制器配置
type Scene struct {
	Name       string
	Load       float64
	Controller resolution.Config
}

const (
	defaultConfigPath = "~/.config/dynres/config.toml"
	embeddedSource    = "embedded"
)

type rawController struct {
	EnableOverlay            *bool    `toml:"enable_overlay"`
	DisableAdaptive          *bool    `toml:"disable_adaptive"`
	StartingRatio            *float64 `toml:"starting_ratio"`
	StaticResolution         *bool    `toml:"static_resolution"`
	UseSceneAverage          *bool    `toml:"use_scene_average"`
	MaxStepCount             *int     `toml:"max_step_count"`
	ApplyOnlyAtSceneBoundary *bool    `toml:"apply_only_at_scene_boundary"`
	LowerFPSLimit            *int     `toml:"lower_fps_limit"`
	UpperFPSLimit            *int     `toml:"upper_fps_limit"`
	TargetFPS                *int     `toml:"target_fps"`
	Fullscreen               *bool    `toml:"fullscreen"`
	DecisionInterval         *string  `toml:"decision_interval"`
}

type rawScene struct {
	Name       string        `toml:"name"`
	Load       float64       `toml:"load"`
	Controller rawController `toml:"controller"`
}

type rawFile struct {
	LogLevel   string        `toml:"log_level"`
	Controller rawController `toml:"controller"`
	Scenes     []rawScene    `toml:"scenes"`
}

// Load 读取 path（空则用默认路径）；文件不存在时退回内置配置
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Embedded()
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = resolved
	return cfg, nil
}

// Embedded 内置默认配置
func Embedded() (Config, error) {
	data, err := assets.LoadConfig(assets.DefaultConfigName)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = embeddedSource
	return cfg, nil
}

// Parse 解析 TOML 内容。未写的字段取默认值；场景配置在全局配置之上覆盖。
func Parse(data []byte) (Config, error) {
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{LogLevel: slog.LevelInfo}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("log_level: %w", err)
		}
	}

	base, err := raw.Controller.apply(resolution.DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("[controller]: %w", err)
	}
	if err := base.Validate(); err != nil {
		return Config{}, fmt.Errorf("[controller]: %w", err)
	}
	cfg.Controller = base

	seen := make(map[string]bool, len(raw.Scenes))
	for i, rs := range raw.Scenes {
		name := strings.TrimSpace(rs.Name)
		if name == "" {
			return Config{}, fmt.Errorf("scenes[%d]: name is empty", i)
		}
		if seen[name] {
			return Config{}, fmt.Errorf("scenes[%d]: duplicate scene %q", i, name)
		}
		seen[name] = true
		if rs.Load < 0 {
			return Config{}, fmt.Errorf("scene %q: load must not be negative", name)
		}

		sc, err := rs.Controller.apply(base)
		if err != nil {
			return Config{}, fmt.Errorf("scene %q: %w", name, err)
		}
		if err := sc.Validate(); err != nil {
			return Config{}, fmt.Errorf("scene %q: %w", name, err)
		}
		cfg.Scenes = append(cfg.Scenes, Scene{Name: name, Load: rs.Load, Controller: sc})
	}
	return cfg, nil
}

// Scene 按名字查找场景
func (c Config) Scene(name string) (Scene, bool) {
	for _, s := range c.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return Scene{}, false
}

// SceneAt 循环取第 i 个场景；没有场景时用全局配置构造一个
func (c Config) SceneAt(i int) Scene {
	if len(c.Scenes) == 0 {
		return Scene{Name: "default", Load: 1, Controller: c.Controller}
	}
	i %= len(c.Scenes)
	if i < 0 {
		i += len(c.Scenes)
	}
	return c.Scenes[i]
}

func (r rawController) apply(cfg resolution.Config) (resolution.Config, error) {
	setBool(&cfg.EnableOverlay, r.EnableOverlay)
	setBool(&cfg.DisableAdaptive, r.DisableAdaptive)
	setBool(&cfg.StaticResolution, r.StaticResolution)
	setBool(&cfg.UseSceneAverage, r.UseSceneAverage)
	setBool(&cfg.ApplyOnlyAtSceneBoundary, r.ApplyOnlyAtSceneBoundary)
	setBool(&cfg.Fullscreen, r.Fullscreen)
	setInt(&cfg.MaxStepCount, r.MaxStepCount)
	setInt(&cfg.LowerFPSLimit, r.LowerFPSLimit)
	setInt(&cfg.UpperFPSLimit, r.UpperFPSLimit)
	setInt(&cfg.TargetFPS, r.TargetFPS)
	if r.StartingRatio != nil {
		cfg.StartingRatio = *r.StartingRatio
	}
	if r.DecisionInterval != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*r.DecisionInterval))
		if err != nil {
			return cfg, fmt.Errorf("decision_interval: %w", err)
		}
		cfg.DecisionInterval = d
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
