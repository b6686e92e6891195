package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lmittmann/tint"

	"dynres/internal/config"
	"dynres/internal/metrics"
	"dynres/internal/resolution"
	"dynres/internal/ui"
)

type options struct {
	configPath  string
	scene       string
	windowed    bool
	verbose     bool
	metricsAddr string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "配置文件路径（默认 ~/.config/dynres/config.toml，不存在时用内置配置）")
	flag.StringVar(&o.scene, "scene", "", "起始场景名")
	flag.BoolVar(&o.windowed, "windowed", false, "强制窗口模式")
	flag.BoolVar(&o.verbose, "v", false, "输出 debug 日志")
	flag.StringVar(&o.metricsAddr, "metrics-addr", "", "Prometheus 监听地址，例如 :9102；空表示不开")
	flag.Parse()

	if err := run(o); err != nil {
		slog.Error("dynres failed", "error", err)
		os.Exit(1)
	}
}

// newLogger 先装上 tint，级别等配置读完再定
func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)
	return logger, level
}

func run(o options) error {
	logger, level := newLogger(o.verbose)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if !o.verbose {
		level.Set(cfg.LogLevel)
	}
	logger.Info("config loaded", "source", cfg.Source, "scenes", len(cfg.Scenes))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var observe func(string) resolution.Observer
	if o.metricsAddr != "" {
		rec := metrics.NewRecorder(nil)
		observe = func(scene string) resolution.Observer { return rec.ForScene(scene) }
		go func() {
			if err := metrics.Serve(ctx, o.metricsAddr, nil, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)
	ebiten.SetWindowTitle("dynres")

	display := ui.NewDisplay(o.windowed, logger)
	screen, err := ui.NewSceneScreen(cfg, display, ui.Options{
		StartScene: o.scene,
		Observe:    observe,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer screen.Close()

	w, h := display.Size()
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(screen); err != nil {
		return err
	}
	logger.Info("bye", "uptime", screen.Elapsed().Round(time.Millisecond))
	return nil
}
