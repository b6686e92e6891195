package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"dynres/internal/config"
	"dynres/internal/metrics"
	"dynres/internal/resolution"
	"dynres/internal/sim"
)

func main() {
	configFlag := flag.String("config", "", "配置文件路径（默认 ~/.config/dynres/config.toml，不存在时用内置配置）")
	nativeFlag := flag.String("native", "1920x1080", "原生分辨率 WxH")
	durationFlag := flag.Duration("duration", 30*time.Second, "每个场景的模拟时长")
	jitterFlag := flag.Float64("jitter", 0.05, "帧时间相对抖动 [0,1)")
	seedFlag := flag.Int64("seed", 1, "随机种子")
	scenesFlag := flag.String("scenes", "", "逗号分隔的场景名，按顺序跑；空表示全部")
	verboseFlag := flag.Bool("v", false, "输出 debug 日志")
	metricsFlag := flag.String("metrics-addr", "", "跑完后在这个地址提供 Prometheus 指标，Ctrl-C 退出")
	flag.Parse()

	if err := run(options{
		configPath:  *configFlag,
		native:      *nativeFlag,
		duration:    *durationFlag,
		jitter:      *jitterFlag,
		seed:        *seedFlag,
		scenes:      *scenesFlag,
		verbose:     *verboseFlag,
		metricsAddr: *metricsFlag,
	}, os.Stdout); err != nil {
		slog.Error("simulate failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	native      string
	duration    time.Duration
	jitter      float64
	seed        int64
	scenes      string
	verbose     bool
	metricsAddr string
}

func run(o options, out io.Writer) error {
	level := new(slog.LevelVar)
	if o.verbose {
		level.Set(slog.LevelDebug)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if !o.verbose {
		level.Set(cfg.LogLevel)
	}

	w, h, err := parseSize(o.native)
	if err != nil {
		return err
	}
	scenes, err := selectScenes(cfg, o.scenes)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	rep, err := sim.Run(sim.Options{
		NativeWidth:   w,
		NativeHeight:  h,
		SceneDuration: o.duration,
		Scenes:        scenes,
		Jitter:        o.jitter,
		Seed:          o.seed,
		Logger:        logger,
		Observe:       func(scene string) resolution.Observer { return rec.ForScene(scene) },
	})
	if err != nil {
		return err
	}
	printReport(out, rep)

	if o.metricsAddr == "" {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return metrics.Serve(ctx, o.metricsAddr, reg, logger)
}

// parseSize 解析 "1920x1080"
func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("分辨率格式应为 WxH: %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("分辨率必须为正: %q", s)
	}
	return w, h, nil
}

// selectScenes 按名字挑场景，可重复；names 为空时返回全部
func selectScenes(cfg config.Config, names string) ([]config.Scene, error) {
	if strings.TrimSpace(names) == "" {
		if len(cfg.Scenes) == 0 {
			return []config.Scene{cfg.SceneAt(0)}, nil
		}
		return cfg.Scenes, nil
	}
	var out []config.Scene
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sc, ok := cfg.Scene(name)
		if !ok {
			return nil, fmt.Errorf("未知场景: %q", name)
		}
		out = append(out, sc)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("没有可用场景: %q", names)
	}
	return out, nil
}

func printReport(out io.Writer, rep sim.Report) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENE\tFRAMES\tDECISIONS\tRESIZES\tDISPLAY\tPENDING\tFPS\tAVG FPS")
	for _, sc := range rep.Scenes {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%dx%d\t%dx%d\t%.1f\t%.1f\n",
			sc.Name, sc.Frames, sc.Decisions, sc.Resizes,
			sc.Width, sc.Height, sc.Pending[0], sc.Pending[1],
			sc.Status.InstantFPS, sc.Status.AverageFPS)
	}
	tw.Flush()

	fmt.Fprintln(out)
	for _, rz := range rep.Resizes {
		fmt.Fprintf(out, "%8.2fs  %-10s resize to %dx%d\n", rz.At.Seconds(), rz.Scene, rz.Width, rz.Height)
	}
	s := rep.Session
	fmt.Fprintf(out, "final %dx%d (%s), floor %dx%d, original %dx%d\n",
		s.CurrentWidth, s.CurrentHeight, s.Phase, s.MinWidth, s.MinHeight, s.OriginalWidth, s.OriginalHeight)
}
