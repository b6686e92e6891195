// Package metrics 把控制器的读数和决策导出为 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dynres/internal/resolution"
)

// Recorder 实现 resolution.Observer
type Recorder struct {
	scene string

	instantFPS *prometheus.GaugeVec
	averageFPS *prometheus.GaugeVec
	width      *prometheus.GaugeVec
	height     *prometheus.GaugeVec
	decisions  *prometheus.CounterVec
}

// NewRecorder 在 reg 上注册指标；reg 为 nil 时用默认注册表
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		instantFPS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dynres",
			Subsystem: "sampler",
			Name:      "instant_fps",
			Help:      "Frames per second over the last measurement window",
		}, []string{"scene"}),
		averageFPS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dynres",
			Subsystem: "sampler",
			Name:      "average_fps",
			Help:      "Scene average frames per second",
		}, []string{"scene"}),
		width: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dynres",
			Subsystem: "controller",
			Name:      "render_width_pixels",
			Help:      "Render target width after the last decision",
		}, []string{"scene"}),
		height: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dynres",
			Subsystem: "controller",
			Name:      "render_height_pixels",
			Help:      "Render target height after the last decision",
		}, []string{"scene"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dynres",
			Subsystem: "controller",
			Name:      "decisions_total",
			Help:      "Decision cycles by outcome",
		}, []string{"scene", "decision"}),
	}
	reg.MustRegister(r.instantFPS, r.averageFPS, r.width, r.height, r.decisions)
	return r
}

// ForScene 返回共享同一组指标、标签换成 scene 的 Recorder
func (r *Recorder) ForScene(scene string) *Recorder {
	cp := *r
	cp.scene = scene
	return &cp
}

func (r *Recorder) ObserveReading(rd resolution.Reading) {
	r.instantFPS.WithLabelValues(r.scene).Set(rd.InstantFPS)
	r.averageFPS.WithLabelValues(r.scene).Set(rd.AverageFPS)
}

func (r *Recorder) ObserveDecision(d resolution.Decision, width, height int) {
	r.decisions.WithLabelValues(r.scene, d.String()).Inc()
	r.width.WithLabelValues(r.scene).Set(float64(width))
	r.height.WithLabelValues(r.scene).Set(float64(height))
}
