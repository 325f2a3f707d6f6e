package menu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricNameOpenWindows  = "menu_open_windows"
	MetricNameClicksTotal  = "menu_clicks_total"
	MetricNameClosesTotal  = "menu_closes_total"
	MetricNameShowFailures = "menu_show_failures_total"

	LabelResult = "result"

	clickDispatched = "dispatched"
	clickCancelled  = "cancelled"
	clickIgnored    = "ignored"
)

// Metrics holds the router's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	OpenWindows  prometheus.Gauge
	Clicks       *prometheus.CounterVec
	Closes       prometheus.Counter
	ShowFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OpenWindows: f.NewGauge(prometheus.GaugeOpts{
			Name: MetricNameOpenWindows,
			Help: "Number of menu windows currently open",
		}),
		Clicks: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameClicksTotal,
			Help: "Clicks delivered to the router, by result",
		}, []string{LabelResult}),
		Closes: f.NewCounter(prometheus.CounterOpts{
			Name: MetricNameClosesTotal,
			Help: "Menu windows closed by viewers",
		}),
		ShowFailures: f.NewCounter(prometheus.CounterOpts{
			Name: MetricNameShowFailures,
			Help: "Menus that could not be opened",
		}),
	}
}

func (m *Metrics) opened() {
	if m != nil {
		m.OpenWindows.Inc()
	}
}

func (m *Metrics) closed() {
	if m != nil {
		m.OpenWindows.Dec()
		m.Closes.Inc()
	}
}

func (m *Metrics) click(result string) {
	if m != nil {
		m.Clicks.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) showFailed() {
	if m != nil {
		m.ShowFailures.Inc()
	}
}
