package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var HistogramBuckets = []float64{
	// fast responses (0 - 500ms)
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	// PayPal calls usually land here (500ms - 2s)
	750, 1000, 1250, 1500, 1750, 2000,
	// slow (2s - 15s)
	2500, 3000, 4000, 5000, 7500, 10000, 15000,
	// beyond the client timeout
	20000, 30000, 60000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "counter":
		return prometheus.NewCounter(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "gauge_vec":
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "gauge":
		return prometheus.NewGauge(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "histogram_vec":
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets}, m.Args)
	case "histogram":
		return prometheus.NewHistogram(prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets})
	case "summary_vec":
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "summary":
		return prometheus.NewSummary(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	}
	return nil
}

// MetricsBusinessProcess times outbound business calls such as PayPal
// revise/activate. type is the integration, subtype the operation and
// result is "ok" or "error".
var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "process latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"type", "subtype", "result"},
}

// ObserveBusinessProcess records the time since start. It is a no-op until
// the metric has been registered by NewPrometheus.
func ObserveBusinessProcess(typ, subtype string, start time.Time, err error) {
	h, ok := MetricsBusinessProcess.MetricCollector.(*prometheus.HistogramVec)
	if !ok || h == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.WithLabelValues(typ, subtype, result).Observe(MillisecondsSince(start))
}

// MillisecondsSince returns the elapsed time in fractional milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}

const (
	RefererKey = "X-Referer"
)
