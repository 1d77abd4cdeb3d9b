package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Run holds the metrics of one report run. A batch job has nothing to
// scrape, so instead of an HTTP endpoint the values are flushed to a
// textfile for the node_exporter textfile collector.
type Run struct {
	registry *prometheus.Registry

	Lines       *prometheus.CounterVec
	Records     prometheus.Gauge
	URLs        prometheus.Gauge
	ErrorRatio  prometheus.Gauge
	Duration    prometheus.Gauge
	LastSuccess prometheus.Gauge
}

func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		Lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logreport_lines_total",
				Help: "Log lines handled during the run, by parse result.",
			},
			[]string{"result"},
		),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logreport_records_aggregated",
			Help: "Records that made it into the aggregation.",
		}),
		URLs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logreport_distinct_urls",
			Help: "Distinct URLs seen in the processed log.",
		}),
		ErrorRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logreport_parse_error_ratio",
			Help: "Unparsable lines as a fraction of all lines read.",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logreport_run_duration_seconds",
			Help: "Wall-clock duration of the run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logreport_last_success_timestamp_seconds",
			Help: "Unix time of the last successful report generation.",
		}),
	}
	r.Register(r.registry)
	return r
}

func (r *Run) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		r.Lines,
		r.Records,
		r.URLs,
		r.ErrorRatio,
		r.Duration,
		r.LastSuccess,
	)
}

// WriteTextfile dumps the run metrics in text exposition format. The
// write is atomic so the textfile collector never reads a half file.
func (r *Run) WriteTextfile(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".metrics-*")
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write metrics: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("place metrics file: %w", err)
	}
	return nil
}
