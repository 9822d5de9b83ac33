// Package metrics exports run counters in the Prometheus text format so a
// node_exporter textfile collector can pick them up.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ceexam/qconv/internal/corpus"
)

// Run holds the collectors for a single conversion run.
type Run struct {
	registry *prometheus.Registry

	documents *prometheus.CounterVec
	blocks    *prometheus.CounterVec
	generated *prometheus.GaugeVec
	corpus    prometheus.Gauge
	lastRun   prometheus.Gauge
}

// NewRun creates a fresh registry with every qconv collector registered.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qconv_documents_total",
				Help: "Source documents handled, by status",
			},
			[]string{"status"},
		),
		blocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qconv_blocks_total",
				Help: "Question blocks seen, by outcome",
			},
			[]string{"outcome"},
		),
		generated: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qconv_questions_generated",
				Help: "Records generated in the last run, by exam year",
			},
			[]string{"year"},
		),
		corpus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qconv_corpus_questions",
			Help: "Records in the written corpus",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qconv_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	r.registry.MustRegister(r.documents, r.blocks, r.generated, r.corpus, r.lastRun)
	return r
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records an assembler result and the merged corpus.
func (r *Run) Observe(res *corpus.Result, c corpus.Corpus, finished time.Time) {
	for _, d := range res.Documents {
		r.documents.WithLabelValues(string(d.Status)).Inc()
		if d.Status != corpus.StatusProcessed {
			continue
		}
		r.blocks.WithLabelValues("accepted").Add(float64(d.Accepted))
		for reason, n := range d.Rejected {
			r.blocks.WithLabelValues(reason).Add(float64(n))
		}
	}
	for year, n := range res.YearCounts {
		r.generated.WithLabelValues(strconv.Itoa(year)).Set(float64(n))
	}
	r.corpus.Set(float64(len(c.Entries)))
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteFile writes the registry to path atomically.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
