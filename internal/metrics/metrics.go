// Package metrics exposes Prometheus counters for fault containment and diagnostic bookkeeping.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "faultline"

// Recorder owns the collectors. A nil *Recorder records nothing.
type Recorder struct {
	faults    *prometheus.CounterVec
	dumps     *prometheus.CounterVec
	reentrant prometheus.Counter
	overflows prometheus.Counter
	reports   *prometheus.CounterVec
}

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "guard",
				Name:      "faults_total",
				Help:      "Faults intercepted by crash guards.",
			},
			[]string{"kind"},
		),
		dumps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "guard",
				Name:      "dumps_total",
				Help:      "Dump synthesis attempts by result.",
			},
			[]string{"result"},
		),
		reentrant: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "reentrant_faults_total",
			Help:      "Faults raised while a previous fault was being handled.",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "diag",
			Name:      "context_overflows_total",
			Help:      "Error context frames evicted because the stack was full.",
		}),
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "diag",
				Name:      "reports_total",
				Help:      "Errors reported by severity.",
			},
			[]string{"level"},
		),
	}

	if reg != nil {
		reg.MustRegister(r.faults, r.dumps, r.reentrant, r.overflows, r.reports)
	}

	return r
}

// Default returns the process-wide Recorder registered with prometheus.DefaultRegisterer.
func Default() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = New(prometheus.DefaultRegisterer)
	})

	return defaultRecorder
}

// Fault counts an intercepted fault of the given kind.
func (r *Recorder) Fault(kind string) {
	if r == nil {
		return
	}

	r.faults.WithLabelValues(kind).Inc()
}

// Dump counts a dump synthesis attempt; result is "generated" or "failed".
func (r *Recorder) Dump(result string) {
	if r == nil {
		return
	}

	r.dumps.WithLabelValues(result).Inc()
}

// Reentrant counts a fault raised during fault handling.
func (r *Recorder) Reentrant() {
	if r == nil {
		return
	}

	r.reentrant.Inc()
}

// ContextOverflow counts an evicted error context frame.
func (r *Recorder) ContextOverflow() {
	if r == nil {
		return
	}

	r.overflows.Inc()
}

// Report counts a reported error.
func (r *Recorder) Report(level string) {
	if r == nil {
		return
	}

	r.reports.WithLabelValues(level).Inc()
}
