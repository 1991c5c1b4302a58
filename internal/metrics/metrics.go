package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// UploadMetrics records what the conditional uploader did for each field.
type UploadMetrics interface {
	// ObserveUpload records one upload attempt of a field; outcome is "success" or "failure".
	ObserveUpload(label, outcome string, durationSeconds float64)
	// IncSkipped counts fields that needed no upload; kind is "empty" or "persisted".
	IncSkipped(kind string)
}

// StoreMetrics records writes handled by the object store endpoint.
type StoreMetrics interface {
	IncStored(backend, outcome string)
}

// Noop implements every interface without emitting anything.
type Noop struct{}

func (Noop) ObserveUpload(string, string, float64) {}
func (Noop) IncSkipped(string)                     {}
func (Noop) IncStored(string, string)              {}

// Prom implements the interfaces with Prometheus collectors.
type Prom struct {
	uploads *prometheus.HistogramVec
	skipped *prometheus.CounterVec
	stored  *prometheus.CounterVec
}

// NewProm creates the collectors under namespace and registers them with reg.
func NewProm(namespace string, reg prometheus.Registerer) *Prom {
	p := &Prom{
		uploads: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "media_upload_duration_seconds",
			Help:      "Duration of media uploads by field label and outcome",
			Buckets:   prometheus.DefBuckets,
		}, []string{"label", "outcome"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_upload_skipped_total",
			Help:      "Media fields that needed no upload, by reference kind",
		}, []string{"kind"}),
		stored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "object_store_writes_total",
			Help:      "Objects written by the object store endpoint, by backend and outcome",
		}, []string{"backend", "outcome"}),
	}
	reg.MustRegister(p.uploads, p.skipped, p.stored)
	return p
}

func (p *Prom) ObserveUpload(label, outcome string, durationSeconds float64) {
	p.uploads.WithLabelValues(label, outcome).Observe(durationSeconds)
}

func (p *Prom) IncSkipped(kind string) {
	p.skipped.WithLabelValues(kind).Inc()
}

func (p *Prom) IncStored(backend, outcome string) {
	p.stored.WithLabelValues(backend, outcome).Inc()
}
