package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteIntakeMetrics records outcomes of the public quote submission flow.
type QuoteIntakeMetrics struct {
	uploadDuration *prometheus.HistogramVec
	submissions    *prometheus.CounterVec
	attachments    prometheus.Counter
}

// NewQuoteIntakeMetrics registers the intake metrics on the provided registerer.
func NewQuoteIntakeMetrics(reg prometheus.Registerer) *QuoteIntakeMetrics {
	if reg == nil {
		return &QuoteIntakeMetrics{}
	}
	uploadDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_attachment_upload_duration_seconds",
		Help:    "Duration of individual attachment uploads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource_type"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Quote submissions by outcome.",
	}, []string{"outcome"})
	attachments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_attachments_uploaded_total",
		Help: "Attachments uploaded across all quote submissions.",
	})
	reg.MustRegister(uploadDuration, submissions, attachments)
	return &QuoteIntakeMetrics{
		uploadDuration: uploadDuration,
		submissions:    submissions,
		attachments:    attachments,
	}
}

// ObserveUpload records the duration for one attachment transfer.
func (q *QuoteIntakeMetrics) ObserveUpload(resourceType string, duration time.Duration) {
	if q == nil || q.uploadDuration == nil {
		return
	}
	q.uploadDuration.WithLabelValues(normalizeLabel(resourceType)).Observe(duration.Seconds())
}

// IncSubmission increments the submission counter for the given outcome.
func (q *QuoteIntakeMetrics) IncSubmission(outcome string) {
	if q == nil || q.submissions == nil {
		return
	}
	q.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncAttachment counts one stored attachment.
func (q *QuoteIntakeMetrics) IncAttachment() {
	if q == nil || q.attachments == nil {
		return
	}
	q.attachments.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
