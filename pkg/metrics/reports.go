package metrics

import (
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// Notification outcomes.
const (
	NoticeSent    = "sent"
	NoticeSkipped = "skipped"
	NoticeFailed  = "failed"
)

// ReportMetrics counts report lifecycle activity. A nil *ReportMetrics is a
// valid no-op recorder.
type ReportMetrics struct {
	submitted     *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewReportMetrics registers the report metrics on the provided registerer.
func NewReportMetrics(reg prometheus.Registerer, namespace string) *ReportMetrics {
	if reg == nil {
		return &ReportMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Reports submitted, by kind (owned or anonymous).",
	}, []string{"kind"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_transitions_total",
		Help:      "Committed report status writes.",
	}, []string{"from", "to"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolution_notices_total",
		Help:      "Resolution notices by sink and outcome.",
	}, []string{"sink", "outcome"})
	reg.MustRegister(submitted, transitions, notifications)
	return &ReportMetrics{
		submitted:     submitted,
		transitions:   transitions,
		notifications: notifications,
	}
}

// IncSubmitted counts a new report.
func (m *ReportMetrics) IncSubmitted(anonymous bool) {
	if m == nil || m.submitted == nil {
		return
	}
	kind := "owned"
	if anonymous {
		kind = "anonymous"
	}
	m.submitted.WithLabelValues(kind).Inc()
}

// IncTransition counts a committed status write.
func (m *ReportMetrics) IncTransition(from, to enums.ReportStatus) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(string(from)), normalizeLabel(string(to))).Inc()
}

// IncNotification counts a notice outcome for the named sink.
func (m *ReportMetrics) IncNotification(sink, outcome string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(sink), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
