package enums

import "fmt"

// ReportStatus is the lifecycle state stored in reports.status.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "inProgress"
	ReportStatusResolved   ReportStatus = "resolved"
)

var validReportStatuses = []ReportStatus{
	ReportStatusPending,
	ReportStatusInProgress,
	ReportStatusResolved,
}

// forward transitions; self-transitions on open states refresh timestamps
// and attachments without moving the lifecycle.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending:    {ReportStatusPending, ReportStatusInProgress, ReportStatusResolved},
	ReportStatusInProgress: {ReportStatusInProgress, ReportStatusResolved},
}

var reopenTransitions = []ReportStatus{ReportStatusPending, ReportStatusInProgress}

// String implements fmt.Stringer.
func (s ReportStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known report status.
func (s ReportStatus) IsValid() bool {
	for _, candidate := range validReportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are expected.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved
}

// CanTransitionTo reports whether a report in status s may move to next.
// Leaving resolved is only possible when allowReopen is set.
func (s ReportStatus) CanTransitionTo(next ReportStatus, allowReopen bool) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return allowReopen && containsStatus(reopenTransitions, next)
	}
	return containsStatus(reportTransitions[s], next)
}

// ParseReportStatus converts raw input into ReportStatus.
func ParseReportStatus(value string) (ReportStatus, error) {
	for _, candidate := range validReportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report status %q", value)
}

func containsStatus(list []ReportStatus, target ReportStatus) bool {
	for _, candidate := range list {
		if candidate == target {
			return true
		}
	}
	return false
}
