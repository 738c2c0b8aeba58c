package enums

import "testing"

func TestReportStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ReportStatus
		reopen   bool
		want     bool
	}{
		{ReportStatusPending, ReportStatusInProgress, false, true},
		{ReportStatusPending, ReportStatusResolved, false, true},
		{ReportStatusPending, ReportStatusPending, false, true},
		{ReportStatusInProgress, ReportStatusInProgress, false, true},
		{ReportStatusInProgress, ReportStatusResolved, false, true},
		{ReportStatusInProgress, ReportStatusPending, false, false},
		{ReportStatusInProgress, ReportStatusPending, true, false},
		{ReportStatusResolved, ReportStatusPending, false, false},
		{ReportStatusResolved, ReportStatusInProgress, false, false},
		{ReportStatusResolved, ReportStatusResolved, false, false},
		{ReportStatusResolved, ReportStatusPending, true, true},
		{ReportStatusResolved, ReportStatusInProgress, true, true},
		{ReportStatusResolved, ReportStatusResolved, true, false},
		{ReportStatus("closed"), ReportStatusResolved, true, false},
		{ReportStatusPending, ReportStatus("closed"), true, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to, tt.reopen); got != tt.want {
			t.Fatalf("%s -> %s (reopen=%v): expected %v got %v", tt.from, tt.to, tt.reopen, tt.want, got)
		}
	}
}

func TestParseReportStatus(t *testing.T) {
	status, err := ParseReportStatus("inProgress")
	if err != nil || status != ReportStatusInProgress {
		t.Fatalf("unexpected parse result %q err=%v", status, err)
	}
	if _, err := ParseReportStatus("in_progress"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !ReportStatusResolved.IsTerminal() || ReportStatusPending.IsTerminal() {
		t.Fatal("only resolved is terminal")
	}
}

func TestParseVolunteerStatus(t *testing.T) {
	if _, err := ParseVolunteerStatus("inactive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if VolunteerStatus("retired").IsValid() {
		t.Fatal("retired should not be a valid volunteer status")
	}
}
