package enums

import "fmt"

// VolunteerStatus maps to volunteers.status.
type VolunteerStatus string

const (
	VolunteerStatusActive   VolunteerStatus = "active"
	VolunteerStatusInactive VolunteerStatus = "inactive"
)

var validVolunteerStatuses = []VolunteerStatus{
	VolunteerStatusActive,
	VolunteerStatusInactive,
}

// String implements fmt.Stringer.
func (v VolunteerStatus) String() string {
	return string(v)
}

// IsValid reports whether the value matches a known volunteer status.
func (v VolunteerStatus) IsValid() bool {
	for _, candidate := range validVolunteerStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVolunteerStatus converts raw input into VolunteerStatus.
func ParseVolunteerStatus(value string) (VolunteerStatus, error) {
	for _, candidate := range validVolunteerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid volunteer status %q", value)
}
