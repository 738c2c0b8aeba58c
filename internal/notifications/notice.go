package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/helphub/helphub-backend/pkg/db/models"
)

// NoticeSubject is the subject line of every resolution notice.
const NoticeSubject = "Your report has been resolved!"

// DefaultExcerptLength is used when no positive length is configured.
const DefaultExcerptLength = 50

// Notice is the simulated email sent to a report's owner on resolution.
type Notice struct {
	ReportID   uint      `json:"reportId"`
	UserID     uint      `json:"userId"`
	To         string    `json:"to"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	Excerpt    string    `json:"excerpt"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// BuildNotice addresses a notice for the report to its owner.
func BuildNotice(user *models.User, report *models.Report, excerptLength int) Notice {
	return Notice{
		ReportID:   report.ID,
		UserID:     user.ID,
		To:         user.Email,
		Name:       user.Name,
		Subject:    NoticeSubject,
		Excerpt:    Excerpt(report.Description, excerptLength),
		ResolvedAt: report.UpdatedAt.Time,
	}
}

// Excerpt returns the first n characters of the description followed by
// "...". The marker is appended even when nothing was cut.
func Excerpt(description string, n int) string {
	if n <= 0 {
		n = DefaultExcerptLength
	}
	runes := []rune(description)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// Body renders the plain-text message.
func (n Notice) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", n.Name)
	b.WriteString("We're happy to inform you that your report regarding:\n")
	fmt.Fprintf(&b, "%q\n", n.Excerpt)
	b.WriteString("has been successfully resolved.\n\n")
	b.WriteString("Thank you for helping improve our community!\n\n")
	b.WriteString("Best,\nThe HelpHub Team\n")
	return b.String()
}
