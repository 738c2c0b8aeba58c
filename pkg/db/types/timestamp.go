package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// TimestampLayout is the fixed-width UTC text form written to the store.
// Rows stamped by JavaScript's toISOString share the prefix, so both sort
// correctly as text.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp is a UTC instant stored as ISO-8601 text. It reads text in any
// layout sqlite may hold as well as native time values from postgres.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC with microsecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// GormDataType keeps gorm treating the column as a time value.
func (Timestamp) GormDataType() string {
	return "time"
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("Timestamp: unsupported Scan type %T", src)
	}
}

func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(TimestampLayout), nil
}

func (t *Timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("Timestamp: parse %q", s)
}
