package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar day sent as "2006-01-02". RFC3339 input is accepted and
// truncated to its date. Days are kept as UTC midnight.
type Day struct{ t time.Time }

// ParseDay parses a query or form value.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		DayLayout,
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return Day{t: time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)}, nil
		}
	}
	return Day{}, fmt.Errorf("date: use YYYY-MM-DD")
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = time.Time{}
		return nil
	}
	parsed, err := ParseDay(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(DayLayout))
}

func (d Day) Time() time.Time { return d.t }

// Ptr returns nil for an unset day.
func (d *Day) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.t
	return &t
}

func DayOf(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Day) String() string { return d.t.Format(DayLayout) }
