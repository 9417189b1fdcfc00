package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// localDateTime is the zone-less layout the backend uses for LocalDateTime fields.
const localDateTime = "2006-01-02T15:04:05"

// Timestamp decodes both RFC 3339 values and the backend's zone-less
// date-times. Bookings are submitted in UTC and stored without a zone, so
// zone-less values are read back as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		ts.Time = parsed
		return nil
	}
	// LocalDateTime may carry fractional seconds.
	for _, layout := range []string{localDateTime, localDateTime + ".999999999"} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			ts.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// inputLayouts are the booking-time formats accepted from people.
var inputLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	localDateTime,
}

// ParseBookingTime reads a booking time typed by a person. Values with an
// offset are taken as is; others are read in loc.
func ParseBookingTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD HH:MM)", value)
}
