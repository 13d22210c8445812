package repositories

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 zoned layout timestamps are stored with.
const TimestampLayout = time.RFC3339Nano

// FormatTimestamp renders t the way it is written to a timestamp column.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp reads a value written by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTimestamp(*t)
}

// timestampScanner scans a NOT NULL timestamp column.
type timestampScanner struct{ dst *time.Time }

func (s timestampScanner) Scan(src any) error {
	t, ok, err := parseSource(src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unexpected NULL timestamp")
	}
	*s.dst = t
	return nil
}

// nullTimestampScanner scans a nullable timestamp column; NULL becomes nil.
type nullTimestampScanner struct{ dst **time.Time }

func (s nullTimestampScanner) Scan(src any) error {
	t, ok, err := parseSource(src)
	if err != nil {
		return err
	}
	if !ok {
		*s.dst = nil
		return nil
	}
	*s.dst = &t
	return nil
}

func parseSource(src any) (time.Time, bool, error) {
	switch v := src.(type) {
	case nil:
		return time.Time{}, false, nil
	case string:
		t, err := ParseTimestamp(v)
		return t, err == nil, err
	case []byte:
		t, err := ParseTimestamp(string(v))
		return t, err == nil, err
	case time.Time:
		return v, true, nil
	default:
		return time.Time{}, false, fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

// nullTextScanner scans a nullable text column; NULL becomes "".
type nullTextScanner struct{ dst *string }

func (s nullTextScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dst = ""
	case string:
		*s.dst = v
	case []byte:
		*s.dst = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a string", src)
	}
	return nil
}
