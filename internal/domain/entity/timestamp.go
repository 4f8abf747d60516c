package entity

import (
	"strconv"
	"time"
)

// ISOLayout is ISO-8601 in UTC with millisecond precision, e.g.
// 2024-05-01T09:30:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Timestamp marshals as an ISO-8601 UTC string.
type Timestamp time.Time

func (t Timestamp) String() string { return time.Time(t).UTC().Format(ISOLayout) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.UTC())
	return nil
}
