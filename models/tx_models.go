package models

import (
	// Go Internal Packages
	"time"
)

// Record is a raw message pulled off the ingestion topic.
type Record struct {
	Key   []byte
	Value []byte
	Topic string
}

// Transaction is the inbound event to score. It is transient: the only
// retained copy is the serialized history entry written to redis.
type Transaction struct {
	FromUser  string  `json:"fromUser"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Location  string  `json:"location,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// timestamp layouts accepted on the wire, tried in order
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time parses the transaction's own timestamp, falling back to now when
// the field is absent. The hour of the returned value drives the
// off-hours pattern check, so offset-less timestamps parse as local time.
func (t *Transaction) Time(now time.Time) (time.Time, error) {
	if t.Timestamp == "" {
		return now, nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		ts, err = time.ParseInLocation(layout, t.Timestamp, time.Local)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
