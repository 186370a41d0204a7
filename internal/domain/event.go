package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the request topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DeriveRequest asks for the derived report of one city and day.
type DeriveRequest struct {
	RequestID string `json:"request_id,omitempty"`
	City      string `json:"city"`
	Date      string `json:"date"`
}

// OutputEvent is the serialized form destined for the report topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
