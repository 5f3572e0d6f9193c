package domain

import (
	"context"
	"time"
)

// ConversionRequest is one conversion asked for by a collaborator.
type ConversionRequest struct {
	Category Category `json:"category"`
	Value    float64  `json:"value"`
	From     string   `json:"from"`
	To       string   `json:"to"`
}

// ConversionResult is the outcome of a ConversionRequest. Error is set only
// on stream replies for requests that could not be converted.
type ConversionResult struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Value       float64   `json:"value"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Result      float64   `json:"result"`
	Display     string    `json:"display,omitempty"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// RawEvent represents an unprocessed message from the source topic.
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

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
