package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNegativeValue rejects negative length and weight inputs.
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrNonFiniteValue rejects NaN and infinite inputs.
	ErrNonFiniteValue = errors.New("value must be a finite number")

	// ErrOutOfRange rejects conversions whose result overflows float64.
	ErrOutOfRange = errors.New("converted value is out of range")
)

// ParseRequest decodes a RawEvent's JSON value into a ConversionRequest.
func ParseRequest(raw RawEvent) (ConversionRequest, error) {
	var req ConversionRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ConversionRequest{}, fmt.Errorf("parse conversion request: %w", err)
	}
	return req, nil
}

// NormalizeRequest trims and lower-cases the category and unit tokens.
func NormalizeRequest(req ConversionRequest) ConversionRequest {
	req.Category = Category(strings.ToLower(strings.TrimSpace(string(req.Category))))
	req.From = strings.ToLower(strings.TrimSpace(req.From))
	req.To = strings.ToLower(strings.TrimSpace(req.To))
	return req
}

// ValidateRequest applies the input rules of the conversion form: the
// category must exist, the value must be finite, and length and weight
// values must be non-negative. Unit tokens are checked by the converters.
func ValidateRequest(req ConversionRequest) error {
	c, err := ParseCategory(string(req.Category))
	if err != nil {
		return err
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		return ErrNonFiniteValue
	}
	if req.Value < 0 && c != Temperature {
		return fmt.Errorf("%s: %w", c, ErrNegativeValue)
	}
	return nil
}

// Execute normalizes, validates and converts a request. The returned result
// carries the two-decimal display line and a deterministic ID.
func Execute(req ConversionRequest) (ConversionResult, error) {
	req = NormalizeRequest(req)
	if err := ValidateRequest(req); err != nil {
		return ConversionResult{}, err
	}

	converted, err := Convert(req.Category, req.Value, req.From, req.To)
	if err != nil {
		return ConversionResult{}, err
	}
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		return ConversionResult{}, fmt.Errorf("%s %g %s to %s: %w", req.Category, req.Value, req.From, req.To, ErrOutOfRange)
	}

	res := newResult(req)
	res.Result = converted
	res.Display = FormatDisplay(req.Value, req.From, converted, req.To)
	return res, nil
}

// FailedResult builds a reply for a request that could not be converted.
func FailedResult(req ConversionRequest, err error) ConversionResult {
	res := newResult(NormalizeRequest(req))
	res.Error = err.Error()
	return res
}

func newResult(req ConversionRequest) ConversionResult {
	return ConversionResult{
		ID:          generateID(req),
		Category:    req.Category,
		Value:       req.Value,
		From:        req.From,
		To:          req.To,
		ProcessedAt: clock.Now().UTC(),
	}
}

// FormatValue renders a converted value with the fixed two-decimal precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatDisplay renders the result line, e.g. "1 m = 1000.00 mm".
func FormatDisplay(value float64, from string, result float64, to string) string {
	return fmt.Sprintf("%s %s = %s %s", strconv.FormatFloat(value, 'g', -1, 64), from, FormatValue(result), to)
}

// generateID produces a deterministic ID from the request fields so that
// replaying the same request yields the same key downstream.
func generateID(req ConversionRequest) string {
	input := fmt.Sprintf("%s|%s|%s|%g", req.Category, req.From, req.To, req.Value)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if req.Category == "" {
		return short
	}
	return string(req.Category) + "-" + short
}

// SerializeResult marshals a ConversionResult into an OutputEvent keyed by its ID.
func SerializeResult(res ConversionResult) (OutputEvent, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize conversion result: %w", err)
	}
	return OutputEvent{
		Key:   []byte(res.ID),
		Value: data,
		Headers: map[string]string{
			"category":     string(res.Category),
			"processed_at": res.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
