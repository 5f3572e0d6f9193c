package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
)

// ConversionTransformer implements Transformer on top of domain.Execute.
type ConversionTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a ConversionTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *ConversionTransformer {
	return &ConversionTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

// Transform decodes and converts one request. A request that decodes but
// cannot be converted still yields a result, with its Error field set, so
// the requester receives the failure. Only undecodable payloads return an error.
func (t *ConversionTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	res, err := domain.Execute(req)
	t.metrics.ObserveConversion(observability.CategoryLabel(req.Category), observability.ConversionOutcome(err))
	if err != nil {
		t.logger.Debug("conversion rejected",
			"category", req.Category,
			"from", req.From,
			"to", req.To,
			"error", err,
		)
		res = domain.FailedResult(req, err)
	}

	return domain.SerializeResult(res)
}
