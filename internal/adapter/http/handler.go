package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// convertRequest is the POST /api/v1/convert body. Value is a pointer so
// that an explicit 0 passes the required check while a missing value does not.
type convertRequest struct {
	Category string   `json:"category" validate:"required"`
	Value    *float64 `json:"value" validate:"required"`
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
}

type categoryResponse struct {
	Category domain.Category `json:"category"`
	Title    string          `json:"title"`
	Units    []string        `json:"units"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *slog.Logger
}

func newHandler(metrics *observability.Metrics, logger *slog.Logger) *handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &handler{validate: v, metrics: metrics, logger: logger}
}

func (h *handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	categories := domain.Categories()
	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, newCategoryResponse(c))
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) listUnits(w http.ResponseWriter, r *http.Request) {
	c, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, newCategoryResponse(c))
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	var body convertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := h.validate.Struct(body); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: formatValidationError(err)})
		return
	}

	req := domain.ConversionRequest{
		Category: domain.Category(body.Category),
		Value:    *body.Value,
		From:     body.From,
		To:       body.To,
	}

	res, err := domain.Execute(req)
	h.metrics.ObserveConversion(observability.CategoryLabel(req.Category), observability.ConversionOutcome(err))
	if err != nil {
		h.logger.Debug("conversion rejected",
			"category", req.Category,
			"from", req.From,
			"to", req.To,
			"error", err,
		)
		sharedobs.WriteJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func newCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		Category: c,
		Title:    c.Title(),
		Units:    domain.Units(c),
	}
}

// statusFor maps a conversion error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownUnit), errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNegativeValue), errors.Is(err, domain.ErrNonFiniteValue),
		errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
