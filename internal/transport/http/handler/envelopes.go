package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shop-assistant-api/internal/apperror"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
)

// maxBodyBytes bounds JSON request bodies; product images travel inline as base64.
const maxBodyBytes = 10 << 20

// ListEnvelope wraps collection responses.
type ListEnvelope[T any] struct {
	Data  []*T `json:"data"`
	Total int  `json:"total"`
}

func newList[T any](items []*T) ListEnvelope[T] {
	if items == nil {
		items = []*T{}
	}
	return ListEnvelope[T]{Data: items, Total: len(items)}
}

// Responder carries what every handler needs to answer: the error classifier
// and the entity-to-response mapper.
type Responder struct {
	errs   *apperror.Classifier
	mapper *mapper.Mapper
}

func NewResponder(errs *apperror.Classifier, m *mapper.Mapper) *Responder {
	return &Responder{errs: errs, mapper: m}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers err through the classifier.
func (rs *Responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := rs.errs.Classify(r.Context(), err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
	)
	writeJSON(w, status, body)
}

type validatable interface {
	Validate() error
}

// decode reads a JSON body into in and validates it. An undecodable body is
// a validation failure without a field.
func decode(w http.ResponseWriter, r *http.Request, in validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		return &domain.ValidationError{}
	}
	return in.Validate()
}

// pathID parses a positive int64 path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation(name, dto.MsgIDInvalid)
	}
	return id, nil
}
