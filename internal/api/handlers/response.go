package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

var statusByKind = map[domain.Kind]int{
	domain.KindUnauthenticated: http.StatusUnauthorized,
	domain.KindForbidden:       http.StatusForbidden,
	domain.KindNotFound:        http.StatusNotFound,
	domain.KindConflict:        http.StatusConflict,
	domain.KindInvalidArgument: http.StatusBadRequest,
	domain.KindUnavailable:     http.StatusServiceUnavailable,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusServiceUnavailable
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError renders err with the status of its kind. Store failures are
// logged with their cause and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindUnavailable {
		slog.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
	}
	writeJSON(w, StatusFor(kind), ErrorResponse{Error: domain.MessageOf(err)})
}

// credential returns the raw Authorization header. An empty value means
// the caller is anonymous.
func credential(r *http.Request) string {
	return r.Header.Get("Authorization")
}

// idParam parses a numeric path parameter. Ids that cannot name a row are
// reported as not found.
func idParam(r *http.Request, name, resource string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NotFound(resource + " not found")
	}
	return uint(id), nil
}

// decode reads a JSON body into dst and validates its struct tags.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.InvalidArgument("invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.InvalidArgument("invalid request body", err)
	}

	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min", "gte":
		msg = field + " must be at least " + fe.Param()
	case "max", "lte":
		msg = field + " must be at most " + fe.Param()
	case "len":
		msg = field + " must contain exactly " + fe.Param() + " items"
	default:
		msg = field + " is invalid"
	}
	return domain.InvalidArgument(msg, err)
}
