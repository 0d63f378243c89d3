package chi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/i18n"
	"github.com/kailas-cloud/livio/internal/logger"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeSeedOutOfRange     ErrorCode = "seed_out_of_range"
	CodeNoMatches          ErrorCode = "no_matches"
	CodeNotFound           ErrorCode = "not_found"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, locale i18n.Locale) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		localizedHandler(domain.ErrSeedOutOfRange, http.StatusBadRequest, CodeSeedOutOfRange, i18n.KeyOutOfRange),
		localizedHandler(domain.ErrNoMatches, http.StatusUnprocessableEntity, CodeNoMatches, i18n.KeyNoMatches),
		sentinelHandler(domain.ErrEmptySeeds, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrTooManySeeds, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidTopN, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
		sentinelHandler(domain.ErrDataIntegrity, http.StatusServiceUnavailable, CodeCatalogUnavailable),
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with the sentinel's own message.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, _ i18n.Locale) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// localizedHandler is a sentinelHandler whose message is translated.
func localizedHandler(sentinel error, status int, code ErrorCode, key string) errorHandler {
	return func(w http.ResponseWriter, err error, locale i18n.Locale) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, i18n.Text(locale, key))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, locale i18n.Locale) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err, locale) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
