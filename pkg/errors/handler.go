package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler writes errors as JSON and logs them by severity
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates an error handler. In debug mode 5xx responses
// carry the real message and details.
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{logger: logger, debug: debug}
}

// Handle reports err to the client. Errors that are not AppErrors become a
// generic 500.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		appErr = NewInternalError("An internal error occurred").WithCause(err)
		if h.debug {
			appErr.Message = err.Error()
		}
	}
	status := appErr.Status()

	resp := h.response(r, string(appErr.Type), appErr.Message)
	if status < http.StatusInternalServerError || h.debug {
		resp.Details = appErr.Details
	}
	if seconds, ok := appErr.Details["retryAfterSeconds"].(int); ok && appErr.Type == ErrorTypeRateLimit {
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	fields := []zap.Field{zap.String("error_type", string(appErr.Type))}
	if appErr.Cause != nil {
		fields = append(fields, zap.Error(appErr.Cause))
	}
	if appErr.Details != nil {
		fields = append(fields, zap.Any("details", appErr.Details))
	}
	h.log(r, status, appErr.Message, fields...)

	h.write(w, status, resp)
}

// HandleStatus reports a bare status, for router level failures
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.log(r, status, message)
	h.write(w, status, h.response(r, string(typeForStatus(status)), message))
}

// Middleware turns panics into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) response(r *http.Request, errType, message string) ErrorResponse {
	return ErrorResponse{
		Error:     true,
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	}
}

func (h *ErrorHandler) log(r *http.Request, status int, message string, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	}, extra...)

	if status >= http.StatusInternalServerError {
		h.logger.Error(message, fields...)
		return
	}
	h.logger.Warn(message, fields...)
}

func (h *ErrorHandler) write(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

// typeForStatus picks the error type reported for a bare status code
func typeForStatus(status int) ErrorType {
	switch status {
	case http.StatusBadRequest:
		return ErrorTypeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorTypeUnauthorized
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return ErrorTypeNotFound
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case http.StatusBadGateway:
		return ErrorTypeExternal
	default:
		return ErrorTypeInternal
	}
}
