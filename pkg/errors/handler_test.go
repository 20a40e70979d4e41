package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantType    string
		wantMessage string
	}{
		{
			name:        "validation error",
			err:         NewValidationError("title is required"),
			wantStatus:  http.StatusBadRequest,
			wantType:    "VALIDATION",
			wantMessage: "title is required",
		},
		{
			name:        "not found error",
			err:         NewNotFoundError("Project"),
			wantStatus:  http.StatusNotFound,
			wantType:    "NOT_FOUND",
			wantMessage: "Project not found",
		},
		{
			name:        "unauthorized error",
			err:         NewUnauthorizedError("Authentication required"),
			wantStatus:  http.StatusUnauthorized,
			wantType:    "UNAUTHORIZED",
			wantMessage: "Authentication required",
		},
		{
			name:        "wrapped store error",
			err:         fmt.Errorf("list: %w", NewStoreError("load projects", fmt.Errorf("unexpected EOF"))),
			wantStatus:  http.StatusInternalServerError,
			wantType:    "DATABASE",
			wantMessage: "Database not initialized",
		},
		{
			name:        "plain error",
			err:         fmt.Errorf("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantType:    "INTERNAL",
			wantMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			rec := httptest.NewRecorder()

			handler.Handle(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			resp := decodeResponse(t, rec)
			assert.True(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Type)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestErrorHandler_HidesServerDetails(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req, NewStoreError("load projects", fmt.Errorf("open /data/projects.json: permission denied")))

	assert.NotContains(t, rec.Body.String(), "permission denied")
	assert.NotContains(t, rec.Body.String(), "load projects")
}

func TestErrorHandler_Middleware(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", decodeResponse(t, rec).Type)
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewNotFoundError("Testimonial"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.True(t, IsType(NewUnauthorizedError(""), ErrorTypeUnauthorized))
	assert.Equal(t, "unauthorized", NewUnauthorizedError("").Message)
	assert.True(t, IsStore(NewStoreError("replace", nil)))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestErrorHandler_RateLimit(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req, NewRateLimitError(5, time.Minute))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	resp := decodeResponse(t, rec)
	assert.Equal(t, "RATE_LIMIT", resp.Type)
	assert.Equal(t, "rate limit exceeded: 5 requests per 1m0s", resp.Message)
	assert.EqualValues(t, 5, resp.Details["limit"])
}

func TestErrorHandler_DebugShowsPlainErrors(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), true)
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req, fmt.Errorf("disk full"))

	resp := decodeResponse(t, rec)
	assert.Equal(t, "INTERNAL", resp.Type)
	assert.Equal(t, "disk full", resp.Message)
}

func TestErrorHandler_HandleStatus(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodDelete, "/health", nil)
	rec := httptest.NewRecorder()

	handler.HandleStatus(rec, req, http.StatusMethodNotAllowed, "Method not allowed")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeResponse(t, rec).Type)
}
