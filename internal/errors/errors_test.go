package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Respond(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_MapsSentinels(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", fmt.Errorf("interview not found: %w", ErrNotFound), http.StatusNotFound, CodeNotFound, "interview not found"},
		{"conflict", fmt.Errorf("email already exists: %w", ErrConflict), http.StatusConflict, CodeConflict, "email already exists"},
		{"invalid", fmt.Errorf("one or more questions not found: %w", ErrInvalidInput), http.StatusBadRequest, CodeBadRequest, "one or more questions not found"},
		{"forbidden", fmt.Errorf("not your interview: %w", ErrForbidden), http.StatusForbidden, CodeForbidden, "not your interview"},
		{"unauthorized", fmt.Errorf("invalid credentials: %w", ErrUnauthorized), http.StatusUnauthorized, CodeUnauthorized, "invalid credentials"},
		{"no rows", fmt.Errorf("query: %w", pgx.ErrNoRows), http.StatusNotFound, CodeNotFound, "resource not found"},
		{"malformed uuid", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}), http.StatusNotFound, CodeNotFound, "resource not found"},
		{"upstream", fmt.Errorf("gemini: %w", ErrUpstream), http.StatusBadGateway, CodeUpstreamError, "upstream service failed"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, CodeServerError, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestSanitizeError_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, "database operation failed", sanitizeError(fmt.Errorf("postgres exploded")))
	assert.Equal(t, "request timed out", sanitizeError(fmt.Errorf("dial timeout")))
	assert.Equal(t, "an error occurred", sanitizeError(fmt.Errorf("something odd")))
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	assert.Equal(t, "postgres exploded", sanitizeError(fmt.Errorf("postgres exploded")))
}
