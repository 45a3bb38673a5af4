package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})
	r.GET("/protected", handlers...)

	return r
}

func doRequest(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateJWT("user-1", "r@example.com", "RECRUITER")
	require.NoError(t, err)

	r := newTestRouter(AuthMiddleware())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	recruiter, err := GenerateJWT("user-1", "r@example.com", "RECRUITER")
	require.NoError(t, err)
	candidate, err := GenerateJWT("user-2", "c@example.com", "CANDIDATE")
	require.NoError(t, err)

	r := newTestRouter(AuthMiddleware(), RequireRole("RECRUITER"))

	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer "+recruiter).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer "+candidate).Code)
}
