package auth

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/skillsage/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// sets up the OAuth providers using goth. Returns false when no provider
// is configured, in which case the OAuth routes are not registered.
func InitializeProviders(cfg *config.Config) (bool, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return false, nil
	}

	if cfg.SessionSecret == "" {
		return false, fmt.Errorf("SESSION_SECRET must be set")
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	// cookie only lives for the duration of the OAuth redirect
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	goth.UseProviders(google.New(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		strings.TrimSuffix(cfg.BaseURL, "/")+"/api/auth/google/callback",
		"email", "profile",
	))

	return true, nil
}

// starts the provider's login flow
func BeginOAuth(c *gin.Context, provider string) {
	c.Request = withProvider(c.Request, provider)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// completes the provider's login flow and returns the profile
func CompleteOAuth(c *gin.Context, provider string) (*OAuthUser, error) {
	c.Request = withProvider(c.Request, provider)

	user, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to complete %s login: %w", provider, err)
	}

	if user.Email == "" {
		return nil, fmt.Errorf("%s account has no email", provider)
	}

	first, last := user.FirstName, user.LastName
	if first == "" && last == "" {
		first, last, _ = strings.Cut(user.Name, " ")
	}

	return &OAuthUser{
		Provider:  provider,
		Email:     strings.ToLower(user.Email),
		FirstName: first,
		LastName:  last,
	}, nil
}

// gothic reads the provider from the "provider" query parameter
func withProvider(r *http.Request, provider string) *http.Request {
	q := r.URL.Query()
	q.Set("provider", provider)
	r.URL.RawQuery = q.Encode()
	return r
}
