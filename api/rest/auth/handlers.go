package auth

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/mail"
	"codeberg.org/skillsage/server/internal/otp"
	"codeberg.org/skillsage/server/skillsage/users"
)

const providerGoogle = "google"

// RegisterHandler godoc
// @Summary Register
// @Description Create a recruiter or candidate account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/auth/register [post]
func RegisterHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.InternalError(c, "failed to hash password", err)
			return
		}

		_, err = store.Create(c.Request.Context(), users.CreateParams{
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        req.Email,
			MobileNumber: req.MobileNumber,
			PasswordHash: hash,
			Role:         req.Role,
		})
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "user registered successfully"})
	}
}

// LoginHandler godoc
// @Summary Login
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/auth/login [post]
func LoginHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := store.FindByEmail(c.Request.Context(), req.Email)
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			errors.Respond(c, err)
			return
		}

		// same answer for unknown email and wrong password
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			errors.BadRequest(c, "invalid credentials", nil)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, string(user.Role))
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			AccessToken:  token,
			UserResponse: toUserResponse(user),
		})
	}
}

// SendOTPHandler godoc
// @Summary Send password reset code
// @Description Mails a 6-digit code valid for a few minutes
// @Tags auth
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/auth/reset-password-sent-otp [post]
func SendOTPHandler(store UserStore, otps OTPStore, mailer mail.Sender, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params SendOTPParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		user, err := store.FindByEmail(ctx, params.Email)
		if stderrors.Is(err, errors.ErrNotFound) {
			errors.BadRequest(c, "email not found", nil)
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		code, err := otps.Issue(ctx, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to issue otp", err)
			return
		}

		mail.SendAsync(mailer, mail.OTPMail(user.Email, code, ttl))

		c.JSON(http.StatusOK, MessageResponse{Message: "otp sent to " + user.Email})
	}
}

// ResetPasswordHandler godoc
// @Summary Reset password
// @Description Sets a new password when the emailed code matches
// @Tags auth
// @Produce json
// @Param email query string true "Account email"
// @Param newPassword query string true "New password"
// @Param otp query string true "Code from the email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/auth/reset-password [post]
func ResetPasswordHandler(store UserStore, otps OTPStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ResetPasswordParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		user, err := store.FindByEmail(ctx, params.Email)
		if stderrors.Is(err, errors.ErrNotFound) {
			errors.BadRequest(c, "email not found", nil)
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		if err := otps.Consume(ctx, user.Email, params.OTP); err != nil {
			if stderrors.Is(err, otp.ErrInvalidCode) {
				errors.BadRequest(c, "invalid or expired otp", nil)
				return
			}
			errors.InternalError(c, "failed to verify otp", err)
			return
		}

		hash, err := auth.HashPassword(params.NewPassword)
		if err != nil {
			errors.InternalError(c, "failed to hash password", err)
			return
		}

		if err := store.UpdatePassword(ctx, user.Email, hash); err != nil {
			errors.Respond(c, err)
			return
		}

		logger.Info("password reset", "user_id", user.ID)

		c.JSON(http.StatusOK, MessageResponse{Message: "password reset successfully"})
	}
}

// ProfileHandler godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/profile [get]
// @Security BearerAuth
func ProfileHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		user, err := store.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// starts the Google login flow
func GoogleBeginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.BeginOAuth(c, providerGoogle)
	}
}

// finishes the Google login flow and redirects to the frontend with a token.
// unknown emails become candidates with an unusable random password.
func GoogleCallbackHandler(store UserStore, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := auth.CompleteOAuth(c, providerGoogle)
		if err != nil {
			errors.BadRequest(c, "authentication failed", err)
			return
		}

		password, err := auth.RandomPassword()
		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		user, err := store.FindOrCreateByEmail(c.Request.Context(), users.CreateParams{
			FirstName:    profile.FirstName,
			LastName:     profile.LastName,
			Email:        profile.Email,
			PasswordHash: hash,
			Role:         users.RoleCandidate,
		})
		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, string(user.Role))
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.Redirect(http.StatusFound, oauthRedirectURL(frontendURL, token))
	}
}

func oauthRedirectURL(frontendURL, token string) string {
	return strings.TrimSuffix(frontendURL, "/") + "/oauth2/redirect?token=" + url.QueryEscape(token)
}
