package submissions

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

// Submit godoc
// @Summary Submit interview answers
// @Description Stores the candidate's answers and chat transcript and completes the interview
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body submissions.SubmitRequest true "Answers"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/submissions [post]
// @Security BearerAuth
func Submit(svc SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		var req submissions.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		sub, err := svc.Submit(c.Request.Context(), userID, req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "submission saved", Data: sub})
	}
}

// GetSubmission godoc
// @Summary Get an interview's submission
// @Description data is null when the candidate has not submitted yet
// @Tags submissions
// @Produce json
// @Param interviewId path string true "Interview ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/submissions/{interviewId} [get]
// @Security BearerAuth
func GetSubmission(svc SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		sub, err := svc.ForRecruiter(c.Request.Context(), userID, c.Param("interviewId"))
		if stderrors.Is(err, submissions.ErrSubmissionNotFound) {
			c.JSON(http.StatusOK, MessageResponse{Message: "no submission found"})
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "submission found", Data: sub})
	}
}
