package feedback

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/skillsage/feedback"
)

// CreateFeedback godoc
// @Summary Leave feedback on a candidate
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body feedback.CreateRequest true "Feedback"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/feedbacks [post]
// @Security BearerAuth
func CreateFeedback(access InterviewAccess, store FeedbackStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		var req feedback.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		interview, err := access.Owned(ctx, userID, req.InterviewID)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		fb, err := store.Create(ctx, userID, interview.CandidateID, req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "feedback created", Data: fb})
	}
}

// GetFeedback godoc
// @Summary Latest feedback for an interview
// @Description data is null when no feedback was written
// @Tags feedback
// @Produce json
// @Param interviewId path string true "Interview ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/feedbacks/{interviewId} [get]
// @Security BearerAuth
func GetFeedback(access InterviewAccess, store FeedbackStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		ctx := c.Request.Context()

		interview, err := access.Get(ctx, userID, c.Param("interviewId"))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		fb, err := store.Latest(ctx, interview.ID)
		if stderrors.Is(err, feedback.ErrFeedbackNotFound) {
			c.JSON(http.StatusOK, MessageResponse{Message: "no feedback found"})
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "feedback found", Data: fb})
	}
}
