package interviews

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/skillsage/interviews"
	"codeberg.org/skillsage/server/skillsage/users"
)

// CreateInterview godoc
// @Summary Schedule an interview
// @Description Looks up the candidate by email, links the questions in order and mails an invitation
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body interviews.CreateRequest true "Interview"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/interviews [post]
// @Security BearerAuth
func CreateInterview(svc InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		var req interviews.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		interview, err := svc.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "interview created", Data: interview})
	}
}

// ListInterviews godoc
// @Summary List own interviews
// @Description Recruiters see interviews they created, candidates the ones assigned to them
// @Tags interviews
// @Produce json
// @Success 200 {array} interviews.Interview
// @Router /api/interviews [get]
// @Security BearerAuth
func ListInterviews(svc InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		role, _ := auth.GetUserRole(c)

		list, err := svc.List(c.Request.Context(), userID, users.Role(role))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		if list == nil {
			list = []interviews.Interview{}
		}

		c.JSON(http.StatusOK, list)
	}
}

// GetInterview godoc
// @Summary Get an interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} interviews.Interview
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/interviews/{id} [get]
// @Security BearerAuth
func GetInterview(svc InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		interview, err := svc.Get(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, interview)
	}
}

// UpdateInterview godoc
// @Summary Reschedule an interview
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body interviews.UpdateRequest true "Changes"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/interviews/{id} [put]
// @Security BearerAuth
func UpdateInterview(svc InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		var req interviews.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		interview, err := svc.Update(c.Request.Context(), userID, c.Param("id"), req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "interview updated", Data: interview})
	}
}

// DeleteInterview godoc
// @Summary Delete an interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/interviews/{id} [delete]
// @Security BearerAuth
func DeleteInterview(svc InterviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		if err := svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "interview deleted"})
	}
}
