package questions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/api/rest/pagination"
	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/skillsage/questions"
)

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body questions.QuestionRequest true "Question"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/questions [post]
// @Security BearerAuth
func CreateQuestion(store QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		var req questions.QuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		q, err := store.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, MessageResponse{Message: "question created", Data: q})
	}
}

// ListQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Router /api/questions [get]
// @Security BearerAuth
func ListQuestions(store QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultLimit, maxLimit)

		list, total, err := store.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list questions", err)
			return
		}

		if list == nil {
			list = []questions.Question{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Questions:  list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} questions.Question
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/questions/{id} [get]
// @Security BearerAuth
func GetQuestion(store QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := store.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, q)
	}
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body questions.QuestionRequest true "Question"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/questions/{id} [put]
// @Security BearerAuth
func UpdateQuestion(store QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req questions.QuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		q, err := store.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "question updated", Data: q})
	}
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/questions/{id} [delete]
// @Security BearerAuth
func DeleteQuestion(store QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
	}
}

// GenerateQuestion godoc
// @Summary Draft a question with AI
// @Description The draft is returned for review and is not saved
// @Tags questions
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "What the question should test"
// @Success 200 {object} analysis.GeneratedQuestion
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/questions/generate [post]
// @Security BearerAuth
func GenerateQuestion(generator QuestionGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		q, err := generator.GenerateQuestion(c.Request.Context(), req.Prompt)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, q)
	}
}
