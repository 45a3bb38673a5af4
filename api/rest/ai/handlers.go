package ai

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/plagiarism"
)

const noSubmission = "no submission found"

// aborts unless the caller is the interview's recruiter
func RequireOwnership(owner InterviewOwner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)

		if _, err := owner.Owned(c.Request.Context(), userID, c.Param("id")); err != nil {
			errors.Respond(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// DetectPlagiarism godoc
// @Summary Plagiarism report
// @Description Compares each answer with earlier answers to the same question. data is null without a submission.
// @Tags ai
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse{data=[]plagiarism.Result}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/ai/detect-plagiarism/{id} [get]
// @Security BearerAuth
func DetectPlagiarism(detector PlagiarismDetector) gin.HandlerFunc {
	return func(c *gin.Context) {
		interviewID := c.Param("id")

		results, err := detector.Detect(c.Request.Context(), interviewID)
		if stderrors.Is(err, plagiarism.ErrNoSubmission) {
			c.JSON(http.StatusOK, MessageResponse{Message: noSubmission})
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		flagged := 0
		for _, r := range results {
			if r.Plagiarized {
				flagged++
			}
		}
		logger.FromContext(c.Request.Context()).Info("plagiarism check finished",
			"interview_id", interviewID,
			"answers", len(results),
			"flagged", flagged,
		)

		c.JSON(http.StatusOK, MessageResponse{Message: "plagiarism report", Data: results})
	}
}

// GenerateSummary godoc
// @Summary AI feedback summary
// @Tags ai
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse{data=analysis.Summary}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/ai/generate-summary/{id} [get]
// @Security BearerAuth
func GenerateSummary(analyzer SubmissionAnalyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := analyzer.Summary(c.Request.Context(), c.Param("id"))
		if stderrors.Is(err, analysis.ErrNoSubmission) {
			c.JSON(http.StatusOK, MessageResponse{Message: noSubmission})
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "summary generated", Data: summary})
	}
}

// AnalyzeComplexity godoc
// @Summary Time and space complexity per answer
// @Tags ai
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse{data=[]analysis.Complexity}
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/ai/generate-time-space-complexity/{id} [get]
// @Security BearerAuth
func AnalyzeComplexity(analyzer SubmissionAnalyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := analyzer.Complexity(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		if results == nil {
			results = []analysis.Complexity{}
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "complexity analysed", Data: results})
	}
}

// CheckQuality godoc
// @Summary Code quality review per answer
// @Tags ai
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse{data=[]analysis.Quality}
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/ai/code-quality-check/{id} [get]
// @Security BearerAuth
func CheckQuality(analyzer SubmissionAnalyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := analyzer.Quality(c.Request.Context(), c.Param("id"))
		if stderrors.Is(err, analysis.ErrNoSubmission) {
			c.JSON(http.StatusOK, MessageResponse{Message: noSubmission, Data: []analysis.Quality{}})
			return
		}
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "quality reviewed", Data: results})
	}
}

// ListPasteEvents godoc
// @Summary Large pastes recorded during the interview
// @Tags ai
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} MessageResponse{data=[]integrity.PasteEvent}
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/ai/paste-events/{id} [get]
// @Security BearerAuth
func ListPasteEvents(lister PasteEventLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := lister.Events(c.Request.Context(), c.Param("id"))
		if err != nil {
			errors.InternalError(c, "failed to load paste events", err)
			return
		}

		if events == nil {
			events = []integrity.PasteEvent{}
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "paste events", Data: events})
	}
}
