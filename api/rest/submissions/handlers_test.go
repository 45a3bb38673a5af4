package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/validation"
	"codeberg.org/skillsage/server/skillsage/interviews"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

const (
	interviewID = "3f1d2c4b-6a7e-4f80-9b1c-2d3e4f5a6b7c"
	questionID  = "7b0c3c1e-8a3f-4b5e-9a57-0d6a1f5b2c11"
)

type fakeService struct {
	stored map[string]*submissions.Submission
}

func (f *fakeService) Submit(_ context.Context, candidateID string, req submissions.SubmitRequest) (*submissions.Submission, error) {
	if req.InterviewID != interviewID {
		return nil, interviews.ErrInterviewNotFound
	}
	if candidateID != "cand-1" {
		return nil, submissions.ErrNotInterviewCandidate
	}
	if _, ok := f.stored[req.InterviewID]; ok {
		return nil, submissions.ErrAlreadySubmitted
	}

	sub := &submissions.Submission{ID: "sub-1", InterviewID: req.InterviewID, CandidateID: candidateID, SubmittedAt: time.Now()}
	for _, a := range req.Submissions {
		sub.QuestionSubmissions = append(sub.QuestionSubmissions, submissions.QuestionSubmission{
			QuestionID: a.QuestionID,
			Code:       a.Code,
			Language:   a.Language,
			Status:     submissions.StatusSubmitted,
		})
	}
	f.stored[req.InterviewID] = sub
	return sub, nil
}

func (f *fakeService) ForRecruiter(_ context.Context, recruiterID, id string) (*submissions.Submission, error) {
	if id != interviewID {
		return nil, interviews.ErrInterviewNotFound
	}
	if recruiterID != "rec-1" {
		return nil, submissions.ErrNotInterviewRecruiter
	}
	if sub, ok := f.stored[id]; ok {
		return sub, nil
	}
	return nil, submissions.ErrSubmissionNotFound
}

func setup(t *testing.T) (*gin.Engine, *fakeService) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	svc := &fakeService{stored: map[string]*submissions.Submission{}}
	router := gin.New()
	RegisterRoutes(router.Group("/api"), svc)
	return router, svc
}

func do(t *testing.T, router *gin.Engine, method, path, userID, role, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	token, err := auth.GenerateJWT(userID, userID+"@example.com", role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func submitBody(interview string) string {
	return `{"interviewId":"` + interview + `","submissions":[{"questionId":"` + questionID + `","code":"print(1)","language":"python"}],"messages":[{"content":"hi","sender":"cand"}]}`
}

func TestSubmitAndFetch(t *testing.T) {
	router, _ := setup(t)

	w := do(t, router, http.MethodGet, "/api/submissions/"+interviewID, "rec-1", "RECRUITER", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"no submission found","data":null}`, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/submissions", "cand-1", "CANDIDATE", submitBody(interviewID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/submissions/"+interviewID, "rec-1", "RECRUITER", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data submissions.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.QuestionSubmissions, 1)
	assert.Equal(t, "print(1)", resp.Data.QuestionSubmissions[0].Code)
	assert.Equal(t, submissions.StatusSubmitted, resp.Data.QuestionSubmissions[0].Status)
}

func TestSubmit_Rejections(t *testing.T) {
	router, _ := setup(t)

	w := do(t, router, http.MethodPost, "/api/submissions", "cand-1", "CANDIDATE", submitBody(interviewID))
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name   string
		userID string
		role   string
		body   string
		status int
	}{
		{"duplicate", "cand-1", "CANDIDATE", submitBody(interviewID), http.StatusConflict},
		{"unknown interview", "cand-1", "CANDIDATE", submitBody("0f2c0a43-5a8e-4c1b-8f0a-6b8d7c1e2f33"), http.StatusNotFound},
		{"other candidate", "cand-2", "CANDIDATE", submitBody(interviewID), http.StatusForbidden},
		{"recruiter", "rec-1", "RECRUITER", submitBody(interviewID), http.StatusForbidden},
		{"no answers", "cand-1", "CANDIDATE", `{"interviewId":"` + interviewID + `","submissions":[]}`, http.StatusBadRequest},
		{"bad question id", "cand-1", "CANDIDATE", `{"interviewId":"` + interviewID + `","submissions":[{"questionId":"nope"}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/submissions", tt.userID, tt.role, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestGetSubmission_OtherRecruiter(t *testing.T) {
	router, _ := setup(t)

	w := do(t, router, http.MethodGet, "/api/submissions/"+interviewID, "rec-2", "RECRUITER", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
