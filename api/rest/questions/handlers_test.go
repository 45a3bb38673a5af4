package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/validation"
	"codeberg.org/skillsage/server/skillsage/questions"
)

type memoryStore struct {
	items map[string]*questions.Question
	next  int
}

func (m *memoryStore) Create(_ context.Context, userID string, req questions.QuestionRequest) (*questions.Question, error) {
	m.next++
	q := &questions.Question{
		ID:          fmt.Sprintf("q%02d", m.next),
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		CreatedBy:   &userID,
	}
	m.items[q.ID] = q
	return q, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*questions.Question, error) {
	if q, ok := m.items[id]; ok {
		return q, nil
	}
	return nil, questions.ErrQuestionNotFound
}

func (m *memoryStore) List(_ context.Context, limit, offset int) ([]questions.Question, int, error) {
	all := make([]questions.Question, 0, len(m.items))
	for _, q := range m.items {
		all = append(all, *q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (m *memoryStore) Update(_ context.Context, id string, req questions.QuestionRequest) (*questions.Question, error) {
	q, ok := m.items[id]
	if !ok {
		return nil, questions.ErrQuestionNotFound
	}
	q.Title, q.Description, q.Language = req.Title, req.Description, req.Language
	return q, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return questions.ErrQuestionNotFound
	}
	delete(m.items, id)
	return nil
}

type fakeGenerator struct {
	q   *analysis.GeneratedQuestion
	err error
}

func (f fakeGenerator) GenerateQuestion(context.Context, string) (*analysis.GeneratedQuestion, error) {
	return f.q, f.err
}

type fixture struct {
	router *gin.Engine
	store  *memoryStore
}

func setup(t *testing.T, gen QuestionGenerator) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	f := &fixture{router: gin.New(), store: &memoryStore{items: map[string]*questions.Question{}}}
	RegisterRoutes(f.router.Group("/api"), f.store, gen)
	return f
}

func (f *fixture) do(t *testing.T, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := auth.GenerateJWT("user-1", "user@example.com", role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestQuestionCRUD(t *testing.T) {
	f := setup(t, fakeGenerator{})

	w := f.do(t, http.MethodPost, "/api/questions", "RECRUITER", questions.QuestionRequest{
		Title:       "Two Sum",
		Description: "Return indices of two numbers adding up to target.",
		Language:    "go",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string             `json:"message"`
		Data    questions.Question `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "question created", created.Message)
	id := created.Data.ID

	w = f.do(t, http.MethodGet, "/api/questions/"+id, "CANDIDATE", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, "/api/questions/"+id, "RECRUITER", questions.QuestionRequest{
		Title:       "Two Sum II",
		Description: "Sorted input.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Two Sum II", f.store.items[id].Title)

	w = f.do(t, http.MethodDelete, "/api/questions/"+id, "RECRUITER", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/questions/"+id, "RECRUITER", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/questions/"+id, "RECRUITER", questions.QuestionRequest{Title: "x", Description: "y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCandidateCannotWrite(t *testing.T) {
	f := setup(t, fakeGenerator{})

	w := f.do(t, http.MethodPost, "/api/questions", "CANDIDATE", questions.QuestionRequest{Title: "x", Description: "y"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPost, "/api/questions/generate", "CANDIDATE", GenerateRequest{Prompt: "graphs"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListQuestions_Pagination(t *testing.T) {
	f := setup(t, fakeGenerator{})
	for i := range 3 {
		_, _ = f.store.Create(context.Background(), "user-1", questions.QuestionRequest{Title: fmt.Sprintf("Q%d", i), Description: "d"})
	}

	w := f.do(t, http.MethodGet, "/api/questions?limit=2", "CANDIDATE", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 2)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasMore)

	w = f.do(t, http.MethodGet, "/api/questions?offset=10", "CANDIDATE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"questions":[]`)
}

func TestGenerateQuestion(t *testing.T) {
	draft := &analysis.GeneratedQuestion{Title: "LRU Cache", Description: "Design an LRU cache.", ProgrammingLanguage: "java"}
	f := setup(t, fakeGenerator{q: draft})

	w := f.do(t, http.MethodPost, "/api/questions/generate", "RECRUITER", GenerateRequest{Prompt: "caching"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analysis.GeneratedQuestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, *draft, resp)
	assert.Empty(t, f.store.items)
}

func TestGenerateQuestion_UpstreamFailure(t *testing.T) {
	f := setup(t, fakeGenerator{err: fmt.Errorf("%w: unreadable question reply", errors.ErrUpstream)})

	w := f.do(t, http.MethodPost, "/api/questions/generate", "RECRUITER", GenerateRequest{Prompt: "caching"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = f.do(t, http.MethodPost, "/api/questions/generate", "RECRUITER", GenerateRequest{Prompt: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
