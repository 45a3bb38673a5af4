package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

type fakeAnswers struct {
	answers []submissions.StoredAnswer
	asked   string
}

func (f *fakeAnswers) ListAnswers(_ context.Context, interviewID string) ([]submissions.StoredAnswer, error) {
	f.asked = interviewID
	return f.answers, nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if text == "boom" {
		return nil, errors.New("quota exceeded")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty text")
	}
	return []float32{float32(len(text)), 1}, nil
}

type recordingVectors struct {
	stored []*embeddings.CodeEmbedding
}

func (r *recordingVectors) Replace(_ context.Context, e *embeddings.CodeEmbedding) error {
	r.stored = append(r.stored, e)
	return nil
}

func answers() []submissions.StoredAnswer {
	return []submissions.StoredAnswer{
		{InterviewID: "iv-1", CandidateID: "c1", QuestionID: "q1", Code: "def f(): return 1"},
		{InterviewID: "iv-1", CandidateID: "c1", QuestionID: "q2", Code: "boom"},
		{InterviewID: "iv-2", CandidateID: "c2", QuestionID: "q1", Code: "func f() int { return 1 }"},
		{InterviewID: "iv-2", CandidateID: "c2", QuestionID: "q2", Code: "  \n\t"},
	}
}

func TestRun(t *testing.T) {
	lister := &fakeAnswers{answers: answers()}
	vectors := &recordingVectors{}
	r := &Reembedder{answers: lister, embedder: fakeEmbedder{}, vectors: vectors}

	stats, err := r.Run(context.Background(), config.Flags{InterviewID: "iv-1"})
	require.NoError(t, err)

	assert.Equal(t, "iv-1", lister.asked)
	assert.Equal(t, Stats{Answers: 4, Embedded: 2, Skipped: 1, Failed: 1}, stats)

	require.Len(t, vectors.stored, 2)
	assert.Equal(t, "q1", vectors.stored[0].QuestionID)
	assert.Equal(t, integrity.Hash("def f(): return 1").Int64(), vectors.stored[0].Fingerprint)
	assert.Equal(t, "c2", vectors.stored[1].CandidateID)
}

func TestRun_DryRun(t *testing.T) {
	vectors := &recordingVectors{}
	r := &Reembedder{answers: &fakeAnswers{answers: answers()}, embedder: fakeEmbedder{}, vectors: vectors}

	stats, err := r.Run(context.Background(), config.Flags{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Answers)
	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.Embedded)
	assert.Empty(t, vectors.stored)
}
