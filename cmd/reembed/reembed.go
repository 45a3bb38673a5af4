package main

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

type AnswerLister interface {
	ListAnswers(ctx context.Context, interviewID string) ([]submissions.StoredAnswer, error)
}

type EmbeddingReplacer interface {
	Replace(ctx context.Context, e *embeddings.CodeEmbedding) error
}

// rebuilds code embeddings after an embedding model change
type Reembedder struct {
	answers  AnswerLister
	embedder llm.Embedder
	vectors  EmbeddingReplacer
}

type Stats struct {
	Answers  int
	Embedded int
	Skipped  int
	Failed   int
}

// embeds every stored answer again and replaces the candidate's vector for
// that question. a failed answer is logged and skipped.
func (r *Reembedder) Run(ctx context.Context, flags config.Flags) (Stats, error) {
	answers, err := r.answers.ListAnswers(ctx, flags.InterviewID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list answers: %w", err)
	}

	stats := Stats{Answers: len(answers)}
	logger.Info("re-embedding answers", "count", len(answers), "interview_id", flags.InterviewID)

	for i, a := range answers {
		// blank answers were never indexed
		if strings.TrimSpace(a.Code) == "" {
			stats.Skipped++
			continue
		}

		if flags.DryRun {
			logger.Info("would re-embed",
				"interview_id", a.InterviewID,
				"candidate_id", a.CandidateID,
				"question_id", a.QuestionID,
			)
			continue
		}

		vec, err := r.embedder.GenerateEmbedding(ctx, a.Code)
		if err != nil {
			stats.Failed++
			logger.ErrorErr(err, "failed to embed answer", "question_id", a.QuestionID, "candidate_id", a.CandidateID)
			continue
		}

		err = r.vectors.Replace(ctx, &embeddings.CodeEmbedding{
			QuestionID:  a.QuestionID,
			CandidateID: a.CandidateID,
			InterviewID: a.InterviewID,
			Embedding:   vec,
			Fingerprint: integrity.Hash(a.Code).Int64(),
		})
		if err != nil {
			stats.Failed++
			logger.ErrorErr(err, "failed to store embedding", "question_id", a.QuestionID, "candidate_id", a.CandidateID)
			continue
		}

		stats.Embedded++

		if (i+1)%25 == 0 {
			logger.Info("progress", "done", i+1, "total", len(answers))
		}
	}

	return stats, nil
}
