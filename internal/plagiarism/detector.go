package plagiarism

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/metrics"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

type Detector struct {
	submissions SubmissionFinder
	neighbors   NeighborFinder
	embedder    llm.Embedder
	writer      llm.TextGenerator
	config      Config
}

func NewDetector(
	submissions SubmissionFinder,
	neighbors NeighborFinder,
	embedder llm.Embedder,
	writer llm.TextGenerator,
	config Config,
) *Detector {
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.Neighbors <= 0 {
		config.Neighbors = DefaultNeighbors
	}

	return &Detector{
		submissions: submissions,
		neighbors:   neighbors,
		embedder:    embedder,
		writer:      writer,
		config:      config,
	}
}

// scores every answer of the interview's submission, in question order
func (d *Detector) Detect(ctx context.Context, interviewID string) ([]Result, error) {
	sub, err := d.submissions.FindByInterview(ctx, interviewID)
	if err != nil {
		if stderrors.Is(err, submissions.ErrSubmissionNotFound) {
			return nil, ErrNoSubmission
		}
		return nil, err
	}

	results := make([]Result, 0, len(sub.QuestionSubmissions))
	for _, qs := range sub.QuestionSubmissions {
		result, err := d.check(ctx, sub.CandidateID, qs)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (d *Detector) check(ctx context.Context, candidateID string, qs submissions.QuestionSubmission) (Result, error) {
	result := Result{QuestionName: qs.QuestionTitle}

	if strings.TrimSpace(qs.Code) == "" {
		result.Content = d.report(ctx, qs.QuestionTitle, 0, false)
		metrics.ObservePlagiarism(false, 0)
		return result, nil
	}

	vec, err := d.embedder.GenerateEmbedding(ctx, qs.Code)
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to embed answer: %v", errors.ErrUpstream, err)
	}

	neighbors, err := d.neighbors.FindNearest(ctx, qs.QuestionID, candidateID, vec, d.config.Neighbors)
	if err != nil {
		return Result{}, err
	}

	if len(neighbors) == 0 {
		result.Content = d.report(ctx, qs.QuestionTitle, 0, false)
		metrics.ObservePlagiarism(false, 0)
		return result, nil
	}

	best := 0.0
	for i, n := range neighbors {
		sim := CosineSimilarity(vec, n.Embedding)
		if i == 0 || sim > best {
			best = sim
		}
	}

	result.Similarity = toPercent(best)
	result.LexicalSimilarity = lexicalSimilarity(qs.Code, neighbors)

	if result.Similarity > d.config.Threshold {
		result.Plagiarized = true
		result.PlagiarismChance = result.Similarity
	}

	result.Content = d.report(ctx, qs.QuestionTitle, result.Similarity, result.Plagiarized)
	metrics.ObservePlagiarism(result.Plagiarized, result.Similarity)

	logger.Debug("plagiarism check",
		"question_id", qs.QuestionID,
		"neighbors", len(neighbors),
		"similarity", result.Similarity,
		"lexical_similarity", result.LexicalSimilarity,
		"plagiarized", result.Plagiarized,
	)

	return result, nil
}

func (d *Detector) report(ctx context.Context, questionName string, similarity float64, plagiarized bool) string {
	if d.writer == nil {
		return fallbackReport(questionName, similarity, plagiarized)
	}

	text, err := d.writer.GenerateText(ctx, reportPrompt(questionName, similarity, plagiarized))
	if err != nil || strings.TrimSpace(text) == "" {
		logger.Warn("plagiarism report generation failed, using fallback",
			"question", questionName,
			"error", err,
		)
		return fallbackReport(questionName, similarity, plagiarized)
	}

	return strings.TrimSpace(text)
}

// best SimHash similarity against neighbours that carry a fingerprint
func lexicalSimilarity(code string, neighbors []embeddings.Neighbor) float64 {
	fp := integrity.Hash(code)

	best := 0.0
	for _, n := range neighbors {
		if n.Fingerprint == 0 {
			continue
		}
		best = max(best, integrity.Similarity(fp, integrity.FromInt64(n.Fingerprint)))
	}

	return best
}
