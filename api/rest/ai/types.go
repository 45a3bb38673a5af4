package ai

import (
	"context"

	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/plagiarism"
	"codeberg.org/skillsage/server/skillsage/interviews"
)

type InterviewOwner interface {
	Owned(ctx context.Context, recruiterID, id string) (*interviews.Interview, error)
}

type PlagiarismDetector interface {
	Detect(ctx context.Context, interviewID string) ([]plagiarism.Result, error)
}

type SubmissionAnalyzer interface {
	Summary(ctx context.Context, interviewID string) (*analysis.Summary, error)
	Complexity(ctx context.Context, interviewID string) ([]analysis.Complexity, error)
	Quality(ctx context.Context, interviewID string) ([]analysis.Quality, error)
}

type PasteEventLister interface {
	Events(ctx context.Context, interviewID string) ([]integrity.PasteEvent, error)
}

// groups the services behind the /ai routes
type Services struct {
	Interviews InterviewOwner
	Plagiarism PlagiarismDetector
	Analyzer   SubmissionAnalyzer
	Integrity  PasteEventLister
}

type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
