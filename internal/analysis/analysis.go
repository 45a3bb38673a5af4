package analysis

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

type Analyzer struct {
	submissions SubmissionFinder
	model       llm.TextGenerator
}

func New(submissions SubmissionFinder, model llm.TextGenerator) *Analyzer {
	return &Analyzer{
		submissions: submissions,
		model:       model,
	}
}

// rates the whole submission with a short summary and a 1-4 star rating
func (a *Analyzer) Summary(ctx context.Context, interviewID string) (*Summary, error) {
	sub, err := a.load(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	reply, err := a.generate(ctx, summaryPrompt(sub.QuestionSubmissions))
	if err != nil {
		return nil, err
	}

	var summary Summary
	if err := llm.DecodeJSON(reply, &summary); err != nil {
		return nil, fmt.Errorf("%w: unreadable summary reply: %v", errors.ErrUpstream, err)
	}

	if strings.TrimSpace(summary.Content) == "" {
		return nil, fmt.Errorf("%w: summary reply has no content", errors.ErrUpstream)
	}

	return &summary, nil
}

// estimates Big-O time and space per answer. a reply that cannot be read
// leaves the strings empty for that answer.
func (a *Analyzer) Complexity(ctx context.Context, interviewID string) ([]Complexity, error) {
	sub, err := a.load(ctx, interviewID)
	if err != nil {
		if stderrors.Is(err, ErrNoSubmission) {
			return []Complexity{}, nil
		}
		return nil, err
	}

	results := make([]Complexity, 0, len(sub.QuestionSubmissions))
	for _, qs := range sub.QuestionSubmissions {
		reply, err := a.generate(ctx, fmt.Sprintf(complexityPrompt, qs.QuestionTitle, qs.QuestionDescription, qs.Language, qs.Code))
		if err != nil {
			return nil, err
		}

		result := Complexity{QuestionName: qs.QuestionTitle}
		if err := llm.DecodeJSON(reply, &result); err != nil {
			logger.Warn("unreadable complexity reply", "question_id", qs.QuestionID, "error", err)
		}
		// the decoded object must not rename the question
		result.QuestionName = qs.QuestionTitle

		results = append(results, result)
	}

	return results, nil
}

// writes a recruiter-facing quality paragraph per answer
func (a *Analyzer) Quality(ctx context.Context, interviewID string) ([]Quality, error) {
	sub, err := a.load(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	results := make([]Quality, 0, len(sub.QuestionSubmissions))
	for _, qs := range sub.QuestionSubmissions {
		reply, err := a.generate(ctx, fmt.Sprintf(qualityPrompt, qs.QuestionTitle, qs.QuestionDescription, qs.Language, qs.Code))
		if err != nil {
			return nil, err
		}

		results = append(results, Quality{
			QuestionName: qs.QuestionTitle,
			Content:      strings.TrimSpace(reply),
		})
	}

	return results, nil
}

// drafts a coding question from a free-text request
func (a *Analyzer) GenerateQuestion(ctx context.Context, request string) (*GeneratedQuestion, error) {
	reply, err := a.generate(ctx, fmt.Sprintf(questionPrompt, strings.TrimSpace(request)))
	if err != nil {
		return nil, err
	}

	var q GeneratedQuestion
	if err := llm.DecodeJSON(reply, &q); err != nil {
		return nil, fmt.Errorf("%w: unreadable question reply: %v", errors.ErrUpstream, err)
	}

	if strings.TrimSpace(q.Title) == "" || strings.TrimSpace(q.Description) == "" {
		return nil, fmt.Errorf("%w: question reply is missing a title or description", errors.ErrUpstream)
	}

	return &q, nil
}

func (a *Analyzer) load(ctx context.Context, interviewID string) (*submissions.Submission, error) {
	sub, err := a.submissions.FindByInterview(ctx, interviewID)
	if err != nil {
		if stderrors.Is(err, submissions.ErrSubmissionNotFound) {
			return nil, ErrNoSubmission
		}
		return nil, err
	}

	return sub, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	reply, err := a.model.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}

	return reply, nil
}
