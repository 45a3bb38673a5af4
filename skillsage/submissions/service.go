package submissions

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/interviews"
)

type Store interface {
	Create(ctx context.Context, interviewID, candidateID string, answers []AnswerRequest, messages []MessageRequest) (*Submission, error)
	FindByInterview(ctx context.Context, interviewID string) (*Submission, error)
}

type InterviewFinder interface {
	FindByID(ctx context.Context, id string) (*interviews.Interview, error)
}

type QuestionChecker interface {
	AllExist(ctx context.Context, ids []string) (bool, error)
}

type EmbeddingStore interface {
	Store(ctx context.Context, e *embeddings.CodeEmbedding) error
}

var (
	ErrNotInterviewCandidate = fmt.Errorf("only the interview's candidate can submit: %w", errors.ErrForbidden)
	ErrNotInterviewRecruiter = fmt.Errorf("you are not the recruiter of this interview: %w", errors.ErrForbidden)
	ErrUnknownQuestion       = fmt.Errorf("one or more questions not found: %w", errors.ErrInvalidInput)
)

// stores submissions and indexes their code for plagiarism search
type Service struct {
	store      Store
	interviews InterviewFinder
	questions  QuestionChecker
	embedder   llm.Embedder
	vectors    EmbeddingStore
	closeRoom  interviews.RoomEnderFunc
}

func NewService(
	store Store,
	interviews InterviewFinder,
	questions QuestionChecker,
	embedder llm.Embedder,
	vectors EmbeddingStore,
) *Service {
	return &Service{
		store:      store,
		interviews: interviews,
		questions:  questions,
		embedder:   embedder,
		vectors:    vectors,
	}
}

// sets the callback that closes the live room once the interview is submitted
func (s *Service) OnRoomClosed(fn interviews.RoomEnderFunc) {
	s.closeRoom = fn
}

// records the candidate's answers and embeds each of them.
// embedding failures are logged; the submission is already committed.
func (s *Service) Submit(ctx context.Context, candidateID string, req SubmitRequest) (*Submission, error) {
	interview, err := s.interviews.FindByID(ctx, req.InterviewID)
	if err != nil {
		return nil, err
	}

	if interview.CandidateID != candidateID {
		return nil, ErrNotInterviewCandidate
	}

	ids := make([]string, 0, len(req.Submissions))
	for _, a := range req.Submissions {
		ids = append(ids, a.QuestionID)
	}

	ok, err := s.questions.AllExist(ctx, ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownQuestion
	}

	sub, err := s.store.Create(ctx, interview.ID, candidateID, req.Submissions, req.Messages)
	if err != nil {
		return nil, err
	}

	logger.Info("submission stored",
		"submission_id", sub.ID,
		"interview_id", interview.ID,
		"answers", len(sub.QuestionSubmissions),
	)

	if s.closeRoom != nil {
		s.closeRoom(interview.ID, interviews.ReasonCompleted)
	}

	s.index(ctx, sub)

	return sub, nil
}

func (s *Service) index(ctx context.Context, sub *Submission) {
	if s.embedder == nil || s.vectors == nil {
		return
	}

	for _, qs := range sub.QuestionSubmissions {
		if strings.TrimSpace(qs.Code) == "" {
			continue
		}

		vec, err := s.embedder.GenerateEmbedding(ctx, qs.Code)
		if err != nil {
			logger.ErrorErr(err, "failed to embed submitted code",
				"submission_id", sub.ID,
				"question_id", qs.QuestionID,
			)
			continue
		}

		err = s.vectors.Store(ctx, &embeddings.CodeEmbedding{
			QuestionID:  qs.QuestionID,
			CandidateID: sub.CandidateID,
			InterviewID: sub.InterviewID,
			Embedding:   vec,
			Fingerprint: integrity.Hash(qs.Code).Int64(),
		})
		if err != nil {
			logger.ErrorErr(err, "failed to store code embedding",
				"submission_id", sub.ID,
				"question_id", qs.QuestionID,
			)
		}
	}
}

// returns the submission of an interview owned by the recruiter
func (s *Service) ForRecruiter(ctx context.Context, recruiterID, interviewID string) (*Submission, error) {
	interview, err := s.interviews.FindByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if interview.RecruiterID != recruiterID {
		return nil, ErrNotInterviewRecruiter
	}

	return s.store.FindByInterview(ctx, interviewID)
}
