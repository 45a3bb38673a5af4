package interviews

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/mail"
	"codeberg.org/skillsage/server/skillsage/users"
)

// persistence used by the service
type Store interface {
	Create(ctx context.Context, params CreateParams) (string, error)
	FindByID(ctx context.Context, id string) (*Interview, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]Interview, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]Interview, error)
	Update(ctx context.Context, id string, req UpdateRequest) error
	Delete(ctx context.Context, id string) error
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type QuestionChecker interface {
	AllExist(ctx context.Context, ids []string) (bool, error)
}

var (
	ErrCandidateNotFound = fmt.Errorf("candidate not found: %w", errors.ErrInvalidInput)
	ErrNotCandidate      = fmt.Errorf("user is not a candidate: %w", errors.ErrInvalidInput)
	ErrQuestionsMissing  = fmt.Errorf("one or more questions not found: %w", errors.ErrInvalidInput)
	ErrNotParticipant    = fmt.Errorf("you are not a participant of this interview: %w", errors.ErrForbidden)
	ErrNotOwner          = fmt.Errorf("you are not the recruiter of this interview: %w", errors.ErrForbidden)
)

// applies the scheduling rules on top of the repository
type Service struct {
	store     Store
	users     UserFinder
	questions QuestionChecker
	mailer    mail.Sender
	closeRoom RoomEnderFunc
}

func NewService(store Store, users UserFinder, questions QuestionChecker, mailer mail.Sender) *Service {
	return &Service{
		store:     store,
		users:     users,
		questions: questions,
		mailer:    mailer,
	}
}

// sets the callback that closes an interview's live room after it is deleted
func (s *Service) OnRoomClosed(fn RoomEnderFunc) {
	s.closeRoom = fn
}

// schedules an interview for the candidate with this email and mails the invitation
func (s *Service) Create(ctx context.Context, recruiterID string, req CreateRequest) (*Interview, error) {
	candidate, err := s.users.FindByEmail(ctx, req.CandidateEmail)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	if candidate.Role != users.RoleCandidate {
		return nil, ErrNotCandidate
	}

	ok, err := s.questions.AllExist(ctx, req.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuestionsMissing
	}

	id, err := s.store.Create(ctx, CreateParams{
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		DurationMinutes: req.Duration,
		RecruiterID:     recruiterID,
		CandidateID:     candidate.ID,
		QuestionIDs:     req.QuestionIDs,
	})
	if err != nil {
		return nil, err
	}

	interview, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info("interview scheduled",
		"interview_id", interview.ID,
		"recruiter_id", recruiterID,
		"candidate_id", candidate.ID,
		"questions", len(req.QuestionIDs),
	)

	if s.mailer != nil {
		mail.SendAsync(s.mailer, mail.InvitationMail(mail.Invitation{
			CandidateEmail:     candidate.Email,
			CandidateFirstName: candidate.FirstName,
			Title:              interview.Title,
			Description:        interview.Description,
			StartTime:          interview.StartTime,
			DurationMinutes:    interview.DurationMinutes,
		}))
	}

	return interview, nil
}

// returns the interview when the user takes part in it
func (s *Service) Get(ctx context.Context, userID, id string) (*Interview, error) {
	interview, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !interview.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}

	return interview, nil
}

// returns the interview when the user is its recruiter
func (s *Service) Owned(ctx context.Context, recruiterID, id string) (*Interview, error) {
	interview, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if interview.RecruiterID != recruiterID {
		return nil, ErrNotOwner
	}

	return interview, nil
}

// lists the interviews a user created (recruiter) or was assigned (candidate)
func (s *Service) List(ctx context.Context, userID string, role users.Role) ([]Interview, error) {
	if role == users.RoleRecruiter {
		return s.store.ListForRecruiter(ctx, userID)
	}

	return s.store.ListForCandidate(ctx, userID)
}

func (s *Service) Update(ctx context.Context, recruiterID, id string, req UpdateRequest) (*Interview, error) {
	if _, err := s.Owned(ctx, recruiterID, id); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.store.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, recruiterID, id string) error {
	if _, err := s.Owned(ctx, recruiterID, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.closeRoom != nil {
		s.closeRoom(id, ReasonDeleted)
	}

	return nil
}
