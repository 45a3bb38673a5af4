package interviews

import (
	"strings"
	"time"

	"codeberg.org/skillsage/server/skillsage/questions"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles interview database operations
type Repository struct {
	db *pgxpool.Pool
}

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusExpired    Status = "EXPIRED"
)

// reports whether participants may still join the room
func (s Status) IsOpen() bool {
	return s == StatusScheduled || s == StatusInProgress
}

// a user taking part in an interview
type Participant struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (p Participant) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// represents a scheduled interview with its participants and ordered questions
type Interview struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	StartTime       time.Time            `json:"startTime"`
	EndTime         time.Time            `json:"endTime"`
	DurationMinutes int                  `json:"duration"`
	Status          Status               `json:"status"`
	RecruiterID     string               `json:"-"`
	CandidateID     string               `json:"-"`
	Recruiter       Participant          `json:"recruiter"`
	Candidate       Participant          `json:"candidate"`
	Questions       []questions.Question `json:"questions"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// reports whether the user is the recruiter or the candidate
func (i *Interview) IsParticipant(userID string) bool {
	return userID != "" && (userID == i.RecruiterID || userID == i.CandidateID)
}

// contains data for creating an interview
type CreateRequest struct {
	Title          string    `json:"title" binding:"required,notblank,max=200"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	Duration       int       `json:"duration" binding:"required,min=1,max=1440"`
	CandidateEmail string    `json:"candidateEmail" binding:"required,email"`
	QuestionIDs    []string  `json:"questionIds" binding:"required,min=1,dive,uuid"`
}

// contains data for rescheduling or renaming an interview
type UpdateRequest struct {
	Title       string    `json:"title" binding:"required,notblank,max=200"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	Duration    int       `json:"duration" binding:"required,min=1,max=1440"`
}

// contains resolved data for the insert
type CreateParams struct {
	Title           string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	RecruiterID     string
	CandidateID     string
	QuestionIDs     []string
}

// an open interview whose end time has passed
type Overdue struct {
	ID      string
	Title   string
	EndTime time.Time
}

// computes the end of an interview
func EndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
