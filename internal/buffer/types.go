package buffer

import "time"

// represents a chat message waiting to be flushed to Postgres
type BufferedChatMessage struct {
	ID          string    `json:"id"`
	InterviewID string    `json:"interview_id"`
	SenderID    string    `json:"sender_id,omitempty"`
	SenderName  string    `json:"sender_name"`
	SenderRole  string    `json:"sender_role"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

// the latest code of one question in a room
type CodeState struct {
	QuestionID string    `json:"question_id"`
	Code       string    `json:"code"`
	Language   string    `json:"language"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// redis key patterns
const (
	// interview:{id}:messages - unflushed chat messages as a JSON list
	keyRoomMessages = "interview:%s:messages"

	// interview:{id}:code - hash of question ID to JSON CodeState
	keyRoomCode = "interview:%s:code"

	// interview:{id}:current_question - index of the question on screen
	keyRoomCurrentQuestion = "interview:%s:current_question"

	// dirty_interviews:messages - set of interview IDs with unflushed messages
	keyDirtyRoomsMessages = "dirty_interviews:messages"
)

// how long code state survives after the last update
const codeStateTTL = 24 * time.Hour
