package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message type constants for websocket communication
const (
	// is sent when a participant sends a chat message
	TypeChatMessage = "chat_message"

	// is sent by the recruiter to start, pause or complete the interview timer
	TypeTimer = "timer"

	// carries a WebRTC offer or answer
	TypeSignal = "signal"

	// carries a WebRTC ICE candidate
	TypeICECandidate = "ice_candidate"

	// is sent when the candidate updates the code of a question
	TypeCodeUpdate = "code_update"

	// is sent when the question on screen changes
	TypeQuestionChange = "question_change"

	// is sent when the language of a question changes
	TypeLanguageChange = "language_change"

	// is sent when a participant starts or stops sharing their screen
	TypeScreenShareStatus = "screen_share_status"

	// is sent by a client leaving the room
	TypeLeave = "leave"

	// is sent by clients to keep the connection alive
	TypePing = "ping"

	// is sent by server in response to ping
	TypePong = "pong"

	// is sent to the connecting client with the room state
	TypeRoomState = "room_state"

	// is sent when a participant joins the room
	TypeUserJoined = "user_joined"

	// is sent when a participant leaves the room
	TypeUserLeft = "user_left"

	// is sent when an error occurs
	TypeError = "error"

	// is sent by server before shutdown
	TypeServerShutdown = "server_shutdown"

	// is sent when the room is closed (interview expired or ended)
	TypeRoomEnded = "room_ended"

	// is sent to the recruiter when a large insertion is detected
	TypePasteDetected = "paste_detected"
)

// participant roles, mirroring users.Role
const (
	RoleRecruiter = "RECRUITER"
	RoleCandidate = "CANDIDATE"
)

// timer states
const (
	TimerStarted   = "STARTED"
	TimerPaused    = "PAUSED"
	TimerCompleted = "COMPLETED"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512 KB

	// rate limiting constants
	maxCodeUpdatesPerSecond  = 10
	maxChatMessagesPerMinute = 20

	// content size limits
	maxCodeSize        = 100 * 1024 // 100 KB
	maxChatMessageSize = 5000       // characters
)

// hub connection limit constants
const (
	maxConnectionsPerUser = 5
	maxConnectionsPerIP   = 10
)

// errors
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrInvalidMessage    = errors.New("invalid message format")
	ErrClientNotFound    = errors.New("client not found")
	ErrForbidden         = errors.New("not allowed for this role")
	ErrConnectionClosed  = errors.New("connection closed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrCodeTooLarge      = errors.New("code too large")
	ErrMessageTooLarge   = errors.New("message too large")
	ErrEmptyMessage      = errors.New("message is empty")
)

// represents a websocket message with typed payload
type Message struct {
	Type        string          `json:"type"`
	InterviewID string          `json:"interview_id"`
	ClientID    string          `json:"-"` // internal only, not sent to clients
	UserID      string          `json:"user_id,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Sequence    uint64          `json:"seq,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

// contains a chat message
type ChatMessagePayload struct {
	Content    string `json:"content"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	SenderRole string `json:"sender_role,omitempty"`
}

// contains the interview timer
type TimerPayload struct {
	RemainingTime int    `json:"remaining_time"`
	Status        string `json:"status"`
}

// contains a WebRTC offer or answer
type SignalPayload struct {
	To            string          `json:"to,omitempty"`
	From          string          `json:"from,omitempty"`
	Signal        json.RawMessage `json:"signal"`
	SignalType    string          `json:"signal_type,omitempty"`
	IsScreenShare bool            `json:"is_screen_share"`
}

// contains a WebRTC ICE candidate
type ICECandidatePayload struct {
	To            string          `json:"to,omitempty"`
	From          string          `json:"from,omitempty"`
	Candidate     json.RawMessage `json:"candidate"`
	IsScreenShare bool            `json:"is_screen_share"`
}

// contains a code update of one question
type CodeUpdatePayload struct {
	QuestionID           string `json:"question_id"`
	Code                 string `json:"code"`
	Language             string `json:"language,omitempty"`
	CurrentQuestionIndex int    `json:"current_question_index"`
}

// contains the question on screen
type QuestionChangePayload struct {
	QuestionID           string `json:"question_id,omitempty"`
	CurrentQuestionIndex int    `json:"current_question_index"`
}

// contains the new language of a question
type LanguageChangePayload struct {
	QuestionID           string `json:"question_id"`
	Language             string `json:"language"`
	CurrentQuestionIndex int    `json:"current_question_index"`
}

// contains screen share status
type ScreenSharePayload struct {
	IsSharing bool   `json:"is_sharing"`
	From      string `json:"from,omitempty"`
}

// contains information about a newly joined participant
type UserJoinedPayload struct {
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// contains information about a participant who left
type UserLeftPayload struct {
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// contains information about server shutdown
type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}

// contains room termination information
type RoomEndedPayload struct {
	Reason string `json:"reason,omitempty"`
}

// tells the recruiter about a large insertion by the candidate
type PasteDetectedPayload struct {
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	AddedChars int       `json:"added_chars"`
	AddedLines int       `json:"added_lines"`
	DetectedAt time.Time `json:"detected_at"`
}

// contains room info sent to the connecting client
type RoomStatePayload struct {
	ClientID     string            `json:"client_id"`
	YourRole     string            `json:"your_role"`
	Participants []RoomParticipant `json:"participants"`
	ChatHistory  []ChatHistoryItem `json:"chat_history"`
	CodeState    CodeStatePayload  `json:"code_state"`
}

// represents a participant in room_state
type RoomParticipant struct {
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// represents a chat message in the chat history
type ChatHistoryItem struct {
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name"`
	SenderRole string `json:"sender_role"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"` // unix milliseconds
}

// the code of every question plus the question on screen
type CodeStatePayload struct {
	CodeUpdates          map[string]CodeUpdatePayload `json:"code_updates"`
	CurrentQuestionIndex int                          `json:"current_question_index"`
}

// represents a websocket client connection
type Client struct {
	// unique identifier for this client
	ID string

	// interview room this client is connected to
	InterviewID string

	// authenticated user ID
	UserID string

	// display name for this client
	DisplayName string

	// RECRUITER or CANDIDATE
	Role string

	// IP address of the client (for connection tracking)
	IPAddress string

	// chat history to send on connect
	InitialChatHistory []ChatHistoryItem

	// code state to send on connect
	InitialCodeState CodeStatePayload

	// websocket connection
	conn *websocket.Conn

	// hub reference for message broadcasting
	hub *Hub

	// buffered channel of outbound messages
	send chan []byte

	// mutex for thread-safe operations
	mu sync.RWMutex

	// flag indicating if client is closed
	closed bool

	// rate limiting: code update timestamps (sliding window)
	codeUpdateTimestamps []time.Time

	// rate limiting: chat message timestamps (sliding window)
	chatMessageTimestamps []time.Time
}

// maintains the set of active clients and broadcasts messages to rooms
type Hub struct {
	// registered clients by interview ID and client ID
	rooms map[string]map[string]*Client

	// register requests from clients
	Register chan *Client

	// unregister requests from clients
	Unregister chan *Client

	// messages read from clients, dispatched to handlers
	Broadcast chan *Message

	// mutex for thread-safe access to rooms
	mu sync.RWMutex

	// message handlers for different message types
	handlers map[string]MessageHandler

	// flag indicating if hub is running
	running bool

	// channel to signal shutdown
	shutdown chan struct{}

	shutdownOnce sync.Once

	// connection tracking: user ID -> count of connections
	userConnections map[string]int

	// connection tracking: IP address -> count of connections
	ipConnections map[string]int

	// sequence numbers per room for message ordering
	roomSequences map[string]uint64

	// callback for client disconnect

	// callback when the last client of a room leaves (e.g., flush chat)
	onRoomEmpty func(interviewID string)
}

// processes a specific message type
type MessageHandler func(hub *Hub, client *Client, msg *Message) error
