package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/integrity"
)

type room struct {
	hub       *Hub
	buffer    *buffer.RoomBuffer
	detector  *integrity.Detector
	recruiter *Client
	candidate *Client
}

func newRoom(t *testing.T) *room {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	config := integrity.DefaultConfig()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	r := &room{
		hub:       hub,
		buffer:    buffer.NewRoomBuffer(client),
		detector:  integrity.NewDetector(config, integrity.NewRedisEventStore(client, config)),
		recruiter: newTestClient(hub, "recruiter-client", "interview-1", "recruiter-1", RoleRecruiter),
		candidate: newTestClient(hub, "candidate-client", "interview-1", "candidate-1", RoleCandidate),
	}

	hub.Register <- r.recruiter
	hub.Register <- r.candidate
	time.Sleep(50 * time.Millisecond)
	drain(r.recruiter)
	drain(r.candidate)

	return r
}

func incoming(t *testing.T, client *Client, msgType string, payload any) *Message {
	t.Helper()

	msg, err := NewMessage(msgType, client.InterviewID, client.UserID, payload)
	require.NoError(t, err)
	msg.ClientID = client.ID
	return msg
}

func TestChatHandler(t *testing.T) {
	r := newRoom(t)
	handler := ChatHandler(r.buffer)

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeChatMessage, ChatMessagePayload{Content: "  hello  "}))
	require.NoError(t, err)

	for _, c := range []*Client{r.recruiter, r.candidate} {
		msg := waitForMessage(t, c, TypeChatMessage)

		var payload ChatMessagePayload
		require.NoError(t, msg.UnmarshalPayload(&payload))
		assert.Equal(t, "hello", payload.Content)
		assert.Equal(t, "candidate-1", payload.SenderID)
		assert.Equal(t, RoleCandidate, payload.SenderRole)
	}

	pending, err := r.buffer.PendingMessages(context.Background(), "interview-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "hello", pending[0].Content)
	assert.Equal(t, "candidate-1", pending[0].SenderID)
}

func TestChatHandler_Rejects(t *testing.T) {
	r := newRoom(t)
	handler := ChatHandler(r.buffer)

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty", "   ", ErrEmptyMessage},
		{"too long", strings.Repeat("a", maxChatMessageSize+1), ErrMessageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeChatMessage, ChatMessagePayload{Content: tt.content}))
			assert.ErrorIs(t, err, tt.wantErr)
			waitForMessage(t, r.candidate, TypeError)
			assertNoMessage(t, r.recruiter)
		})
	}
}

func TestChatHandler_RateLimit(t *testing.T) {
	r := newRoom(t)
	handler := ChatHandler(r.buffer)

	for range maxChatMessagesPerMinute {
		require.NoError(t, handler(r.hub, r.candidate, incoming(t, r.candidate, TypeChatMessage, ChatMessagePayload{Content: "hi"})))
	}

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeChatMessage, ChatMessagePayload{Content: "hi"}))
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
}

func TestTimerHandler(t *testing.T) {
	r := newRoom(t)
	handler := TimerHandler()

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeTimer, TimerPayload{RemainingTime: 10, Status: TimerStarted}))
	assert.ErrorIs(t, err, ErrForbidden)
	waitForMessage(t, r.candidate, TypeError)

	err = handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeTimer, TimerPayload{RemainingTime: 10, Status: "RUNNING"}))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeTimer, TimerPayload{RemainingTime: 1800, Status: TimerStarted}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.candidate, TypeTimer)

	var payload TimerPayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, 1800, payload.RemainingTime)
	assert.Equal(t, TimerStarted, payload.Status)
}

func TestSignalHandler_Addressed(t *testing.T) {
	r := newRoom(t)
	handler := SignalHandler()

	err := handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeSignal, SignalPayload{
		To:         r.candidate.ID,
		Signal:     json.RawMessage(`{"sdp":"v=0"}`),
		SignalType: "offer",
	}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.candidate, TypeSignal)

	var payload SignalPayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, r.recruiter.ID, payload.From)
	assert.Equal(t, "offer", payload.SignalType)
	assert.JSONEq(t, `{"sdp":"v=0"}`, string(payload.Signal))

	assertNoMessage(t, r.recruiter)
}

func TestSignalHandler_Broadcast(t *testing.T) {
	r := newRoom(t)
	handler := SignalHandler()

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeSignal, SignalPayload{Signal: json.RawMessage(`{}`)}))
	require.NoError(t, err)

	waitForMessage(t, r.recruiter, TypeSignal)
	assertNoMessage(t, r.candidate)
}

func TestSignalHandler_UnknownPeer(t *testing.T) {
	r := newRoom(t)
	handler := SignalHandler()

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeSignal, SignalPayload{To: "ghost", Signal: json.RawMessage(`{}`)}))
	assert.ErrorIs(t, err, ErrClientNotFound)
	waitForMessage(t, r.candidate, TypeError)
}

func TestSignalHandler_MissingSignal(t *testing.T) {
	r := newRoom(t)

	err := SignalHandler()(r.hub, r.candidate, incoming(t, r.candidate, TypeSignal, SignalPayload{}))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestSignalHandler_NullSignal(t *testing.T) {
	r := newRoom(t)

	msg := incoming(t, r.candidate, TypeSignal, map[string]any{"to": r.recruiter.ID, "signal": nil})
	err := SignalHandler()(r.hub, r.candidate, msg)
	assert.ErrorIs(t, err, ErrInvalidMessage)

	waitForMessage(t, r.candidate, TypeError)
	assertNoMessage(t, r.recruiter)
}

func TestICECandidateHandler_MissingCandidate(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"absent", map[string]any{"to": ""}},
		{"null", map[string]any{"candidate": nil}},
		{"padded null", map[string]any{"candidate": json.RawMessage(" null ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRoom(t)

			err := ICECandidateHandler()(r.hub, r.candidate, incoming(t, r.candidate, TypeICECandidate, tt.payload))
			assert.ErrorIs(t, err, ErrInvalidMessage)
			assertNoMessage(t, r.recruiter)
		})
	}
}

func TestICECandidateHandler(t *testing.T) {
	r := newRoom(t)
	handler := ICECandidateHandler()

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeICECandidate, ICECandidatePayload{
		To:            r.recruiter.ID,
		Candidate:     json.RawMessage(`{"candidate":"candidate:1 1 udp"}`),
		IsScreenShare: true,
	}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.recruiter, TypeICECandidate)

	var payload ICECandidatePayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, r.candidate.ID, payload.From)
	assert.True(t, payload.IsScreenShare)
}

func TestCodeUpdateHandler(t *testing.T) {
	r := newRoom(t)
	handler := CodeUpdateHandler(r.buffer, r.detector)
	ctx := context.Background()

	err := handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeCodeUpdate, CodeUpdatePayload{QuestionID: "q1", Code: "x"}))
	assert.ErrorIs(t, err, ErrForbidden)
	waitForMessage(t, r.recruiter, TypeError)

	err = handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{
		QuestionID:           "q1",
		Code:                 "def solve():",
		Language:             "python",
		CurrentQuestionIndex: 1,
	}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.recruiter, TypeCodeUpdate)

	var payload CodeUpdatePayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, "def solve():", payload.Code)
	assertNoMessage(t, r.candidate)

	state, err := r.buffer.GetCode(ctx, "interview-1", "q1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "python", state.Language)

	index, err := r.buffer.CurrentQuestion(ctx, "interview-1")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	// language carries over when omitted
	require.NoError(t, handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{
		QuestionID: "q1",
		Code:       "def solve(): pass",
	})))

	state, err = r.buffer.GetCode(ctx, "interview-1", "q1")
	require.NoError(t, err)
	assert.Equal(t, "python", state.Language)
	assert.Equal(t, "def solve(): pass", state.Code)
}

func TestCodeUpdateHandler_PasteDetected(t *testing.T) {
	r := newRoom(t)
	handler := CodeUpdateHandler(r.buffer, r.detector)

	pasted := strings.Repeat("print('copied')\n", 20)

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{QuestionID: "q1", Code: pasted}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.recruiter, TypePasteDetected)

	var payload PasteDetectedPayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, "q1", payload.QuestionID)
	assert.Equal(t, "candidate-1", payload.UserID)
	assert.Equal(t, len(pasted), payload.AddedChars)

	events, err := r.detector.Events(context.Background(), "interview-1")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	drain(r.candidate)
	waitForMessage(t, r.recruiter, TypeCodeUpdate)

	// small edits after the paste are not reported
	require.NoError(t, handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{QuestionID: "q1", Code: pasted + "x"})))
	waitForMessage(t, r.recruiter, TypeCodeUpdate)
	assertNoMessage(t, r.recruiter)
}

func TestCodeUpdateHandler_Rejects(t *testing.T) {
	r := newRoom(t)
	handler := CodeUpdateHandler(r.buffer, nil)

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{Code: "x"}))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = handler(r.hub, r.candidate, incoming(t, r.candidate, TypeCodeUpdate, CodeUpdatePayload{
		QuestionID: "q1",
		Code:       strings.Repeat("a", maxCodeSize+1),
	}))
	assert.ErrorIs(t, err, ErrCodeTooLarge)

	missing := &Message{Type: TypeCodeUpdate, InterviewID: "interview-1", ClientID: r.candidate.ID}
	err = handler(r.hub, r.candidate, missing)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestQuestionChangeHandler(t *testing.T) {
	r := newRoom(t)
	handler := QuestionChangeHandler(r.buffer)

	err := handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeQuestionChange, QuestionChangePayload{QuestionID: "q2", CurrentQuestionIndex: 2}))
	require.NoError(t, err)

	waitForMessage(t, r.recruiter, TypeQuestionChange)
	waitForMessage(t, r.candidate, TypeQuestionChange)

	index, err := r.buffer.CurrentQuestion(context.Background(), "interview-1")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	err = handler(r.hub, r.recruiter, incoming(t, r.recruiter, TypeQuestionChange, QuestionChangePayload{CurrentQuestionIndex: -1}))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestLanguageChangeHandler(t *testing.T) {
	r := newRoom(t)
	handler := LanguageChangeHandler(r.buffer)
	ctx := context.Background()

	require.NoError(t, r.buffer.SetCode(ctx, "interview-1", buffer.CodeState{QuestionID: "q1", Code: "x := 1", Language: "python"}))

	err := handler(r.hub, r.candidate, incoming(t, r.candidate, TypeLanguageChange, LanguageChangePayload{QuestionID: "q1", Language: "go"}))
	require.NoError(t, err)

	waitForMessage(t, r.recruiter, TypeLanguageChange)
	waitForMessage(t, r.candidate, TypeLanguageChange)

	state, err := r.buffer.GetCode(ctx, "interview-1", "q1")
	require.NoError(t, err)
	assert.Equal(t, "go", state.Language)
	assert.Equal(t, "x := 1", state.Code)

	err = handler(r.hub, r.candidate, incoming(t, r.candidate, TypeLanguageChange, LanguageChangePayload{QuestionID: "q1", Language: " "}))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestScreenShareHandler(t *testing.T) {
	r := newRoom(t)

	err := ScreenShareHandler()(r.hub, r.candidate, incoming(t, r.candidate, TypeScreenShareStatus, ScreenSharePayload{IsSharing: true}))
	require.NoError(t, err)

	msg := waitForMessage(t, r.recruiter, TypeScreenShareStatus)

	var payload ScreenSharePayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.True(t, payload.IsSharing)
	assert.Equal(t, r.candidate.ID, payload.From)
	assertNoMessage(t, r.candidate)
}

func TestPingHandler(t *testing.T) {
	r := newRoom(t)

	require.NoError(t, PingHandler()(r.hub, r.candidate, incoming(t, r.candidate, TypePing, nil)))
	waitForMessage(t, r.candidate, TypePong)
}

func TestRegisterHandlers(t *testing.T) {
	hub := NewHub()
	RegisterHandlers(hub, nil, nil)

	for _, msgType := range []string{
		TypeChatMessage, TypeTimer, TypeSignal, TypeICECandidate, TypeCodeUpdate,
		TypeQuestionChange, TypeLanguageChange, TypeScreenShareStatus, TypePing,
	} {
		assert.Contains(t, hub.handlers, msgType)
	}
	assert.NotContains(t, hub.handlers, TypeRoomState)
}
