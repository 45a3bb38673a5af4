package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, id, interviewID, userID, role string) *Client {
	return &Client{
		ID:          id,
		InterviewID: interviewID,
		UserID:      userID,
		DisplayName: "User " + id,
		Role:        role,
		hub:         hub,
		send:        make(chan []byte, 256),
	}
}

// reads queued messages until one of the wanted type arrives
func waitForMessage(t *testing.T, client *Client, msgType string) *Message {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case raw, ok := <-client.send:
			if !ok {
				t.Fatalf("client %s closed while waiting for %s", client.ID, msgType)
			}

			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			if msg.Type == msgType {
				return &msg
			}
		case <-deadline:
			t.Fatalf("client %s did not receive %s", client.ID, msgType)
			return nil
		}
	}
}

// drains queued messages
func drain(client *Client) {
	for {
		select {
		case _, ok := <-client.send:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func roomSize(hub *Hub, interviewID string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.rooms[interviewID])
}

func assertNoMessage(t *testing.T, client *Client) {
	t.Helper()

	select {
	case raw := <-client.send:
		t.Errorf("client %s should not have received %s", client.ID, raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCreation(t *testing.T) {
	hub := NewHub()
	require.NotNil(t, hub)
	assert.NotNil(t, hub.Register)
	assert.NotNil(t, hub.Unregister)
	assert.NotNil(t, hub.Broadcast)
}

func TestHubRegisterClient_SendsRoomState(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleCandidate)
	client.InitialChatHistory = []ChatHistoryItem{{SenderName: "Ada", SenderRole: RoleRecruiter, Content: "welcome"}}
	client.InitialCodeState = CodeStatePayload{
		CodeUpdates:          map[string]CodeUpdatePayload{"q1": {QuestionID: "q1", Code: "x = 1"}},
		CurrentQuestionIndex: 1,
	}

	hub.Register <- client

	msg := waitForMessage(t, client, TypeRoomState)

	var state RoomStatePayload
	require.NoError(t, msg.UnmarshalPayload(&state))
	assert.Equal(t, "client-1", state.ClientID)
	assert.Equal(t, RoleCandidate, state.YourRole)
	require.Len(t, state.Participants, 1)
	assert.Equal(t, "user-1", state.Participants[0].UserID)
	require.Len(t, state.ChatHistory, 1)
	assert.Equal(t, "welcome", state.ChatHistory[0].Content)
	assert.Equal(t, 1, state.CodeState.CurrentQuestionIndex)
	assert.Equal(t, "x = 1", state.CodeState.CodeUpdates["q1"].Code)

	assert.Equal(t, 1, roomSize(hub, "interview-1"))
	hub.mu.RLock()
	assert.Contains(t, hub.rooms["interview-1"], "client-1")
	hub.mu.RUnlock()
}

func TestHubRegisterClient_EmptyStateIsNotNull(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client

	msg := waitForMessage(t, client, TypeRoomState)
	assert.Contains(t, string(msg.Payload), `"chat_history":[]`)
	assert.Contains(t, string(msg.Payload), `"code_updates":{}`)
}

func TestHubRegisterClient_AnnouncesToOthers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	recruiter := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	candidate := newTestClient(hub, "client-2", "interview-1", "user-2", RoleCandidate)

	hub.Register <- recruiter
	waitForMessage(t, recruiter, TypeRoomState)

	hub.Register <- candidate
	waitForMessage(t, candidate, TypeRoomState)

	msg := waitForMessage(t, recruiter, TypeUserJoined)

	var joined UserJoinedPayload
	require.NoError(t, msg.UnmarshalPayload(&joined))
	assert.Equal(t, "client-2", joined.ClientID)
	assert.Equal(t, RoleCandidate, joined.Role)
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	emptied := make(chan string, 1)
	hub.OnRoomEmpty(func(interviewID string) {
		emptied <- interviewID
	})

	recruiter := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	candidate := newTestClient(hub, "client-2", "interview-1", "user-2", RoleCandidate)

	hub.Register <- recruiter
	hub.Register <- candidate
	waitForMessage(t, recruiter, TypeUserJoined)

	hub.Unregister <- candidate
	msg := waitForMessage(t, recruiter, TypeUserLeft)

	var left UserLeftPayload
	require.NoError(t, msg.UnmarshalPayload(&left))
	assert.Equal(t, "client-2", left.ClientID)
	assert.True(t, candidate.IsClosed())
	assert.Equal(t, 1, roomSize(hub, "interview-1"))

	hub.Unregister <- recruiter

	select {
	case id := <-emptied:
		assert.Equal(t, "interview-1", id)
	case <-time.After(time.Second):
		t.Fatal("room empty callback was not called")
	}

	assert.Equal(t, 0, roomSize(hub, "interview-1"))
	assert.Zero(t, roomSize(hub, "interview-1"))
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client1 := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	client2 := newTestClient(hub, "client-2", "interview-1", "user-2", RoleCandidate)
	other := newTestClient(hub, "client-3", "interview-2", "user-3", RoleCandidate)

	hub.Register <- client1
	hub.Register <- client2
	hub.Register <- other
	time.Sleep(100 * time.Millisecond)

	drain(client1)
	drain(client2)
	drain(other)

	msg, err := NewMessage(TypeTimer, "interview-1", "user-1", TimerPayload{RemainingTime: 600, Status: TimerStarted})
	require.NoError(t, err)

	hub.BroadcastToRoom("interview-1", msg, "client-1")

	assertNoMessage(t, client1)
	assertNoMessage(t, other)
	received := waitForMessage(t, client2, TypeTimer)
	assert.NotZero(t, received.Sequence)
}

func TestHubSequenceNumbersIncrease(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client
	waitForMessage(t, client, TypeRoomState)

	var last uint64
	for i := range 3 {
		msg, err := NewMessage(TypeTimer, "interview-1", "user-1", TimerPayload{RemainingTime: i, Status: TimerStarted})
		require.NoError(t, err)
		hub.BroadcastToRoom("interview-1", msg, "")

		received := waitForMessage(t, client, TypeTimer)
		assert.Greater(t, received.Sequence, last)
		last = received.Sequence
	}
}

func TestHubSendToRole(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	recruiter := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	candidate := newTestClient(hub, "client-2", "interview-1", "user-2", RoleCandidate)

	hub.Register <- recruiter
	hub.Register <- candidate
	time.Sleep(100 * time.Millisecond)
	drain(recruiter)
	drain(candidate)

	msg, err := NewMessage(TypePasteDetected, "interview-1", "user-2", PasteDetectedPayload{QuestionID: "q1"})
	require.NoError(t, err)

	assert.Equal(t, 1, hub.SendToRole("interview-1", RoleRecruiter, msg))
	waitForMessage(t, recruiter, TypePasteDetected)
	assertNoMessage(t, candidate)

	assert.Equal(t, 0, hub.SendToRole("missing", RoleRecruiter, msg))
}

func TestHubSendToClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client
	waitForMessage(t, client, TypeRoomState)

	msg, err := NewMessage(TypeSignal, "interview-1", "user-2", SignalPayload{Signal: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, hub.SendToClient("interview-1", "client-1", msg))
	waitForMessage(t, client, TypeSignal)

	assert.ErrorIs(t, hub.SendToClient("interview-1", "nobody", msg), ErrClientNotFound)
	assert.ErrorIs(t, hub.SendToClient("missing", "client-1", msg), ErrRoomNotFound)
}

func TestHubMessageHandler(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	var (
		handlerMu     sync.Mutex
		handlerCalled bool
	)

	hub.RegisterHandler("test_message", func(_ *Hub, _ *Client, _ *Message) error {
		handlerMu.Lock()
		handlerCalled = true
		handlerMu.Unlock()
		return nil
	})

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	msg, err := NewMessage("test_message", "interview-1", "user-1", map[string]any{"test": "data"})
	require.NoError(t, err)
	msg.ClientID = "client-1"

	hub.Broadcast <- msg

	assert.Eventually(t, func() bool {
		handlerMu.Lock()
		defer handlerMu.Unlock()
		return handlerCalled
	}, time.Second, 10*time.Millisecond)
}

func TestHubUnknownMessageType(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client
	waitForMessage(t, client, TypeRoomState)

	msg, err := NewMessage("dance", "interview-1", "user-1", nil)
	require.NoError(t, err)
	msg.ClientID = "client-1"

	hub.Broadcast <- msg

	errMsg := waitForMessage(t, client, TypeError)
	assert.Contains(t, string(errMsg.Payload), "unsupported message type")
}

func TestHubConnectionLimits(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	for i := range maxConnectionsPerUser {
		hub.Register <- newTestClient(hub, fmt.Sprintf("client-%d", i), "interview-1", "user-1", RoleRecruiter)
	}
	time.Sleep(100 * time.Millisecond)

	ok, reason := hub.CanAcceptConnection("user-1", "10.0.0.1")
	assert.False(t, ok)
	assert.Contains(t, reason, "per user")

	ok, _ = hub.CanAcceptConnection("user-2", "10.0.0.1")
	assert.True(t, ok)

	for range maxConnectionsPerIP {
		hub.TrackIPConnection("10.0.0.2")
	}

	ok, reason = hub.CanAcceptConnection("user-3", "10.0.0.2")
	assert.False(t, ok)
	assert.Contains(t, reason, "per IP")

	hub.UntrackIPConnection("10.0.0.2")
	ok, _ = hub.CanAcceptConnection("user-3", "10.0.0.2")
	assert.True(t, ok)
}

func TestHubEndRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	emptied := make(chan string, 1)
	hub.OnRoomEmpty(func(interviewID string) {
		emptied <- interviewID
	})

	recruiter := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	candidate := newTestClient(hub, "client-2", "interview-1", "user-2", RoleCandidate)

	hub.Register <- recruiter
	hub.Register <- candidate
	time.Sleep(100 * time.Millisecond)
	drain(recruiter)
	drain(candidate)

	hub.EndRoom("interview-1", "interview_expired")

	msg := waitForMessage(t, candidate, TypeRoomEnded)

	var ended RoomEndedPayload
	require.NoError(t, msg.UnmarshalPayload(&ended))
	assert.Equal(t, "interview_expired", ended.Reason)

	assert.True(t, recruiter.IsClosed())
	assert.True(t, candidate.IsClosed())
	assert.Zero(t, roomSize(hub, "interview-1"))
	assert.Equal(t, "interview-1", <-emptied)

	ok, _ := hub.CanAcceptConnection("user-1", "")
	assert.True(t, ok)

	// ending an unknown room is a no-op
	hub.EndRoom("interview-1", "again")
}

func TestHubShutdown(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	client := newTestClient(hub, "client-1", "interview-1", "user-1", RoleRecruiter)
	hub.Register <- client
	waitForMessage(t, client, TypeRoomState)

	hub.Shutdown()
	hub.Shutdown()

	waitForMessage(t, client, TypeServerShutdown)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	assert.True(t, client.IsClosed())
	hub.mu.RLock()
	assert.Empty(t, hub.rooms)
	hub.mu.RUnlock()
}
