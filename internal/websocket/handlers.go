package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/metrics"
)

const handlerTimeout = 5 * time.Second

// handles chat messages
func ChatHandler(roomBuffer *buffer.RoomBuffer) MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		if !client.checkChatRateLimit() {
			client.SendError("too_many_requests", "too many chat messages. maximum 20 per minute.", "")
			return ErrRateLimitExceeded
		}

		var payload ChatMessagePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse chat message", err.Error())
			return err
		}

		if len([]rune(payload.Content)) > maxChatMessageSize {
			client.SendError("bad_request", "message exceeds maximum size. maximum 5000 characters allowed.", "")
			return ErrMessageTooLarge
		}

		content := strings.TrimSpace(payload.Content)
		if content == "" {
			client.SendError("bad_request", "message cannot be empty", "")
			return ErrEmptyMessage
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := roomBuffer.AddMessage(ctx, &buffer.BufferedChatMessage{
			InterviewID: client.InterviewID,
			SenderID:    client.UserID,
			SenderName:  client.DisplayName,
			SenderRole:  client.Role,
			Content:     content,
		}); err != nil {
			logger.ErrorErr(err, "failed to buffer chat message",
				"client_id", client.ID,
				"interview_id", client.InterviewID,
			)
			// broadcast anyway, live chat matters more than history
		}

		broadcastMsg, err := NewMessage(TypeChatMessage, client.InterviewID, client.UserID, ChatMessagePayload{
			Content:    content,
			SenderID:   client.UserID,
			SenderName: client.DisplayName,
			SenderRole: client.Role,
		})
		if err != nil {
			return err
		}

		// includes the sender
		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, "")

		return nil
	}
}

// handles timer messages from the recruiter
func TimerHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		if !client.IsRecruiter() {
			client.SendError("forbidden", "only the recruiter can control the timer", "")
			return ErrForbidden
		}

		var payload TimerPayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse timer", err.Error())
			return err
		}

		switch payload.Status {
		case TimerStarted, TimerPaused, TimerCompleted:
		default:
			client.SendError("validation_error", "timer status must be STARTED, PAUSED or COMPLETED", "")
			return ErrInvalidMessage
		}

		if payload.RemainingTime < 0 {
			payload.RemainingTime = 0
		}

		broadcastMsg, err := NewMessage(TypeTimer, client.InterviewID, client.UserID, payload)
		if err != nil {
			return err
		}

		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, "")

		logger.Debug("timer updated",
			"interview_id", client.InterviewID,
			"status", payload.Status,
			"remaining_time", payload.RemainingTime,
		)

		return nil
	}
}

// relays WebRTC offers and answers
func SignalHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload SignalPayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse signal", err.Error())
			return err
		}

		if isEmptyRaw(payload.Signal) {
			client.SendError("validation_error", "signal is required", "")
			return ErrInvalidMessage
		}

		payload.From = client.ID
		return relay(hub, client, TypeSignal, payload.To, payload)
	}
}

// relays WebRTC ICE candidates
func ICECandidateHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload ICECandidatePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse ice candidate", err.Error())
			return err
		}

		if isEmptyRaw(payload.Candidate) {
			client.SendError("validation_error", "candidate is required", "")
			return ErrInvalidMessage
		}

		payload.From = client.ID
		return relay(hub, client, TypeICECandidate, payload.To, payload)
	}
}

// true for a missing field or an explicit null
func isEmptyRaw(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// sends a payload to one peer when to is set, otherwise to everyone but the sender
func relay(hub *Hub, client *Client, msgType, to string, payload any) error {
	relayMsg, err := NewMessage(msgType, client.InterviewID, client.UserID, payload)
	if err != nil {
		return err
	}

	if to == "" {
		hub.BroadcastToRoom(client.InterviewID, relayMsg, client.ID)
		return nil
	}

	if to == client.ID {
		client.SendError("bad_request", "cannot signal yourself", "")
		return ErrInvalidMessage
	}

	if err := hub.SendToClient(client.InterviewID, to, relayMsg); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			client.SendError("not_found", "peer is not connected", "")
		}
		return err
	}

	return nil
}

// handles code updates from the candidate
func CodeUpdateHandler(roomBuffer *buffer.RoomBuffer, detector *integrity.Detector) MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		if !client.checkCodeUpdateRateLimit() {
			client.SendError("too_many_requests", "too many code updates. maximum 10 per second.", "")
			return ErrRateLimitExceeded
		}

		if !client.IsCandidate() {
			client.SendError("forbidden", "only the candidate can edit code", "")
			return ErrForbidden
		}

		var payload CodeUpdatePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse code update", err.Error())
			return err
		}

		if payload.QuestionID == "" {
			client.SendError("validation_error", "question_id is required", "")
			return ErrInvalidMessage
		}

		if len(payload.Code) > maxCodeSize {
			client.SendError("bad_request", "code exceeds maximum size. maximum 100 KB allowed.", "")
			return ErrCodeTooLarge
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		previousCode := ""
		if previous, err := roomBuffer.GetCode(ctx, client.InterviewID, payload.QuestionID); err != nil {
			logger.ErrorErr(err, "failed to read previous code", "interview_id", client.InterviewID)
		} else if previous != nil {
			previousCode = previous.Code
			if payload.Language == "" {
				payload.Language = previous.Language
			}
		}

		if err := roomBuffer.SetCode(ctx, client.InterviewID, buffer.CodeState{
			QuestionID: payload.QuestionID,
			Code:       payload.Code,
			Language:   payload.Language,
		}); err != nil {
			logger.ErrorErr(err, "failed to save code",
				"client_id", client.ID,
				"interview_id", client.InterviewID,
			)
		}

		if err := roomBuffer.SetCurrentQuestion(ctx, client.InterviewID, payload.CurrentQuestionIndex); err != nil {
			logger.ErrorErr(err, "failed to save current question", "interview_id", client.InterviewID)
		}

		if detector != nil {
			inspectPaste(ctx, hub, detector, client, payload.QuestionID, previousCode, payload.Code)
		}

		broadcastMsg, err := NewMessage(TypeCodeUpdate, client.InterviewID, client.UserID, payload)
		if err != nil {
			return err
		}

		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, client.ID)

		return nil
	}
}

// records large insertions and tells the recruiter about them
func inspectPaste(ctx context.Context, hub *Hub, detector *integrity.Detector, client *Client, questionID, previousCode, newCode string) {
	event, err := detector.Inspect(ctx, integrity.CodeChange{
		InterviewID:  client.InterviewID,
		QuestionID:   questionID,
		UserID:       client.UserID,
		PreviousCode: previousCode,
		NewCode:      newCode,
	})
	if err != nil {
		logger.ErrorErr(err, "failed to record paste event", "interview_id", client.InterviewID)
	}

	if event == nil {
		return
	}

	metrics.PasteEventsTotal.Inc()

	logger.Info("paste detected",
		"interview_id", client.InterviewID,
		"question_id", questionID,
		"added_chars", event.AddedChars,
		"added_lines", event.AddedLines,
	)

	notice, err := NewMessage(TypePasteDetected, client.InterviewID, client.UserID, PasteDetectedPayload{
		QuestionID: event.QuestionID,
		UserID:     event.UserID,
		AddedChars: event.AddedChars,
		AddedLines: event.AddedLines,
		DetectedAt: event.DetectedAt,
	})
	if err != nil {
		return
	}

	hub.SendToRole(client.InterviewID, RoleRecruiter, notice)
}

// handles the question on screen changing
func QuestionChangeHandler(roomBuffer *buffer.RoomBuffer) MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload QuestionChangePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse question change", err.Error())
			return err
		}

		if payload.CurrentQuestionIndex < 0 {
			client.SendError("validation_error", "current_question_index cannot be negative", "")
			return ErrInvalidMessage
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := roomBuffer.SetCurrentQuestion(ctx, client.InterviewID, payload.CurrentQuestionIndex); err != nil {
			logger.ErrorErr(err, "failed to save current question", "interview_id", client.InterviewID)
		}

		broadcastMsg, err := NewMessage(TypeQuestionChange, client.InterviewID, client.UserID, payload)
		if err != nil {
			return err
		}

		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, "")

		return nil
	}
}

// handles the language of a question changing
func LanguageChangeHandler(roomBuffer *buffer.RoomBuffer) MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload LanguageChangePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse language change", err.Error())
			return err
		}

		payload.Language = strings.TrimSpace(payload.Language)
		if payload.QuestionID == "" || payload.Language == "" {
			client.SendError("validation_error", "question_id and language are required", "")
			return ErrInvalidMessage
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := roomBuffer.SetLanguage(ctx, client.InterviewID, payload.QuestionID, payload.Language); err != nil {
			logger.ErrorErr(err, "failed to save language", "interview_id", client.InterviewID)
		}

		broadcastMsg, err := NewMessage(TypeLanguageChange, client.InterviewID, client.UserID, payload)
		if err != nil {
			return err
		}

		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, "")

		return nil
	}
}

// handles screen share status changes
func ScreenShareHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload ScreenSharePayload
		if err := msg.UnmarshalPayload(&payload); err != nil {
			client.SendError("validation_error", "failed to parse screen share status", err.Error())
			return err
		}

		payload.From = client.ID

		broadcastMsg, err := NewMessage(TypeScreenShareStatus, client.InterviewID, client.UserID, payload)
		if err != nil {
			return err
		}

		hub.BroadcastToRoom(client.InterviewID, broadcastMsg, client.ID)

		return nil
	}
}

// handles ping messages from clients (keep-alive)
func PingHandler() MessageHandler {
	return func(_ *Hub, client *Client, _ *Message) error {
		pongMsg, err := NewMessage(TypePong, client.InterviewID, client.UserID, nil)
		if err != nil {
			return err
		}
		client.Send(pongMsg) //nolint:errcheck,gosec // best-effort pong
		return nil
	}
}

// registers every client message handler on the hub
func RegisterHandlers(hub *Hub, roomBuffer *buffer.RoomBuffer, detector *integrity.Detector) {
	hub.RegisterHandler(TypeChatMessage, ChatHandler(roomBuffer))
	hub.RegisterHandler(TypeTimer, TimerHandler())
	hub.RegisterHandler(TypeSignal, SignalHandler())
	hub.RegisterHandler(TypeICECandidate, ICECandidateHandler())
	hub.RegisterHandler(TypeCodeUpdate, CodeUpdateHandler(roomBuffer, detector))
	hub.RegisterHandler(TypeQuestionChange, QuestionChangeHandler(roomBuffer))
	hub.RegisterHandler(TypeLanguageChange, LanguageChangeHandler(roomBuffer))
	hub.RegisterHandler(TypeScreenShareStatus, ScreenShareHandler())
	hub.RegisterHandler(TypePing, PingHandler())
}
