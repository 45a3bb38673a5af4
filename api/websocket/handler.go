package websocket

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/logger"
	ws "codeberg.org/skillsage/server/internal/websocket"
)

func newUpgrader(checkOrigin func(r *http.Request) bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
}

// handles WebSocket connections to interview rooms
func WebSocketHandler(hub *ws.Hub, upgrader *websocket.Upgrader, interviewStore InterviewStore, history ChatHistory, roomBuffer *buffer.RoomBuffer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ConnectParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.BadRequest(c, "invalid parameters", err)
			return
		}

		claims, err := auth.ValidateJWT(params.Token)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			return
		}

		// use timeout context for DB operations to prevent hanging
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		interview, err := interviewStore.FindByID(ctx, params.InterviewID)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		if !interview.IsParticipant(claims.UserID) {
			errors.Forbidden(c, "you are not a participant of this interview")
			return
		}

		if !interview.Status.IsOpen() {
			errors.InvalidOperation(c, "interview is "+string(interview.Status))
			return
		}

		role := ws.RoleCandidate
		displayName := interview.Candidate.FullName()
		if claims.UserID == interview.RecruiterID {
			role = ws.RoleRecruiter
			displayName = interview.Recruiter.FullName()
		}

		ipAddress := c.ClientIP()
		if canAccept, reason := hub.CanAcceptConnection(claims.UserID, ipAddress); !canAccept {
			errors.TooManyRequests(c, reason)
			return
		}

		if role == ws.RoleCandidate {
			started, err := interviewStore.StartIfScheduled(ctx, interview.ID)
			if err != nil {
				logger.Warn("failed to start interview",
					"interview_id", interview.ID,
					"error", err,
				)
			} else if started {
				logger.Info("interview started", "interview_id", interview.ID)
			}
		}

		chatHistory := loadChatHistory(ctx, history, roomBuffer, interview.ID)
		codeState := loadCodeState(ctx, roomBuffer, interview.ID)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// the upgrader has already written the error response
			logger.ErrorErr(err, "failed to upgrade connection",
				"interview_id", interview.ID,
				"ip", ipAddress,
			)
			return
		}

		// track IP connection only after successful upgrade
		hub.TrackIPConnection(ipAddress)

		clientID := ws.GenerateClientID()
		client := ws.NewClient(clientID, interview.ID, claims.UserID, displayName, role, ipAddress, chatHistory, codeState, conn, hub)

		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()

		logger.Info("websocket connection established",
			"client_id", clientID,
			"interview_id", interview.ID,
			"role", role,
			"user_id", claims.UserID,
			"ip", ipAddress,
		)
	}
}

// returns persisted chat plus messages still in the buffer, oldest first
func loadChatHistory(ctx context.Context, history ChatHistory, roomBuffer *buffer.RoomBuffer, interviewID string) []ws.ChatHistoryItem {
	items := make([]ws.ChatHistoryItem, 0, chatHistoryLimit)
	seen := make(map[string]struct{})

	// buffer first, so a message flushed in between is seen twice rather than never
	pending, err := roomBuffer.PendingMessages(ctx, interviewID)
	if err != nil {
		logger.Warn("failed to fetch buffered chat",
			"interview_id", interviewID,
			"error", err,
		)
	}

	messages, err := history.Recent(ctx, interviewID, chatHistoryLimit)
	if err != nil {
		logger.Warn("failed to fetch chat history",
			"interview_id", interviewID,
			"error", err,
		)
	}

	for _, msg := range messages {
		if msg.ID != "" {
			seen[msg.ID] = struct{}{}
		}

		senderID := ""
		if msg.SenderID != nil {
			senderID = *msg.SenderID
		}

		items = append(items, ws.ChatHistoryItem{
			SenderID:   senderID,
			SenderName: msg.SenderName,
			SenderRole: msg.SenderRole,
			Content:    msg.Content,
			Timestamp:  msg.SentAt.UnixMilli(),
		})
	}

	for _, msg := range pending {
		if _, dup := seen[msg.ID]; dup && msg.ID != "" {
			continue
		}

		items = append(items, ws.ChatHistoryItem{
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			SenderRole: msg.SenderRole,
			Content:    msg.Content,
			Timestamp:  msg.SentAt.UnixMilli(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})

	if len(items) > chatHistoryLimit {
		items = items[len(items)-chatHistoryLimit:]
	}

	return items
}

// returns the code of every question and the question on screen
func loadCodeState(ctx context.Context, roomBuffer *buffer.RoomBuffer, interviewID string) ws.CodeStatePayload {
	state := ws.CodeStatePayload{CodeUpdates: map[string]ws.CodeUpdatePayload{}}

	states, err := roomBuffer.CodeStates(ctx, interviewID)
	if err != nil {
		logger.Warn("failed to fetch code state",
			"interview_id", interviewID,
			"error", err,
		)
	}

	for questionID, code := range states {
		state.CodeUpdates[questionID] = ws.CodeUpdatePayload{
			QuestionID: questionID,
			Code:       code.Code,
			Language:   code.Language,
		}
	}

	index, err := roomBuffer.CurrentQuestion(ctx, interviewID)
	if err != nil {
		logger.Warn("failed to fetch current question",
			"interview_id", interviewID,
			"error", err,
		)
	}

	state.CurrentQuestionIndex = index
	for questionID, update := range state.CodeUpdates {
		update.CurrentQuestionIndex = index
		state.CodeUpdates[questionID] = update
	}

	return state
}
