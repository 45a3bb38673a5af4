package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/internal/logger"
)

// creates a new websocket client connection
func NewClient(id, interviewID, userID, displayName, role, ipAddress string, chatHistory []ChatHistoryItem, codeState CodeStatePayload, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:                    id,
		InterviewID:           interviewID,
		UserID:                userID,
		DisplayName:           displayName,
		Role:                  role,
		IPAddress:             ipAddress,
		InitialChatHistory:    chatHistory,
		InitialCodeState:      codeState,
		conn:                  conn,
		hub:                   hub,
		send:                  make(chan []byte, 256),
		codeUpdateTimestamps:  make([]time.Time, 0, maxCodeUpdatesPerSecond),
		chatMessageTimestamps: make([]time.Time, 0, maxChatMessagesPerMinute),
	}
}

// reads messages from the websocket connection to the hub for processing
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket error",
					"client_id", c.ID,
					"interview_id", c.InterviewID,
					"error", err,
				)
			}

			break
		}

		var msg Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			logger.Warn("failed to unmarshal message",
				"client_id", c.ID,
				"interview_id", c.InterviewID,
				"error", err,
			)

			c.SendError("bad_request", "invalid message format", err.Error())
			continue
		}

		// leaving ends the read loop, which unregisters the client
		if msg.Type == TypeLeave {
			logger.Debug("client left room", "client_id", c.ID, "interview_id", c.InterviewID)
			break
		}

		// identity always comes from the connection, never from the payload
		msg.InterviewID = c.InterviewID
		msg.ClientID = c.ID
		msg.UserID = c.UserID
		msg.Timestamp = time.Now()

		c.hub.Broadcast <- &msg
	}
}

// writes messages from the hub to the websocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck,gosec // G104: close message
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sends a message to the client
func (c *Client) Send(msg *Message) (err error) {
	// recover from panic if channel is closed
	defer func() {
		if r := recover(); r != nil {
			err = ErrConnectionClosed
		}
	}()

	c.mu.RLock()

	if c.closed {
		c.mu.RUnlock()
		return ErrConnectionClosed
	}

	c.mu.RUnlock()

	messageBytes, marshalErr := json.Marshal(msg)
	if marshalErr != nil {
		return marshalErr
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		// channel is full, tell the client directly before closing
		c.sendBufferOverflowError()
		c.Close()
		return ErrConnectionClosed
	}
}

// sends buffer overflow error directly to the websocket (bypassing the full channel)
func (c *Client) sendBufferOverflowError() {
	if c.conn == nil {
		return
	}

	errorMsg, err := NewMessage(TypeError, c.InterviewID, c.UserID, errors.ErrorResponse{
		Error:   "buffer_overflow",
		Message: "message buffer full, connection will be closed",
		Details: "too many messages queued, please reconnect",
	})
	if err != nil {
		return
	}

	errorBytes, err := json.Marshal(errorMsg)
	if err != nil {
		return
	}

	c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck,gosec
	c.conn.WriteMessage(websocket.TextMessage, errorBytes)   //nolint:errcheck,gosec
}

// sends an error message to the client
func (c *Client) SendError(code, message, details string) {
	if details != "" {
		details = sanitizeErrorString(details)
	}

	errorMsg, err := NewMessage(TypeError, c.InterviewID, c.UserID, errors.ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
	if err != nil {
		logger.ErrorErr(err, "failed to create error message",
			"client_id", c.ID,
			"interview_id", c.InterviewID,
			"error_code", code,
		)
		return
	}

	c.Send(errorMsg) //nolint:errcheck,gosec // G104: best effort error notification
}

// closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// checks if the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.closed
}

func (c *Client) IsRecruiter() bool {
	return c.Role == RoleRecruiter
}

func (c *Client) IsCandidate() bool {
	return c.Role == RoleCandidate
}

// checks if the client can send a code update
func (c *Client) checkCodeUpdateRateLimit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed, timestamps := allowInWindow(c.codeUpdateTimestamps, time.Second, maxCodeUpdatesPerSecond)
	c.codeUpdateTimestamps = timestamps
	return allowed
}

// checks if the client can send a chat message
func (c *Client) checkChatRateLimit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed, timestamps := allowInWindow(c.chatMessageTimestamps, time.Minute, maxChatMessagesPerMinute)
	c.chatMessageTimestamps = timestamps
	return allowed
}

// sliding window check: drops timestamps older than window and records now
// when fewer than limit remain
func allowInWindow(timestamps []time.Time, window time.Duration, limit int) (bool, []time.Time) {
	now := time.Now()
	cutoff := now.Add(-window)

	valid := make([]time.Time, 0, limit)
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= limit {
		return false, valid
	}

	return true, append(valid, now)
}
