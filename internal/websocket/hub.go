package websocket

import (
	"time"

	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/metrics"
)

func NewHub() *Hub {
	return &Hub{
		rooms:           make(map[string]map[string]*Client),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		Broadcast:       make(chan *Message, 256),
		handlers:        make(map[string]MessageHandler),
		shutdown:        make(chan struct{}),
		userConnections: make(map[string]int),
		ipConnections:   make(map[string]int),
		roomSequences:   make(map[string]uint64),
	}
}

// registers a handler for a specific message type
func (h *Hub) RegisterHandler(messageType string, handler MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[messageType] = handler
}

// sets callback to be called when the last client of a room leaves
func (h *Hub) OnRoomEmpty(callback func(interviewID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRoomEmpty = callback
}

// starts the hub's main loop
func (h *Hub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.handleMessage(message)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// adds a client to its room, sends it the room state and announces it to the others
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.InterviewID] == nil {
		h.rooms[client.InterviewID] = make(map[string]*Client)
	}

	h.rooms[client.InterviewID][client.ID] = client

	if client.UserID != "" {
		h.userConnections[client.UserID]++
	}

	metrics.WebSocketConnections.Inc()

	logger.Info("client registered",
		"client_id", client.ID,
		"interview_id", client.InterviewID,
		"role", client.Role,
		"user_id", client.UserID,
	)

	participants := make([]RoomParticipant, 0, len(h.rooms[client.InterviewID]))

	for _, c := range h.rooms[client.InterviewID] {
		participants = append(participants, RoomParticipant{
			ClientID:    c.ID,
			UserID:      c.UserID,
			DisplayName: c.DisplayName,
			Role:        c.Role,
		})
	}

	chatHistory := client.InitialChatHistory
	if chatHistory == nil {
		chatHistory = []ChatHistoryItem{}
	}

	codeState := client.InitialCodeState
	if codeState.CodeUpdates == nil {
		codeState.CodeUpdates = map[string]CodeUpdatePayload{}
	}

	roomStateMsg, err := NewMessage(TypeRoomState, client.InterviewID, client.UserID, RoomStatePayload{
		ClientID:     client.ID,
		YourRole:     client.Role,
		Participants: participants,
		ChatHistory:  chatHistory,
		CodeState:    codeState,
	})
	if err == nil {
		if sendErr := client.Send(roomStateMsg); sendErr != nil {
			logger.ErrorErr(sendErr, "failed to send room state",
				"client_id", client.ID,
				"interview_id", client.InterviewID,
			)
		}
	}

	userJoinedMsg, err := NewMessage(TypeUserJoined, client.InterviewID, client.UserID, UserJoinedPayload{
		ClientID:    client.ID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
		Role:        client.Role,
	})
	if err == nil {
		h.broadcastToRoom(client.InterviewID, userJoinedMsg, client.ID)
	}
}

// removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	// capture callback under lock
	emptyCallback := h.onRoomEmpty

	roomClients, exists := h.rooms[client.InterviewID]
	if !exists {
		h.mu.Unlock()
		return
	}

	if _, exists := roomClients[client.ID]; !exists {
		h.mu.Unlock()
		return
	}

	delete(roomClients, client.ID)
	client.Close()
	h.untrackClient(client)
	metrics.WebSocketConnections.Dec()

	logger.Info("client unregistered",
		"client_id", client.ID,
		"interview_id", client.InterviewID,
	)

	roomEmpty := len(roomClients) == 0

	if roomEmpty {
		delete(h.rooms, client.InterviewID)
		delete(h.roomSequences, client.InterviewID)

		logger.Info("room has no more clients, removed",
			"interview_id", client.InterviewID,
		)
	} else {
		userLeftMsg, err := NewMessage(TypeUserLeft, client.InterviewID, client.UserID, UserLeftPayload{
			ClientID:    client.ID,
			UserID:      client.UserID,
			DisplayName: client.DisplayName,
		})
		if err == nil {
			h.broadcastToRoom(client.InterviewID, userLeftMsg, "")
		}
	}

	h.mu.Unlock()

	// callback runs outside the lock (may do DB operations)
	if roomEmpty && emptyCallback != nil {
		go emptyCallback(client.InterviewID)
	}
}

// decrements connection tracking for a client (must be called with lock held)
func (h *Hub) untrackClient(client *Client) {
	if client.UserID != "" {
		h.userConnections[client.UserID]--

		if h.userConnections[client.UserID] <= 0 {
			delete(h.userConnections, client.UserID)
		}
	}

	if client.IPAddress != "" {
		h.ipConnections[client.IPAddress]--

		if h.ipConnections[client.IPAddress] <= 0 {
			delete(h.ipConnections, client.IPAddress)
		}
	}
}

// processes an incoming message
func (h *Hub) handleMessage(msg *Message) {
	h.mu.RLock()

	roomClients, exists := h.rooms[msg.InterviewID]
	if !exists {
		h.mu.RUnlock()
		logger.Warn("room not found for message",
			"interview_id", msg.InterviewID,
			"message_type", msg.Type,
		)
		return
	}

	sender, exists := roomClients[msg.ClientID]
	handler, handlerExists := h.handlers[msg.Type]
	h.mu.RUnlock()

	if !exists {
		logger.Warn("sender client not found for message",
			"client_id", msg.ClientID,
			"interview_id", msg.InterviewID,
			"message_type", msg.Type,
		)
		return
	}

	if !handlerExists {
		logger.Warn("unhandled message type received",
			"message_type", msg.Type,
			"client_id", sender.ID,
			"interview_id", msg.InterviewID,
		)

		sender.SendError("bad_request", "unsupported message type", "message type not recognized")
		return
	}

	metrics.WebSocketMessagesTotal.WithLabelValues(msg.Type).Inc()

	// run handler asynchronously to avoid blocking the hub
	go func() {
		if err := handler(h, sender, msg); err != nil {
			logger.ErrorErr(err, "handler error",
				"message_type", msg.Type,
				"client_id", sender.ID,
				"interview_id", msg.InterviewID,
			)
		}
	}()
}

// sends a message to all clients in a room
func (h *Hub) BroadcastToRoom(interviewID string, msg *Message, excludeClientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastToRoom(interviewID, msg, excludeClientID)
}

// the internal broadcast function (must be called with lock held)
func (h *Hub) broadcastToRoom(interviewID string, msg *Message, excludeClientID string) {
	roomClients, exists := h.rooms[interviewID]
	if !exists {
		return
	}

	h.stamp(interviewID, msg)

	for clientID, client := range roomClients {
		if clientID == excludeClientID {
			continue
		}

		if err := client.Send(msg); err != nil {
			logger.ErrorErr(err, "failed to send message to client",
				"client_id", clientID,
				"interview_id", interviewID,
			)
		}
	}
}

// sends a message to the clients of a room holding the given role
func (h *Hub) SendToRole(interviewID, role string, msg *Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomClients, exists := h.rooms[interviewID]
	if !exists {
		return 0
	}

	h.stamp(interviewID, msg)

	delivered := 0
	for clientID, client := range roomClients {
		if client.Role != role {
			continue
		}

		if err := client.Send(msg); err != nil {
			logger.ErrorErr(err, "failed to send message to client",
				"client_id", clientID,
				"interview_id", interviewID,
			)
			continue
		}
		delivered++
	}

	return delivered
}

// sends a message to a single client of a room
func (h *Hub) SendToClient(interviewID, clientID string, msg *Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomClients, exists := h.rooms[interviewID]
	if !exists {
		return ErrRoomNotFound
	}

	client, exists := roomClients[clientID]
	if !exists {
		return ErrClientNotFound
	}

	h.stamp(interviewID, msg)
	return client.Send(msg)
}

// assigns the next sequence number of the room (must be called with lock held)
func (h *Hub) stamp(interviewID string, msg *Message) {
	h.roomSequences[interviewID]++
	msg.Sequence = h.roomSequences[interviewID]
}

func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)
	})
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()

	logger.Info("notifying clients of server shutdown")

	for interviewID, roomClients := range h.rooms {
		shutdownMsg, err := NewMessage(TypeServerShutdown, interviewID, "", ServerShutdownPayload{
			Reason: "server is shutting down for maintenance",
		})
		if err != nil {
			logger.ErrorErr(err, "failed to create shutdown message")
			continue
		}

		for _, client := range roomClients {
			if err := client.Send(shutdownMsg); err != nil {
				logger.ErrorErr(err, "failed to send shutdown notification",
					"client_id", client.ID,
					"interview_id", interviewID,
				)
			}
		}
	}

	h.mu.Unlock()

	// give clients time to receive the shutdown message
	time.Sleep(500 * time.Millisecond)

	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("closing all websocket connections")

	for interviewID, roomClients := range h.rooms {
		for clientID, client := range roomClients {
			client.Close()
			metrics.WebSocketConnections.Dec()
			logger.Debug("closed client",
				"client_id", clientID,
				"interview_id", interviewID,
			)
		}
	}

	h.rooms = make(map[string]map[string]*Client)
	h.userConnections = make(map[string]int)
	h.ipConnections = make(map[string]int)
	h.roomSequences = make(map[string]uint64)
}

// checks if a new connection should be allowed based on limits
func (h *Hub) CanAcceptConnection(userID, ipAddress string) (bool, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userID != "" && h.userConnections[userID] >= maxConnectionsPerUser {
		return false, "Maximum connections per user exceeded"
	}

	if h.ipConnections[ipAddress] >= maxConnectionsPerIP {
		return false, "Maximum connections per IP address exceeded"
	}

	return true, ""
}

// increments the connection count for an IP address
func (h *Hub) TrackIPConnection(ipAddress string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ipConnections[ipAddress]++
}

// decrements the connection count for an IP address
func (h *Hub) UntrackIPConnection(ipAddress string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ipConnections[ipAddress]--

	if h.ipConnections[ipAddress] <= 0 {
		delete(h.ipConnections, ipAddress)
	}
}

// broadcasts room_ended to all clients of a room and closes their connections
func (h *Hub) EndRoom(interviewID, reason string) {
	h.mu.Lock()

	roomClients, exists := h.rooms[interviewID]
	if !exists {
		h.mu.Unlock()
		return
	}

	emptyCallback := h.onRoomEmpty

	logger.Info("ending room, notifying clients",
		"interview_id", interviewID,
		"client_count", len(roomClients),
	)

	roomEndedMsg, err := NewMessage(TypeRoomEnded, interviewID, "", RoomEndedPayload{
		Reason: reason,
	})
	if err != nil {
		logger.ErrorErr(err, "failed to create room_ended message",
			"interview_id", interviewID,
		)
		h.mu.Unlock()
		return
	}

	h.broadcastToRoom(interviewID, roomEndedMsg, "")

	h.mu.Unlock()

	// give clients time to receive the message
	time.Sleep(100 * time.Millisecond)

	h.mu.Lock()

	roomClients, exists = h.rooms[interviewID]
	if !exists {
		h.mu.Unlock()
		return
	}

	for clientID, client := range roomClients {
		h.untrackClient(client)
		client.Close()
		metrics.WebSocketConnections.Dec()
		logger.Debug("closed client due to room end",
			"client_id", clientID,
			"interview_id", interviewID,
		)
	}

	delete(h.rooms, interviewID)
	delete(h.roomSequences, interviewID)

	h.mu.Unlock()

	logger.Info("room ended and removed",
		"interview_id", interviewID,
	)

	if emptyCallback != nil {
		emptyCallback(interviewID)
	}
}
