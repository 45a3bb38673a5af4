//go:build ignore

// joins an interview room and sends a chat message and a ping:
// go run scripts/test_websocket.go <interview_id> <token>
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type        string          `json:"type"`
	InterviewID string          `json:"interview_id"`
	UserID      string          `json:"user_id,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Sequence    uint64          `json:"seq,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/test_websocket.go <interview_id> <token>")
		os.Exit(1)
	}

	interviewID := os.Args[1]
	token := os.Args[2]

	host := os.Getenv("WS_HOST")
	if host == "" {
		host = "localhost:8080"
	}

	u := url.URL{Scheme: "ws", Host: host, Path: "/api/ws"}
	q := u.Query()
	q.Set("interview_id", interviewID)
	q.Set("token", token)
	u.RawQuery = q.Encode()

	fmt.Printf("Connecting to %s\n", u.String())

	c, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("dial: %v (status %d)", err, resp.StatusCode)
		}
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("Connected")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var msg Message
			if err := c.ReadJSON(&msg); err != nil {
				log.Println("read:", err)
				return
			}
			fmt.Printf("<- [%d] %s %s\n", msg.Sequence, msg.Type, msg.Payload)
		}
	}()

	time.Sleep(500 * time.Millisecond)

	send := func(msgType string, payload any) {
		raw, _ := json.Marshal(payload)
		msg := Message{Type: msgType, InterviewID: interviewID, Timestamp: time.Now(), Payload: raw}
		if err := c.WriteJSON(msg); err != nil {
			log.Println("write:", err)
			return
		}
		fmt.Printf("-> %s\n", msgType)
	}

	send("chat_message", map[string]string{"content": "hello from the smoke test"})
	send("ping", nil)

	select {
	case <-done:
	case <-interrupt:
		fmt.Println("Leaving room")
		send("leave", nil)
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
