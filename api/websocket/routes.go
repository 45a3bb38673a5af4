package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/buffer"
	ws "codeberg.org/skillsage/server/internal/websocket"
)

func RegisterRoutes(router *gin.RouterGroup, hub *ws.Hub, checkOrigin func(r *http.Request) bool, interviewStore InterviewStore, history ChatHistory, roomBuffer *buffer.RoomBuffer) {
	router.GET("/ws", WebSocketHandler(hub, newUpgrader(checkOrigin), interviewStore, history, roomBuffer))
}
