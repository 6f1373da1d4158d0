package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	ws "github.com/dalil-mashhad/dalil-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LiveController streams review events to the admin dashboard.
type LiveController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewLiveController(hub *ws.Hub, allowedOrigins []string) *LiveController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &LiveController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
	}
}

// Reviews upgrades an authenticated staff session to the review event stream.
// GET /api/v1/admin/reviews/live
func (ctrl *LiveController) Reviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	// Upgrade writes its own error response.
	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Failed to upgrade to WebSocket", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, userID)
	ctrl.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
	})
}
