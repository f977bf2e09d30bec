package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/orchestrator"
)

// Socket serves the live chat over a websocket
type Socket struct {
	O *orchestrator.Orchestrator
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatSocketHandler upgrades the connection and echoes each text
// message through the dispatcher, one request per frame. Image flows
// stay on the multipart endpoints.
func (s Socket) ChatSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Warnw("websocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage || len(msg) == 0 {
			continue
		}

		resp, err := s.O.Process(r.Context(), orchestrator.Request{Query: string(msg)})
		if err != nil {
			resp = &orchestrator.Response{
				Intent:   orchestrator.IntentUnresolved,
				Reply:    "Sorry, something went wrong handling that message.",
				Degraded: true,
			}
		}
		if err := conn.WriteJSON(resp); err != nil {
			zap.S().Warnw("websocket write failed", "error", err)
			return
		}
	}
}
