package web

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 40 * time.Second

// HandlerWsTraverse streams one JSON message per visited node and
// closes the socket when the pass is done. The client going away
// simply stops the lazy traversal mid-walk.
func HandlerWsTraverse(w http.ResponseWriter, r *http.Request) {
	target, err := targetFromRequest(r)
	if err != nil {
		webError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for res := range traverse.Traverse(ServerGraph, ServerRegistry, target) {
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return
		}
		if err := conn.WriteJSON(resultToJson(res)); err != nil {
			log.Printf("[web] ws write error: %v", err)
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "traversal complete"))
}

func webError(w http.ResponseWriter, err error) {
	log.Printf("[web] %v", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}
