package ws

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"trivia-dialogue-service/internal/app"
	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/engine"
)

// Handler exposes the turn service over a websocket. One connection carries
// one conversation: each inbound frame is a turn, each outbound frame the
// engine's response; a turn that ends the conversation closes the socket.
type Handler struct {
	service  *app.TurnService
	upgrader websocket.Upgrader
}

func NewHandler(service *app.TurnService) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type turnFrame struct {
	Action        string            `json:"action"`
	Slots         map[string]string `json:"slots,omitempty"`
	Capabilities  []string          `json:"capabilities,omitempty"`
	ExecutionID   string            `json:"executionId,omitempty"`
	ReturningUser bool              `json:"returningUser,omitempty"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// ServeWS upgrades the request and runs the per-connection turn loop. The
// session id and locale come from the query string; a missing session id gets
// a fresh one.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		http.Error(w, "missing locale", http.StatusBadRequest)
		return
	}
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var frame turnFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Action == "" {
			if err := conn.WriteJSON(errorFrame{Error: "missing action"}); err != nil {
				return
			}
			continue
		}

		resp, err := h.service.HandleTurn(r.Context(), sessionID, engine.Request{
			Action:        domain.Action(frame.Action),
			Locale:        locale,
			Slots:         frame.Slots,
			Capabilities:  frame.Capabilities,
			ExecutionID:   frame.ExecutionID,
			ReturningUser: frame.ReturningUser,
		})
		if err != nil {
			log.Printf("ws turn %s failed [session %s]: %v", frame.Action, sessionID, err)
			if err := conn.WriteJSON(errorFrame{Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
		if resp.EndConversation {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation ended"))
			return
		}
	}
}
