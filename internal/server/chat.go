package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/finbuzz/finbuzz/internal/chat"
	"github.com/finbuzz/finbuzz/internal/model"
	"github.com/finbuzz/finbuzz/internal/session"
)

type chatSendRequest struct {
	Text string `json:"text"`
}

type chatHistoryResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}

func (s *Server) handleChatMessages(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, chatHistoryResponse{Messages: sess.Chat.Messages()})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req chatSendRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reply, err := sess.Chat.Send(r.Context(), req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Token auth already gates the endpoint.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsFrame is the envelope for chat socket traffic in both directions.
type wsFrame struct {
	Type    string             `json:"type"`
	Text    string             `json:"text,omitempty"`
	Message *model.ChatMessage `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// handleChatSocket runs the advisor chat over a WebSocket. On connect the
// full history replays; each inbound frame produces a user echo frame and a
// bot reply frame.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for _, msg := range sess.Chat.Messages() {
		m := msg
		if err := conn.WriteJSON(wsFrame{Type: "message", Message: &m}); err != nil {
			return
		}
	}

	for {
		var in wsFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("chat socket read failed", "error", err)
			}
			return
		}

		reply, err := sess.Chat.Send(r.Context(), in.Text)
		if err != nil {
			frame := wsFrame{Type: "error", Error: err.Error()}
			if errors.Is(err, chat.ErrBusy) {
				frame.Error = "A reply is still on the way. Please wait."
			}
			if werr := conn.WriteJSON(frame); werr != nil {
				return
			}
			continue
		}

		messages := sess.Chat.Messages()
		// The user's own message is the one before the reply.
		for i := range messages {
			if messages[i].ID == reply.ID-1 || messages[i].ID == reply.ID {
				m := messages[i]
				if err := conn.WriteJSON(wsFrame{Type: "message", Message: &m}); err != nil {
					return
				}
			}
		}
	}
}
