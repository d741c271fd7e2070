package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Prince-Tagadiya/MediClarify/internal/session"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type chatWSOutbound struct {
	Type        string              `json:"type"`
	Reply       *types.ChatTurn     `json:"reply,omitempty"`
	Suggestions types.SuggestionSet `json:"suggestions,omitempty"`
	Code        string              `json:"code,omitempty"`
	Message     string              `json:"message,omitempty"`
}

// handleChatWS serves the interactive chat surface. One connection maps
// to one session; turns arrive as {"type":"message","text":...} and the
// session's serialization guard keeps replies in send order.
func (h *Handler) handleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	sess, err := h.store.Get(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushChatWS(ctx, writeCh, chatWSOutbound{
		Type:        "ready",
		Suggestions: sess.Suggestions(),
	})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(chatWSPongWait))

		if in.Type != "message" || strings.TrimSpace(in.Text) == "" {
			pushChatWS(ctx, writeCh, chatWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "expected {\"type\":\"message\",\"text\":...}",
			})
			continue
		}

		reply, suggestions, err := sess.SendChat(ctx, in.Text)
		if err != nil {
			code := "internal"
			if errors.Is(err, session.ErrNoAnalysis) {
				code = "failed_precondition"
			}
			pushChatWS(ctx, writeCh, chatWSOutbound{
				Type:    "error",
				Code:    code,
				Message: err.Error(),
			})
			continue
		}

		pushChatWS(ctx, writeCh, chatWSOutbound{
			Type:        "reply",
			Reply:       &reply,
			Suggestions: suggestions,
		})
	}
}

func pushChatWS(ctx context.Context, ch chan<- chatWSOutbound, out chatWSOutbound) {
	select {
	case <-ctx.Done():
	case ch <- out:
	}
}
