package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.QuizService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("module", "ws").Logger(),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one player's game over the socket.
// Every state change is pushed as a "state" message; answers additionally
// produce a "verdict" message before the delayed advance.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws_upgrade_failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	playerID := uuid.NewString()
	log := h.log.With().Str("player_id", playerID).Logger()
	log.Info().Msg("ws_connected")

	game := h.service.Join(ctx, playerID)
	defer h.service.Leave(ctx, playerID)

	send := make(chan outboundMessage[any], 16)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-send:
				if err := conn.WriteJSON(msg); err != nil {
					log.Warn().Err(err).Msg("ws_write_failed")
					return
				}
			case <-done:
				return
			}
		}
	}()

	// push never blocks past connection teardown, so timers and loads that
	// outlive the read loop are safe.
	push := func(typ string, payload any) {
		select {
		case send <- outboundMessage[any]{Type: typ, Payload: payload}:
		case <-done:
		}
	}

	load := func(id uuid.UUID) {
		go func() {
			res := game.Fetch(ctx, id)
			if snap, ok := game.Apply(res); ok {
				push("state", snap)
			}
		}()
	}

	// touch keeps the player's registration alive and reports false once the
	// game is gone.
	touch := func() bool {
		if _, err := h.service.Game(playerID); err != nil {
			log.Warn().Err(err).Msg("ws_game_lookup_failed")
			return false
		}
		return true
	}

	var timer *time.Timer
	push("state", game.Snapshot())
	load(game.Current().ID())

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if !touch() {
			push("error", errorPayload{Message: "game not found"})
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				push("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			verdict, ok := game.SelectAnswer(payload.Answer)
			if !ok {
				continue
			}
			push("verdict", verdict)
			push("state", game.Snapshot())
			id := game.Current().ID()
			timer = time.AfterFunc(h.service.AdvanceDelay(), func() {
				if snap, ok := game.Advance(id); ok {
					touch()
					push("state", snap)
				}
			})
		case "restart":
			if timer != nil {
				timer.Stop()
			}
			id := game.Restart()
			touch()
			push("state", game.Snapshot())
			load(id)
		case "state":
			push("state", game.Snapshot())
		default:
			push("error", errorPayload{Message: "unsupported message type"})
		}
	}

	if timer != nil {
		timer.Stop()
	}
	close(done)
	<-writerDone
	log.Info().Msg("ws_disconnected")
}
