package http

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
)

//go:embed static/index.html
var indexHTML []byte

// NewRouter serves the quiz page, its WebSocket and a health probe.
func NewRouter(service *app.QuizService, log zerolog.Logger) http.Handler {
	ws := NewWSHandler(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Active-Games", strconv.Itoa(service.ActiveGames()))
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	return mux
}
