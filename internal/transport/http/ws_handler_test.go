package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
	infraredis "trivia-quiz/internal/infra/redis"
	"trivia-quiz/internal/shuffle"
	"trivia-quiz/internal/trivia"
)

func TestWebSocketAnswerFlow(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(memory.NewStaticProvider(sampleQuiz())), zerolog.Nop()))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	// Expect loading first, then the first question.
	if snap := readState(t, conn); snap.Phase != domain.PhaseLoading {
		t.Fatalf("expected loading state, got %s", snap.Phase)
	}
	snap := readState(t, conn)
	if snap.Phase != domain.PhaseInProgress || snap.Total != 2 {
		t.Fatalf("expected first question of 2, got %+v", snap)
	}

	sendAnswer(t, conn, "4")

	var verdict domain.Verdict
	readInto(t, conn, "verdict", &verdict)
	if !verdict.Correct || verdict.Score != 1 {
		t.Fatalf("expected correct verdict, got %+v", verdict)
	}
	if snap := readState(t, conn); !snap.Answered || snap.Verdict == nil {
		t.Fatalf("expected answered state with verdict, got %+v", snap)
	}

	// A second answer while feedback is shown is ignored; the next message
	// is the delayed advance.
	sendAnswer(t, conn, "3")
	snap = readState(t, conn)
	if snap.Index != 1 || snap.Answered || snap.Score != 1 {
		t.Fatalf("expected second question with score 1, got %+v", snap)
	}

	sendAnswer(t, conn, "Blue")
	readInto(t, conn, "verdict", &verdict)
	if verdict.Correct || verdict.CorrectAnswer != "Red" {
		t.Fatalf("expected wrong verdict, got %+v", verdict)
	}
	_ = readState(t, conn)
	snap = readState(t, conn)
	if !snap.IsFinished || snap.Score != 1 || snap.Total != 2 {
		t.Fatalf("expected finished 1/2, got %+v", snap)
	}
	if snap.ResultMessage != "You got 1 out of 2 questions correct" {
		t.Fatalf("unexpected result message %q", snap.ResultMessage)
	}
}

func TestWebSocketRestartAfterLoadError(t *testing.T) {
	provider := memory.NewStaticProvider(sampleQuiz()).WithResponseCode(trivia.CodeNoResults)
	server := httptest.NewServer(NewRouter(newTestService(provider), zerolog.Nop()))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	_ = readState(t, conn)
	snap := readState(t, conn)
	if snap.Phase != domain.PhaseLoading || snap.Error == "" {
		t.Fatalf("expected load error, got %+v", snap)
	}
	first := snap.SessionID

	provider.WithResponseCode(trivia.CodeSuccess)
	if err := conn.WriteJSON(map[string]any{"type": "restart"}); err != nil {
		t.Fatalf("write restart: %v", err)
	}
	snap = readState(t, conn)
	if snap.Phase != domain.PhaseLoading || snap.SessionID == first || snap.Error != "" {
		t.Fatalf("expected fresh loading session, got %+v", snap)
	}
	snap = readState(t, conn)
	if snap.Phase != domain.PhaseInProgress {
		t.Fatalf("expected quiz after restart, got %+v", snap)
	}
}

func TestWebSocketKeepsRedisLivenessWhilePlaying(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := infraredis.NewSessionStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), time.Minute)
	loader := trivia.NewLoader(memory.NewStaticProvider(sampleQuiz()), shuffle.NewSource(5), zerolog.Nop())
	service := app.NewQuizService(store, loader, app.Options{AdvanceDelay: 50 * time.Millisecond}, zerolog.Nop())
	server := httptest.NewServer(NewRouter(service, zerolog.Nop()))
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	_ = readState(t, conn)
	snap := readState(t, conn)
	if snap.Phase != domain.PhaseInProgress {
		t.Fatalf("expected quiz in progress, got %+v", snap)
	}
	key := liveKey(t, mr)

	for round := 0; round < 3; round++ {
		mr.FastForward(40 * time.Second)
		if err := conn.WriteJSON(map[string]any{"type": "restart"}); err != nil {
			t.Fatalf("write restart: %v", err)
		}
		restarted := readState(t, conn)
		_ = readState(t, conn)
		if !mr.Exists(key) {
			t.Fatalf("round %d: liveness key expired while playing", round)
		}
		val, err := mr.Get(key)
		if err != nil {
			t.Fatalf("round %d: get key: %v", round, err)
		}
		if val != restarted.SessionID {
			t.Fatalf("round %d: expected session %s in key, got %s", round, restarted.SessionID, val)
		}
	}
}

func liveKey(t *testing.T, mr *miniredis.Miniredis) string {
	t.Helper()
	keys := mr.Keys()
	if len(keys) != 1 || !strings.HasPrefix(keys[0], "trivia:game:") {
		t.Fatalf("expected one liveness key, got %v", keys)
	}
	return keys[0]
}

func TestIndexAndHealth(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestService(memory.NewStaticProvider(sampleQuiz())), zerolog.Nop()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected index response %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	health, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer health.Body.Close()
	if health.StatusCode != http.StatusOK || health.Header.Get("X-Active-Games") != "0" {
		t.Fatalf("unexpected health response %d %s", health.StatusCode, health.Header.Get("X-Active-Games"))
	}
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func sendAnswer(t *testing.T, conn *websocket.Conn, answer string) {
	t.Helper()
	msg := map[string]any{
		"type":    "answer",
		"payload": map[string]any{"answer": answer},
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write answer: %v", err)
	}
}

func readState(t *testing.T, conn *websocket.Conn) domain.Snapshot {
	t.Helper()
	var snap domain.Snapshot
	readInto(t, conn, "state", &snap)
	return snap
}

func readInto(t *testing.T, conn *websocket.Conn, expect string, out any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		t.Fatalf("decode %s payload: %v", expect, err)
	}
}

func newTestService(p trivia.Provider) *app.QuizService {
	loader := trivia.NewLoader(p, shuffle.NewSource(5), zerolog.Nop())
	return app.NewQuizService(memory.NewSessionStore(), loader, app.Options{
		QuestionCount: 10,
		AdvanceDelay:  200 * time.Millisecond,
	}, zerolog.Nop())
}

func sampleQuiz() []domain.RawQuestion {
	return []domain.RawQuestion{
		{
			Question:         "What is 2 + 2?",
			CorrectAnswer:    "4",
			IncorrectAnswers: []string{"3", "5", "22"},
		},
		{
			Question:         "What colour is a ripe tomato?",
			CorrectAnswer:    "Red",
			IncorrectAnswers: []string{"Blue", "Purple", "Black"},
		},
	}
}
