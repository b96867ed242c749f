package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"trivia-dialogue-service/internal/app"
	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/engine"
	"trivia-dialogue-service/internal/infra/memory"
)

func sampleBundle() map[string]content.RawBundle {
	return map[string]content.RawBundle{
		"en": {
			Settings: map[string]any{
				"title":              "WS Quiz",
				"questions_per_game": 1,
			},
			Questions: []map[string]any{
				{
					"question":           "What is 2 + 2?",
					"correct_answer":     []any{"4"},
					"incorrect_answer_1": []any{"3"},
					"incorrect_answer_2": []any{"5"},
				},
			},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := content.NewRepository(memory.NewStaticSource(sampleBundle()))
	eng := engine.New(repo, engine.WithRandSeed(1))
	service := app.NewTurnService(memory.NewSessionStore(), eng)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewHandler(service).ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendTurn(t *testing.T, conn *websocket.Conn, action domain.Action, slots map[string]string) engine.Response {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"action": string(action), "slots": slots}); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
	var resp engine.Response
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read %s response: %v", action, err)
	}
	return resp
}

func TestWebSocketTurnFlow(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "locale=en&sessionId=sess-1")

	sendTurn(t, conn, domain.ActionSetupQuiz, nil)
	resp := sendTurn(t, conn, domain.ActionWelcome, nil)
	if len(resp.Fragments) == 0 {
		t.Fatalf("welcome fragments empty")
	}

	sendTurn(t, conn, domain.ActionFinalizeSetup, nil)
	resp = sendTurn(t, conn, domain.ActionAskQuestion, nil)
	if len(resp.Suggestions) != 3 {
		t.Fatalf("suggestions = %v", resp.Suggestions)
	}

	resp = sendTurn(t, conn, domain.ActionAnswer, map[string]string{domain.SlotAnswer: "4"})
	found := false
	for _, f := range resp.Fragments {
		if f == engine.PromptRightAnswer1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected right-answer prompt, got %v", resp.Fragments)
	}
}

func TestWebSocketClosesOnQuit(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "locale=en")

	sendTurn(t, conn, domain.ActionSetupQuiz, nil)
	resp := sendTurn(t, conn, domain.ActionQuitYes, nil)
	if !resp.EndConversation {
		t.Fatalf("quit should end the conversation: %+v", resp)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection")
	}
}

func TestWebSocketRequiresLocale(t *testing.T) {
	server := newTestServer(t)
	u := "ws" + server.URL[len("http"):] + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatal("dial without locale should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %+v", resp)
	}
}
