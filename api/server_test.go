package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()
	s, err := NewServer(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != req.ID {
		t.Fatalf("unexpected response id: got=%q want=%q", resp.ID, req.ID)
	}
	return resp
}

func payload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return raw
}

func decodePayload(t *testing.T, resp Response, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	s, err := NewServer(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: got=%d want=%d", resp.StatusCode, http.StatusOK)
	}
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	conn := newTestConn(t)

	resp := roundTrip(t, conn, Request{Type: "new", ID: "1"})
	if resp.Type != "result" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	var state GameState
	decodePayload(t, resp, &state)
	if state.Turn != "Attacker" {
		t.Errorf("unexpected turn: got=%q want=%q", state.Turn, "Attacker")
	}
	if len(state.Pieces) != 25 {
		t.Errorf("unexpected piece count: got=%d want=25", len(state.Pieces))
	}
	if state.GameID == "" || state.Hash == "" {
		t.Errorf("missing game id or hash: %+v", state)
	}
}

func TestMoveWithCapture(t *testing.T) {
	t.Parallel()
	conn := newTestConn(t)

	resp := roundTrip(t, conn, Request{Type: "new", ID: "1", Payload: payload(t, NewPayload{
		Layout: "9/9/9/9/A1DA5/9/9/9/9 B",
	})})
	var state GameState
	decodePayload(t, resp, &state)

	resp = roundTrip(t, conn, Request{Type: "move", ID: "2", Payload: payload(t, MovePayload{
		GameID: state.GameID,
		Piece:  "A",
		From:   "a5",
		To:     "b5",
	})})
	if resp.Type != "result" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	var result MoveResult
	decodePayload(t, resp, &result)
	if result.Turn != "Defender" {
		t.Errorf("unexpected turn: got=%q want=%q", result.Turn, "Defender")
	}
	if len(result.Captures) != 1 || result.Captures[0] != (PiecePosition{Piece: "D", Square: "c5"}) {
		t.Errorf("unexpected captures: got=%v", result.Captures)
	}

	// the captured defender is gone from the session state
	resp = roundTrip(t, conn, Request{Type: "state", ID: "3", Payload: payload(t, StatePayload{GameID: state.GameID})})
	var after GameState
	decodePayload(t, resp, &after)
	if len(after.Pieces) != 2 {
		t.Errorf("unexpected piece count: got=%d want=2", len(after.Pieces))
	}
}

func TestMoveRuleViolation(t *testing.T) {
	t.Parallel()
	conn := newTestConn(t)

	resp := roundTrip(t, conn, Request{Type: "new", ID: "1"})
	var state GameState
	decodePayload(t, resp, &state)

	// defenders do not open the game
	resp = roundTrip(t, conn, Request{Type: "move", ID: "2", Payload: payload(t, MovePayload{
		GameID: state.GameID,
		Piece:  "D",
		From:   "d5",
		To:     "d4",
	})})
	if resp.Type != "error" || resp.Error == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// the connection survives rule violations
	resp = roundTrip(t, conn, Request{Type: "state", ID: "3", Payload: payload(t, StatePayload{GameID: state.GameID})})
	if resp.Type != "result" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMoveAbsentPiece(t *testing.T) {
	t.Parallel()
	conn := newTestConn(t)

	resp := roundTrip(t, conn, Request{Type: "new", ID: "1"})
	var state GameState
	decodePayload(t, resp, &state)

	resp = roundTrip(t, conn, Request{Type: "move", ID: "2", Payload: payload(t, MovePayload{
		GameID: state.GameID,
		Piece:  "A",
		From:   "b2",
		To:     "b3",
	})})
	if resp.Type != "error" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUnknownGameAndType(t *testing.T) {
	t.Parallel()
	conn := newTestConn(t)

	resp := roundTrip(t, conn, Request{Type: "state", ID: "1", Payload: payload(t, StatePayload{GameID: "404"})})
	if resp.Type != "error" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	resp = roundTrip(t, conn, Request{Type: "bogus", ID: "2"})
	if resp.Type != "error" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
