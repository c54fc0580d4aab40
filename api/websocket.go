package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/valgard/hnefatafl/board"
	"github.com/valgard/hnefatafl/square"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is a client websocket message.
type Request struct {
	Type    string          `json:"type"` // "new", "move", "state"
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response answers a Request. Rule violations arrive as Error, never as a
// closed connection.
type Response struct {
	Type    string      `json:"type"` // "result" or "error"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PiecePosition is a piece on a square in wire form.
type PiecePosition struct {
	Piece  string `json:"piece"`
	Square string `json:"square"`
}

type NewPayload struct {
	Layout string `json:"layout,omitempty"`
}

type MovePayload struct {
	GameID string `json:"game_id"`
	Piece  string `json:"piece"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type StatePayload struct {
	GameID string `json:"game_id"`
}

// GameState is the session snapshot returned by "new" and "state".
type GameState struct {
	GameID string          `json:"game_id"`
	Turn   string          `json:"turn"`
	Hash   string          `json:"hash"`
	Pieces []PiecePosition `json:"pieces"`
}

// MoveResult reports an applied move with its resolved captures.
type MoveResult struct {
	GameID   string          `json:"game_id"`
	Turn     string          `json:"turn"`
	Hash     string          `json:"hash"`
	Captures []PiecePosition `json:"captures"`
}

// wsConn serializes writes to one websocket connection.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(resp)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	s.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("websocket connected")

	c := &wsConn{conn: conn}
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		if err := c.send(s.dispatch(req)); err != nil {
			s.logger.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (s *Server) dispatch(req Request) Response {
	switch req.Type {
	case "new":
		return s.handleNew(req)
	case "move":
		return s.handleMove(req)
	case "state":
		return s.handleState(req)
	default:
		return errorResponse(req.ID, fmt.Errorf("unknown message type %q", req.Type))
	}
}

func errorResponse(id string, err error) Response {
	return Response{Type: "error", ID: id, Error: err.Error()}
}

func (s *Server) handleNew(req Request) Response {
	var payload NewPayload
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errorResponse(req.ID, err)
		}
	}
	sess, err := s.newSession(payload.Layout)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	s.logger.Info().Str("game_id", sess.id).Msg("session created")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Response{Type: "result", ID: req.ID, Payload: gameState(sess)}
}

func (s *Server) handleState(req Request) Response {
	var payload StatePayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return errorResponse(req.ID, err)
	}
	sess, ok := s.session(payload.GameID)
	if !ok {
		return errorResponse(req.ID, fmt.Errorf("unknown game %q", payload.GameID))
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Response{Type: "result", ID: req.ID, Payload: gameState(sess)}
}

func (s *Server) handleMove(req Request) Response {
	var payload MovePayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return errorResponse(req.ID, err)
	}
	sess, ok := s.session(payload.GameID)
	if !ok {
		return errorResponse(req.ID, fmt.Errorf("unknown game %q", payload.GameID))
	}
	action, err := parseAction(payload)
	if err != nil {
		return errorResponse(req.ID, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// uphold the board's presence contract before submitting
	if p, ok := sess.board.PieceAt(action.From); !ok || p != action.Piece {
		return errorResponse(req.ID, fmt.Errorf("no %s on %s", action.Piece, action.From))
	}
	if err := sess.board.MovePiece(action); err != nil {
		return errorResponse(req.ID, err)
	}

	captures := sess.board.CapturedPieces()
	for _, ps := range captures {
		sess.board.RemovePiece(ps.Piece, ps.Square)
	}
	s.logger.Info().
		Str("game_id", sess.id).
		Stringer("action", action).
		Int("captures", len(captures)).
		Msg("move applied")

	return Response{Type: "result", ID: req.ID, Payload: MoveResult{
		GameID:   sess.id,
		Turn:     sess.board.Turn().Name(),
		Hash:     hashString(sess.board.Hash()),
		Captures: piecePositions(captures),
	}}
}

func parseAction(payload MovePayload) (board.Action, error) {
	if len(payload.Piece) != 1 {
		return board.Action{}, fmt.Errorf("invalid piece %q", payload.Piece)
	}
	piece, ok := board.PieceFromSymbol(rune(payload.Piece[0]))
	if !ok {
		return board.Action{}, fmt.Errorf("invalid piece %q", payload.Piece)
	}
	from, err := square.FromNotation(payload.From)
	if err != nil {
		return board.Action{}, fmt.Errorf("invalid source %q: %w", payload.From, err)
	}
	to, err := square.FromNotation(payload.To)
	if err != nil {
		return board.Action{}, fmt.Errorf("invalid destination %q: %w", payload.To, err)
	}
	return board.NewAction(piece, from, to), nil
}

func gameState(sess *session) GameState {
	return GameState{
		GameID: sess.id,
		Turn:   sess.board.Turn().Name(),
		Hash:   hashString(sess.board.Hash()),
		Pieces: piecePositions(sess.board.Pieces()),
	}
}

func piecePositions(pss []board.PieceSquare) []PiecePosition {
	positions := make([]PiecePosition, 0, len(pss))
	for _, ps := range pss {
		positions = append(positions, PiecePosition{
			Piece:  string(ps.Piece.Symbol()),
			Square: ps.Square.Notation(),
		})
	}
	return positions
}

func hashString(hash uint64) string {
	return strconv.FormatUint(hash, 16)
}
