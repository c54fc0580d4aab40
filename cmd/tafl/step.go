package main

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/valgard/hnefatafl/board"
)

// step plays random legal moves for the given number of plies, applying
// captures, and draws the board after each move.
func step(logger zerolog.Logger, layout string, magic *board.MagicTable, plies int, seed int64) error {
	opts := []board.BoardOption{board.WithLayout(layout)}
	if magic != nil {
		opts = append(opts, board.WithMagicTable(magic))
	}
	b, err := board.NewBoard(opts...)
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(seed))

	fmt.Println(b.Draw())
	for ply := 0; ply < plies; ply++ {
		actions := candidateActions(b)
		if len(actions) == 0 {
			logger.Info().Int("ply", ply).Msg("no moves left")
			break
		}
		action := actions[r.Intn(len(actions))]
		if err := b.MovePiece(action); err != nil {
			return err
		}

		captures := b.CapturedPieces()
		for _, ps := range captures {
			b.RemovePiece(ps.Piece, ps.Square)
		}

		fmt.Printf("\n===== [#%d] %s (hash %016x)\n", ply+1, action, b.Hash())
		for _, ps := range captures {
			fmt.Printf("      captured %s on %s\n", ps.Piece, ps.Square)
		}
		fmt.Println(b.Draw())
	}
	return nil
}

// candidateActions lists the rule-abiding moves for the side to move.
func candidateActions(b *board.Board) []board.Action {
	var actions []board.Action
	turn := b.Turn()
	for _, ps := range b.Pieces() {
		if ps.Piece != turn && !(turn == board.PieceDefender && ps.Piece == board.PieceKing) {
			continue
		}
		destinations := b.Destinations(ps.Square)
		if ps.Piece != board.PieceKing {
			destinations = destinations.Diff(board.CornerMask())
		}
		destinations = destinations.Diff(board.ThroneMask())
		for _, to := range destinations.Squares() {
			actions = append(actions, board.NewAction(ps.Piece, ps.Square, to))
		}
	}
	return actions
}
