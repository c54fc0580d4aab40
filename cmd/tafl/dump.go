package main

import (
	"fmt"

	"github.com/valgard/hnefatafl/board"
)

// dump draws the starting position and the destination set of every piece of
// the side to move.
func dump(layout string, magic *board.MagicTable) error {
	opts := []board.BoardOption{board.WithLayout(layout)}
	if magic != nil {
		opts = append(opts, board.WithMagicTable(magic))
	}
	b, err := board.NewBoard(opts...)
	if err != nil {
		return err
	}

	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Draw())
	fmt.Printf("hash: %016x\n", b.Hash())

	for _, action := range candidateActions(b) {
		fmt.Println("option:", action)
	}
	return nil
}
