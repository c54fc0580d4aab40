package main

import (
	"flag"
	"os"
	"time"

	"github.com/valgard/hnefatafl/board"
	"github.com/valgard/hnefatafl/internal/logx"
	"github.com/valgard/hnefatafl/square"
)

var (
	out    = flag.String("out", "magics.json.zst", "output path for the magic table asset")
	seed   = flag.Uint64("seed", 1, "seed for the magic search")
	verify = flag.Bool("verify", false, "re-read the asset and check it against ray casting")
)

func main() {
	flag.Parse()
	logger := logx.NewLogger()

	if *verify {
		if err := verifyAsset(*out); err != nil {
			logger.Error().Err(err).Str("path", *out).Msg("verification failed")
			os.Exit(1)
		}
		logger.Info().Str("path", *out).Msg("asset matches ray casting on every square")
		return
	}

	logger.Info().Uint64("seed", *seed).Msg("searching magics")
	start := time.Now()
	table, err := board.FindMagicTable(*seed)
	if err != nil {
		logger.Error().Err(err).Msg("magic search failed")
		os.Exit(1)
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("search done")

	f, err := os.Create(*out)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create asset")
		os.Exit(1)
	}
	defer f.Close()
	if err := table.Encode(f); err != nil {
		logger.Error().Err(err).Msg("failed to encode asset")
		os.Exit(1)
	}
	logger.Info().Str("path", *out).Msg("asset written")
}

func verifyAsset(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	table, err := board.DecodeMagicTable(f)
	if err != nil {
		return err
	}

	for i := 0; i < board.TotalSquares; i++ {
		sq := square.Square(i)
		blockers := board.Blockers(sq).Squares()
		for pattern := 0; pattern < 1<<len(blockers); pattern++ {
			var occupancy board.Mask
			for bit, bsq := range blockers {
				if pattern&(1<<bit) != 0 {
					occupancy = occupancy.Union(board.SquareMask(bsq))
				}
			}
			want := board.LegalMoves(sq, occupancy).Diff(occupancy)
			if got := table.Lookup(sq, occupancy); got != want {
				return &mismatchError{square: sq}
			}
		}
	}
	return nil
}

type mismatchError struct {
	square square.Square
}

func (e *mismatchError) Error() string {
	return "lookup diverges from ray casting on square " + e.square.Notation()
}
