package main

import (
	"flag"
	"os"

	"github.com/valgard/hnefatafl/board"
	"github.com/valgard/hnefatafl/internal/logx"
)

const (
	exitOK = iota
	exitErr
)

var (
	layout = flag.String("layout", board.DefaultStartingLayout, "starting layout")
	magics = flag.String("magics", "", "path to the magic table asset; ray-cast fallback when empty")

	stepRun   = flag.Bool("step", false, "run random self-play mode")
	stepCount = flag.Int("step.count", 50, "number of plies to play in step mode")
	stepSeed  = flag.Int64("step.seed", 1, "random seed for step mode")
)

func main() {
	flag.Parse()
	logger := logx.NewLogger()

	magic, err := loadMagicTable(*magics)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load magic table")
		os.Exit(exitErr)
	}

	if *stepRun {
		err = step(logger, *layout, magic, *stepCount, *stepSeed)
	} else {
		err = dump(*layout, magic)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func loadMagicTable(path string) (*board.MagicTable, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return board.DecodeMagicTable(f)
}
