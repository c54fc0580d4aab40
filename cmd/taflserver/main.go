package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valgard/hnefatafl/api"
	"github.com/valgard/hnefatafl/board"
	"github.com/valgard/hnefatafl/internal/logx"
)

var (
	addr         = flag.String("addr", "localhost:8080", "listen address")
	magics       = flag.String("magics", "", "path to a magic table asset")
	readTimeout  = flag.Duration("timeout.read", 30*time.Second, "read timeout")
	writeTimeout = flag.Duration("timeout.write", 30*time.Second, "write timeout")
	idleTimeout  = flag.Duration("timeout.idle", 60*time.Second, "idle timeout")
)

func main() {
	flag.Parse()
	logger := logx.NewLogger()

	config := api.Config{
		Addr:         *addr,
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
		IdleTimeout:  *idleTimeout,
	}

	var opts []api.ServerOption
	if *magics != "" {
		f, err := os.Open(*magics)
		if err != nil {
			logger.Error().Err(err).Str("path", *magics).Msg("failed to open magic asset")
			os.Exit(1)
		}
		table, err := board.DecodeMagicTable(f)
		f.Close()
		if err != nil {
			logger.Error().Err(err).Str("path", *magics).Msg("failed to decode magic asset")
			os.Exit(1)
		}
		opts = append(opts, api.WithMagicTable(table))
		logger.Info().Str("path", *magics).Msg("magic asset loaded")
	}

	server, err := api.NewServer(config, logger, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize server")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
