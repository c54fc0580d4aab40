package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/valgard/hnefatafl/board"
)

// Config holds the server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server exposes game sessions over websocket. The magic table and zobrist
// table are shared read-only across all sessions; each session owns its Board
// and serializes access with its own lock.
type Server struct {
	config  Config
	logger  zerolog.Logger
	magic   *board.MagicTable
	zobrist *board.ZobristTable

	mu       sync.Mutex
	sessions map[string]*session
	nextID   uint64
}

type ServerOption func(*Server)

// WithMagicTable shares the move-generation fast path across sessions.
// Without it every board falls back to ray casting.
func WithMagicTable(t *board.MagicTable) ServerOption {
	return func(s *Server) {
		s.magic = t
	}
}

func NewServer(config Config, logger zerolog.Logger, opts ...ServerOption) (*Server, error) {
	zobrist, err := board.NewZobristTable(uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, err
	}
	s := &Server{
		config:   config,
		logger:   logger,
		zobrist:  zobrist,
		sessions: make(map[string]*session),
	}
	for _, f := range opts {
		f(s)
	}
	return s, nil
}

// session pairs a board with the lock that serializes its mutation.
type session struct {
	id    string
	mu    sync.Mutex
	board *board.Board
}

func (s *Server) newSession(layout string) (*session, error) {
	opts := []board.BoardOption{board.WithZobristTable(s.zobrist)}
	if layout != "" {
		opts = append(opts, board.WithLayout(layout))
	}
	if s.magic != nil {
		opts = append(opts, board.WithMagicTable(s.magic))
	}
	b, err := board.NewBoard(opts...)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:    strconv.FormatUint(atomic.AddUint64(&s.nextID, 1), 10),
		board: b,
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Handler returns the routed HTTP handler, exposed separately so tests can
// mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintln(w, "ok")
	})
	return s.loggingMiddleware(mux)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}
