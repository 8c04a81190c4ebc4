// Package profiler serves net/http/pprof handlers on a loopback port for
// inspecting long-running taskdue processes.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"
)

// startGrace is how long Start waits for Serve to fail before assuming success.
const startGrace = 100 * time.Millisecond

// Server is a pprof HTTP server.
type Server struct {
	srv      *http.Server
	listener net.Listener
	port     int
	log      zerolog.Logger
}

// New creates a server for port on 127.0.0.1. Port 0 picks a free port.
func New(port int, log zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		srv:  &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		port: port,
		log:  log,
	}
}

// Start listens and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	errc := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-time.After(startGrace):
	}

	s.log.Info().Str("url", s.URL()).Msg("profiler listening")
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the pprof index URL.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/debug/pprof/"
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Debug().Msg("profiler shutting down")
	return s.srv.Shutdown(ctx)
}

// StartIfEnabled starts a server when port is positive and returns a stop
// function. The stop function is a no-op when nothing was started.
func StartIfEnabled(ctx context.Context, port int, log zerolog.Logger) (func(), error) {
	if port <= 0 {
		return func() {}, nil
	}

	s := New(port, log)
	if err := s.Start(ctx); err != nil {
		return nil, fmt.Errorf("start profiler: %w", err)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("profiler shutdown failed")
		}
	}, nil
}
