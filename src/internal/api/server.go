package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/maksimkurb/cgproxy/src/internal/log"
	"github.com/maksimkurb/cgproxy/src/internal/utils"
)

// DefaultSocketPath is where the control API listens by default.
const DefaultSocketPath = "/run/cgproxy/cgproxy.sock"

// socketMode lets root and the socket's group connect.
const socketMode = 0660

// Server serves the control API on a unix socket.
type Server struct {
	socketPath string
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server for handler on socketPath.
func NewServer(socketPath string, handler http.Handler) *Server {
	return &Server{
		socketPath: socketPath,
		httpServer: &http.Server{
			Handler:      handler,
			ConnContext:  connContext,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SocketPath returns the path of the listening socket.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Listen creates the socket, replacing a stale one left by a previous run.
func (s *Server) Listen() error {
	if err := utils.EnsureParentDir(s.socketPath, 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, socketMode); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.listener = listener
	return nil
}

// Serve accepts connections until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	log.Infof("Control API listening on unix://%s", s.socketPath)
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	// Serve closed the listener; a restart needs a new one
	s.listener = nil
	return err
}

// Shutdown stops the server and removes the socket.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if rmErr := os.Remove(s.socketPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		log.Warnf("Failed to remove socket %s: %v", s.socketPath, rmErr)
	}
	return err
}
