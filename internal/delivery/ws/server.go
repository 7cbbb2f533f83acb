package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server - отдельный net/http листенер для фида: fasthttp под Fiber
// не отдаёт net/http Hijacker, который нужен coder/websocket
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler - маршруты live фида
func NewHandler(feed *LocationFeed) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/location", feed.ServeWS)
	return mux
}

func NewServer(addr string, feed *LocationFeed, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(feed),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start блокируется до Shutdown
func (s *Server) Start() error {
	s.logger.Info("Starting live feed server", zap.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down live feed server")
	return s.httpServer.Shutdown(ctx)
}
