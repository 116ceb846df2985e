// Package httpapi exposes the REST surface of the translation server:
// routing, bearer-token authentication, and request/response mapping.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ysolovyov/knorozov/internal/logging"
	"github.com/ysolovyov/knorozov/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger     logging.Logger
	httpServer *http.Server
}

func NewServer(addr string, logger logging.Logger, users *services.UserService, translations *services.TranslationService) *Server {
	h := &Handlers{
		logger:       logger,
		users:        users,
		translations: translations,
	}

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
