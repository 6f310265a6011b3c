package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MosinFAM/comment-board/internal/config"
	"github.com/MosinFAM/comment-board/internal/render"
	"github.com/MosinFAM/comment-board/internal/storage"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server - HTTP-сервер доски комментариев
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// New собирает сервер поверх общего хранилища
func New(cfg *config.Config, stores *storage.Holder, log *zap.Logger) *Server {
	h := &Handler{
		Stores:   stores,
		Renderer: render.Renderer{EscapeHTML: cfg.Render.EscapeHTML},
		Log:      log,
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           NewRouter(cfg.Server, h),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// SeedPage создаёт демонстрационную страницу до старта сервера; пустое имя - ничего не делать
func SeedPage(stores *storage.Holder, page string) {
	if page == "" {
		return
	}
	stores.GetOrInit().EnsurePage(page)
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run слушает адрес до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server is running", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
