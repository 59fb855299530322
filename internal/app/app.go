package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/card"
	"github.com/MikhailRaia/readme-cards/internal/config"
	"github.com/MikhailRaia/readme-cards/internal/decoration"
	"github.com/MikhailRaia/readme-cards/internal/handler"
	"github.com/MikhailRaia/readme-cards/internal/upstream"
	"github.com/MikhailRaia/readme-cards/internal/worker"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	handler http.Handler
	janitor *worker.Janitor
}

func NewApp(cfg *config.Config) *App {
	var opts []upstream.Option
	var janitor *worker.Janitor
	if cfg.CacheTTL > 0 {
		cache := upstream.NewCache(cfg.CacheTTL)
		opts = append(opts, upstream.WithCache(cache))
		janitor = worker.NewJanitor(cache, cfg.CacheTTL)
	}
	client := upstream.NewClient(cfg.UpstreamTimeout, opts...)

	decorations := decoration.NewRegistry()
	if cfg.AssetsDir != "" {
		if _, err := decorations.LoadDir(cfg.AssetsDir); err != nil {
			log.Warn().Err(err).Str("dir", cfg.AssetsDir).Msg("Failed to load decorations")
		}
	}

	cardService := card.NewService(client, decorations, cfg.StatsURL, cfg.TopLangsURL)

	httpHandler := handler.NewHandler(cardService, cfg.RequestTimeout)

	return &App{
		config:  cfg,
		handler: httpHandler.RegisterRoutes(),
		janitor: janitor,
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	if a.janitor != nil {
		a.janitor.Start()
		defer a.janitor.Shutdown(shutdownTimeout)
	}

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", a.config.ServerAddress).Msg("Starting server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("Server stopped cleanly")
	return nil
}
