package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/card"
	"github.com/MikhailRaia/readme-cards/internal/logger"
	"github.com/MikhailRaia/readme-cards/internal/middleware"
	"github.com/MikhailRaia/readme-cards/internal/upstream"
)

const (
	msgUsernameRequired = "Username is required"
	msgInternalError    = "Internal server error"

	cacheControl = "s-maxage=3600, stale-while-revalidate"
)

type CardService interface {
	Stats(ctx context.Context, query url.Values) (string, error)
	TopLangs(ctx context.Context, query url.Values) (string, error)
}

type Handler struct {
	cards   CardService
	timeout time.Duration
}

// NewHandler creates a Handler. A positive timeout bounds every request.
func NewHandler(cards CardService, timeout time.Duration) *Handler {
	return &Handler{
		cards:   cards,
		timeout: timeout,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)
	r.Use(middleware.RecoverJSON)

	if h.timeout > 0 {
		r.Use(middleware.Deadline(h.timeout))
	}

	r.Use(middleware.GzipMiddleware)

	r.Get("/api", h.handleStats)
	r.Get("/api/stats", h.handleStats)
	r.Get("/api/top-langs", h.handleTopLangs)
	r.Get("/api/top-langs/", h.handleTopLangs)
	r.Get("/ping", h.handlePing)

	return r
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	body, err := h.cards.Stats(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, card.ErrUsernameRequired) {
			writeError(w, http.StatusBadRequest, msgUsernameRequired)
			return
		}

		log.Error().Err(err).Str("card", "stats").Msg("Failed to build card")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeSVG(w, body)
}

func (h *Handler) handleTopLangs(w http.ResponseWriter, r *http.Request) {
	body, err := h.cards.TopLangs(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, card.ErrUsernameRequired) {
			writeError(w, http.StatusBadRequest, msgUsernameRequired)
			return
		}

		log.Error().Err(err).Str("card", "top-langs").Msg("Failed to build card")

		// Only upstream status errors are shown; transport details stay in the log.
		msg := msgInternalError
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeSVG(w, body)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	response, err := json.Marshal(errorResponse{Error: msg})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func writeSVG(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
