/*
Package handler provides the HTTP surface of the chat server.

This file defines the Router: health and history endpoints plus the
WebSocket bridge, behind logging, CORS, and IP-based rate limiting.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/limiter"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
	"github.com/shadoomedia/chat-server/internal/pkg/resp"
)

const (
	HistoryRate  = 1.0
	HistoryBurst = 5
	JoinRate     = 0.2
	JoinBurst    = 5
)

// Router sets up the HTTP routing table (chi.Router) for the status surface
// and the WebSocket bridge, applying CORS and per-route rate limits.
func Router(deps *AppDeps) http.Handler {
	historyLimiter := limiter.NewIPRateLimiter(rate.Limit(HistoryRate), HistoryBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":   "ok",
			"service":  "chat-server",
			"sessions": deps.Core.Registry().Len(),
		}
		resp.RespondSuccess(w, r, data)
	})

	r.With(historyLimiter.Middleware).Get("/history", func(w http.ResponseWriter, r *http.Request) {
		history, err := deps.Journal.ReadAll()
		if err != nil {
			logx.Error(err, "Failed to read journal for history endpoint")
			resp.RespondError(w, r, errs.NewError(errs.ErrJournalIO))
			return
		}

		resp.RespondSuccess(w, r, map[string]string{"history": history})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, joinLimiter, deps))

	return r
}
