package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/forumstate/frontend/internal/setup"
	mw "github.com/itchan-dev/forumstate/shared/middleware"
	"github.com/itchan-dev/forumstate/shared/middleware/metrics"
	rl "github.com/itchan-dev/forumstate/shared/middleware/ratelimiter"
)

// New creates the bridge router: read-only snapshots, intents and the event feed under /v1.
// IMPORTANT! the intent rate limit is per client IP, shared by all intent endpoints
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// setup CORS for the UI
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Public.Bridge.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders)

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Get("/threads", h.GetThreads)
		r.Get("/detail", h.GetDetail)
		r.Get("/auth", h.GetAuth)
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/events", h.Events)

		r.Group(func(r chi.Router) {
			limiter := rl.New(deps.Public.Bridge.IntentRateLimit, deps.Public.Bridge.IntentRateBurst, time.Hour)
			r.Use(mw.RateLimit(limiter, mw.GetIP))

			r.Post("/threads", h.CreateThread)
			r.Post("/threads/refresh", h.RefreshThreads)
			r.Post("/threads/{threadId}/vote", h.VoteThread)
			r.Post("/threads/{threadId}/comments", h.CreateComment)
			r.Post("/threads/{threadId}/comments/{commentId}/vote", h.VoteComment)

			r.Post("/detail/{threadId}", h.OpenThread)
			r.Delete("/detail", h.LeaveThread)

			r.Post("/auth/register", h.Register)
			r.Post("/auth/login", h.Login)
			r.Post("/auth/profile", h.RefreshProfile)
			r.Post("/auth/logout", h.Logout)

			r.Post("/leaderboard/refresh", h.RefreshLeaderboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
