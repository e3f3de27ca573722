package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrfarhan786/MVOTE/auth"
	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/config"
	"github.com/mrfarhan786/MVOTE/internal/handlers"
	"github.com/mrfarhan786/MVOTE/internal/models"
	"github.com/mrfarhan786/MVOTE/internal/services"

	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
// The notifier is returned so main can flush pending dispatches on shutdown.
func New(db *gorm.DB, cfg config.Config) (http.Handler, *services.NotifierService) {
	mux := http.NewServeMux()

	// RequireAuth double-checks that the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	identity := services.NewIdentityService(db)
	sessions := services.NewSessionService(db)
	ballot := services.NewBallotService(db)
	notifier := services.NewNotifierService(db, slog.Default())

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler(identity, notifier).Register(mux)
	handlers.NewProfileHandler(identity).Register(mux)
	handlers.NewSessionHandler(sessions).Register(mux)
	handlers.NewVoteHandler(ballot).Register(mux)
	handlers.NewNotificationHandler(notifier).Register(mux)
	handlers.NewUploadHandler(cfg.UploadDir).Register(mux)

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return corsMiddleware(auth.Middleware(withRecover(withLogging(mux)))), notifier
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "path", r.URL.Path, "panic", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
