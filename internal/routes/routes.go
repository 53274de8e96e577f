package routes

import (
	"net/http"

	"github.com/templui/nocturne/internal/app"
	"github.com/templui/nocturne/internal/handler"
	"github.com/templui/nocturne/internal/middleware"
	"github.com/templui/nocturne/internal/render"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.ProfileService)
	oauth := handler.NewOAuthHandler(app.AuthService, app.Cfg)
	profile := handler.NewProfileHandler(app.ProfileService, app.AvatarService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	sleep := handler.NewSleepHandler(app.SleepService)
	note := handler.NewNoteHandler(app.NoteService)
	account := handler.NewAccountHandler(app.AccountService, app.AuthService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/health", health.Health)

	// Auth (rate limited)
	rateLimiter := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if app.Cfg.RateLimitEnabled {
		rateLimiter = middleware.RateLimitAuth()
	}

	mux.HandleFunc("POST /api/auth/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// OAuth
	mux.HandleFunc("GET /api/auth/google", rateLimiter(oauth.Begin("google")))
	mux.HandleFunc("GET /api/auth/google/callback", rateLimiter(oauth.Callback("google")))
	mux.HandleFunc("GET /api/auth/github", rateLimiter(oauth.Begin("github")))
	mux.HandleFunc("GET /api/auth/github/callback", rateLimiter(oauth.Callback("github")))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/auth/session", middleware.RequireAuth(auth.Session))

	// Account
	mux.HandleFunc("PUT /api/account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("DELETE /api/account", middleware.RequireAuth(account.Delete))

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /api/profile/avatar", middleware.RequireAuth(profile.UploadAvatar))
	mux.HandleFunc("DELETE /api/profile/avatar", middleware.RequireAuth(profile.DeleteAvatar))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Sleep logs
	mux.HandleFunc("GET /api/sleep-logs", middleware.RequireAuth(sleep.List))
	mux.HandleFunc("POST /api/sleep-logs", middleware.RequireAuth(sleep.Start))
	mux.HandleFunc("POST /api/sleep-logs/stop", middleware.RequireAuth(sleep.Stop))
	mux.HandleFunc("PATCH /api/sleep-logs/{id}", middleware.RequireAuth(sleep.Update))
	mux.HandleFunc("DELETE /api/sleep-logs/{id}", middleware.RequireAuth(sleep.Delete))

	// Notes
	mux.HandleFunc("GET /api/notes", middleware.RequireAuth(note.List))
	mux.HandleFunc("GET /api/notes/pinned", middleware.RequireAuth(note.Pinned))
	mux.HandleFunc("POST /api/notes", middleware.RequireAuth(note.Create))
	mux.HandleFunc("POST /api/notes/import", middleware.RequireAuth(note.Import))
	mux.HandleFunc("GET /api/notes/{id}", middleware.RequireAuth(note.Get))
	mux.HandleFunc("GET /api/notes/{id}/html", middleware.RequireAuth(note.HTML))
	mux.HandleFunc("PATCH /api/notes/{id}", middleware.RequireAuth(note.Update))
	mux.HandleFunc("DELETE /api/notes/{id}", middleware.RequireAuth(note.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, http.StatusNotFound, "not found")
	})

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestID, // before logging so every log line carries it
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(app.AuthService),
		middleware.CSRFProtection, // needs the auth source set by AuthMiddleware
	)

	return handler
}
