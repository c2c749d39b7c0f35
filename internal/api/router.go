package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rohits-web03/goalai/docs"
	"github.com/rohits-web03/goalai/internal/api/handlers"
	"github.com/rohits-web03/goalai/internal/api/middleware"
	"github.com/rohits-web03/goalai/internal/api/services"
	"github.com/rohits-web03/goalai/internal/logging"
)

type RouterOptions struct {
	Cors cors.Options
	// StaticDir holds the built front end. Empty disables static serving.
	StaticDir string
}

func SetupRouter(h *handlers.Handler, auth *services.AuthService, opts RouterOptions, log logging.Logger) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(opts.Cors)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mainMux.HandleFunc("GET /api/test", h.Status)
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /api/register", h.Register)
	mainMux.HandleFunc("POST /api/login", h.Login)
	mainMux.HandleFunc("POST /api/logout", h.Logout)
	mainMux.HandleFunc("GET /api/user", h.CurrentUser)
	mainMux.HandleFunc("GET /api/auth/google/login", h.GoogleLogin)
	mainMux.HandleFunc("GET /api/auth/google/callback", h.GoogleCallback)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/onboarding", h.SaveOnboarding)
	protectedMux.HandleFunc("GET /api/onboarding", h.GetOnboarding)
	protectedMux.HandleFunc("PUT /api/profile", h.UpdateProfile)
	protectedMux.HandleFunc("GET /api/profile", h.GetProfile)
	protectedMux.HandleFunc("POST /api/chat", h.Chat)
	protectedMux.HandleFunc("GET /api/chats", h.ListChats)
	protectedMux.HandleFunc("GET /api/chats/archives", h.ChatArchives)
	protectedMux.HandleFunc("POST /api/daily-plan", h.DailyPlan)
	protectedMux.HandleFunc("POST /api/analyze-progress", h.AnalyzeProgress)

	requireAuth := middleware.AuthMiddleware(auth, services.ErrNotAuthenticated, log)
	mainMux.Handle("/api/", requireAuth(protectedMux))

	if opts.StaticDir != "" {
		mainMux.Handle("/", spaHandler(opts.StaticDir))
	}

	handler := c.Handler(mainMux)
	handler = middleware.Logger(log)(handler)
	return handler
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes survive a reload.
func spaHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir() && r.URL.Path != "/") {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(w, r)
	})
}
