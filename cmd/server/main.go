package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/goalai/internal/api"
	"github.com/rohits-web03/goalai/internal/api/handlers"
	"github.com/rohits-web03/goalai/internal/api/services"
	"github.com/rohits-web03/goalai/internal/config"
	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/repositories"
)

const shutdownTimeout = 10 * time.Second

type serverOptions struct {
	Port    string
	EnvFile string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &serverOptions{}

	cmd := &cobra.Command{
		Use:          "goalai",
		Short:        "Goal AI backend",
		Long:         "HTTP API for the Goal AI study companion: accounts, onboarding, chat and daily planning.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default .env)")

	return cmd
}

func run(ctx context.Context, opts *serverOptions) error {
	cfg := config.Load(opts.EnvFile)
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	log := logging.New(cfg.Environment)

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	recordOpts := services.RecordOptions{ChatHistoryLimit: cfg.ChatHistoryLimit}
	if cfg.R2.Enabled() {
		recordOpts.Archiver = repositories.NewR2Archiver(repositories.R2Options{
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Region:          cfg.R2.Region,
			Bucket:          cfg.R2.BucketName,
			Endpoint:        cfg.R2.Endpoint,
			AccountID:       cfg.R2.AccountID,
		})
		log.Info(ctx, "chat archive enabled", "bucket", cfg.R2.BucketName)
	}

	auth := services.NewAuthService(store, services.NewScryptHasher(), services.AuthOptions{
		Secret:        cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		SingleSession: cfg.SingleSession,
	}, log)
	records := services.NewRecordService(store, recordOpts, log)
	coach := services.NewCoach(services.NewAssistant(cfg.OpenAI, log), records, nil)

	var google *services.GoogleOAuth
	if cfg.Google.Enabled() {
		google = services.NewGoogleOAuth(cfg.Google)
	}

	h := handlers.New(auth, records, coach, google, handlers.Options{
		Production:  cfg.IsProduction(),
		FrontendURL: cfg.FrontendURL,
	}, log)
	mux := api.SetupRouter(h, auth, api.RouterOptions{
		Cors:      cfg.CorsConfig,
		StaticDir: cfg.StaticDir,
	}, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout: 5 * time.Second,
		// Assistant calls may take up to the LLM timeout before falling back.
		WriteTimeout: cfg.OpenAI.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(ctx, "starting Goal AI server", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info(ctx, "shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		return err
	}
	return nil
}

// openStore uses Postgres when DB_URL is set and process memory otherwise.
func openStore(ctx context.Context, cfg config.Config, log logging.Logger) (*repositories.Store, error) {
	if cfg.DB_URL == "" {
		log.Warn(ctx, "DB_URL not set, using in-memory storage")
		return repositories.NewMemoryStore(), nil
	}
	db, err := repositories.ConnectDatabase(cfg.DB_URL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info(ctx, "connected to database")
	return repositories.NewGormStore(db), nil
}
