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

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/edta-team/portfolio/internal/adapters/httpapi"
	memmemberrepo "github.com/edta-team/portfolio/internal/adapters/memory/memberrepo"
	"github.com/edta-team/portfolio/internal/adapters/roster"
	"github.com/edta-team/portfolio/internal/app/portfolio"
	"github.com/edta-team/portfolio/internal/domain"
	"github.com/edta-team/portfolio/internal/platform/auth/password"
	platformclock "github.com/edta-team/portfolio/internal/platform/clock"
	"github.com/edta-team/portfolio/internal/platform/config"
	"github.com/edta-team/portfolio/internal/platform/imagecodec"
	"github.com/edta-team/portfolio/internal/platform/logging"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	rosterPath := pflag.String("roster", "", "roster YAML file (overrides ROSTER_PATH)")
	port := pflag.String("port", "", "listen port (overrides PORT)")
	secureCookie := pflag.Bool("secure-cookie", false, "mark the session cookie Secure (HTTPS only)")
	pflag.Parse()

	// A missing dotenv file is fine; the environment alone is enough.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	if *rosterPath != "" {
		cfg.RosterPath = *rosterPath
	}
	if *port != "" {
		cfg.Port = *port
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	members, err := loadRoster(cfg.RosterPath)
	if err != nil {
		log.WithError(err).Fatal("load roster")
	}
	repo, err := memmemberrepo.NewSeededRepo(context.Background(), members)
	if err != nil {
		log.WithError(err).Fatal("seed member store")
	}

	matcher, err := password.ForMode(cfg.PasswordMode)
	if err != nil {
		log.WithError(err).Fatal("invalid password mode")
	}

	clk := platformclock.NewSystemClock(cfg.Location)
	reg := portfolio.NewRegistry(portfolio.Deps{
		Repo:      repo,
		Clock:     clk,
		Passwords: matcher,
		Decoder:   imagecodec.NewDataURLDecoder(cfg.MaxImageBytes),
		Logger:    log,
	}, cfg.SessionIdleTTL)

	api := httpapi.NewServer(portfolio.NewProjector(repo, clk), log)
	// Leave room for the multipart envelope around the image itself.
	api.MaxUploadBytes = cfg.MaxImageBytes + 1<<20

	handler := httpapi.NewRouterWithOptions(api, reg, httpapi.RouterOptions{
		Logger:  log,
		Session: httpapi.SessionOptions{Secure: *secureCookie},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, reg, cfg.SessionIdleTTL, log)

	go func() {
		log.WithFields(logrus.Fields{
			"port":          cfg.Port,
			"members":       len(members),
			"password_mode": cfg.PasswordMode,
		}).Info("portfolio listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func loadRoster(path string) ([]domain.Member, error) {
	if path == "" {
		return roster.Default()
	}
	return roster.Load(path)
}

// sweepSessions drops idle sessions until ctx ends.
func sweepSessions(ctx context.Context, reg *portfolio.Registry, ttl time.Duration, log logrus.FieldLogger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := reg.Sweep(); n > 0 {
				log.WithField("expired", n).Debug("idle sessions swept")
			}
		}
	}
}
