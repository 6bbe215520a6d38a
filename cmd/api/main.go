package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/alert"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/audit"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/httpapi"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/obs"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/store"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/store/pg"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/stream"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	ctx := context.Background()

	// State store: Postgres when a DSN is configured, a state directory
	// as the file-backed fallback, memory otherwise.
	var (
		kv    store.KV
		probe httpapi.ReadyProbe
	)
	switch {
	case os.Getenv("VITALVIDA_PG_DSN") != "":
		pgStore, err := pg.Open(os.Getenv("VITALVIDA_PG_DSN"))
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer pgStore.Close()
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		kv = pgStore
		probe = httpapi.ReadyProbe{DB: pgStore.DB()}
	case os.Getenv("VITALVIDA_STATE_DIR") != "":
		fileStore, err := store.NewFile(os.Getenv("VITALVIDA_STATE_DIR"))
		if err != nil {
			log.Fatalf("open state dir: %v", err)
		}
		kv = fileStore
	default:
		kv = store.NewMemory()
	}

	events := stream.New()
	trail := audit.New(kv, audit.WithPublisher(events))
	trail.Load(ctx)

	creds, err := auth.DefaultCredentials()
	if err != nil {
		log.Fatalf("seed credentials: %v", err)
	}
	sessions := auth.NewSessionManager(creds, trail, kv)
	sessions.Restore(ctx)

	notifier := alert.NewNotifier(splitList(os.Getenv("VITALVIDA_ALERT_RECIPIENTS")))
	alerts := alert.NewService(trail, notifier)
	if webhookURL := os.Getenv("VITALVIDA_WEBHOOK_URL"); webhookURL != "" {
		if err := alerts.SetWebhook(ctx, webhookURL, "system"); err != nil {
			log.Fatalf("configure webhook: %v", err)
		}
	}

	api := httpapi.New(httpapi.Config{
		Sessions: sessions,
		Trail:    trail,
		Alerts:   alerts,
		Events:   events,
		Ready:    probe,
		Version:  version,
	})

	addr := os.Getenv("VITALVIDA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// No write deadline: the audit SSE stream stays open indefinitely.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting vitalvida-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Println("Stopped")
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
