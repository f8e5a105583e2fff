package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/kirillkom/ai-interview-coach/internal/adapters/http"
	"github.com/kirillkom/ai-interview-coach/internal/bootstrap"
	"github.com/kirillkom/ai-interview-coach/internal/config"
	"github.com/kirillkom/ai-interview-coach/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logging.Setup("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.New(cfg)
	go app.Sessions.SweepLoop(ctx, 5*time.Minute)

	router := httpadapter.NewRouter(
		app.InterviewUC,
		app.Metrics,
		cfg.APIRateLimitRPS,
		cfg.APIRateLimitBurst,
		cfg.MaxUploadBytes,
	).Handler()
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
		// No write timeout: a slow local model legitimately holds the
		// connection open for the whole generation round trip.
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("api shutdown error: %v", err)
	}
}
