package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/app"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	application, err := app.NewApplication(config.GetConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer application.Close()

	metricsAddr := application.Cf.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = ":2112"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    metricsAddr,
		Handler: mux,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	application.Logger.Info().Str("metrics_addr", metricsAddr).Msg("storefront started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
