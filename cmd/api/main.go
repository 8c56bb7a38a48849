package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vekt0r-github/osu-heardle/internal/adapters/osu"
	"github.com/vekt0r-github/osu-heardle/internal/adapters/rest"
	"github.com/vekt0r-github/osu-heardle/internal/adapters/sqlite"
	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/services"
	"github.com/vekt0r-github/osu-heardle/internal/worker"
)

const releaseVersion = "0.1.0"

// logf prints only when --verbose is set.
func logf(cfg *Config, format string, v ...any) {
	if cfg.verbose {
		log.Printf(format, v...)
	}
}

func main() {
	log.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func serve(ctx context.Context, cfg *Config) error {
	// 1. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	history, err := sqlite.NewAdapter(cfg.dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer history.Close()

	// -- osu! Catalog Adapter
	catalog := osu.NewClient(nil, osu.Config{
		BaseURL:      cfg.osuBaseURL,
		BaseURLV2:    cfg.osuBaseURLV2,
		TokenURL:     cfg.osuTokenURL,
		APIKey:       cfg.osuAPIKey,
		ClientID:     cfg.osuClientID,
		ClientSecret: cfg.osuClientSecret,
		MaxRetries:   cfg.httpRetries,
		BaseBackoff:  cfg.httpBackoff,
	})

	// 2. Initialize Core Logic (The Driver)
	// We inject the specific adapters into the agnostic services.
	selector := services.NewSelector(catalog, services.SelectorConfig{
		PopularityExponent: cfg.popularityExponent,
		MaxRetries:         cfg.selectionRetries,
	})

	// Completed rounds are persisted write-behind so guess handling never
	// waits on sqlite.
	pool := worker.NewPool(history, cfg.queueSize, 5*time.Second)
	pool.Start(cfg.workers)
	defer pool.Stop()

	manager := services.NewManager(selector, history, func(roomCode string, summary domain.RoundSummary) {
		pool.Submit(worker.Job{RoomCode: roomCode, Summary: summary})
	})

	// 3. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(manager)

	// 4. Start the Server
	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	logf(cfg, "------------------------------------------------")
	logf(cfg, "🎵 osu!heardle API is running on http://%s", addr)
	logf(cfg, "------------------------------------------------")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
	return nil
}
