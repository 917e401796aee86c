package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazypower/soulgatchi/internal/config"
	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/server"
	"github.com/lazypower/soulgatchi/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pet simulation and its HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := newLogger(debugLog || cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	gw := store.NewGateway(db, log)
	eng := engine.New(engine.Options{
		Gateway: gw,
		Journal: gw,
		Logger:  log,
		Rules:   rulesFrom(cfg.Simulation),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Start(ctx)
	defer eng.Stop()

	srv := server.New(db, eng, log, VersionString())
	addr := cfg.ListenAddr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("soulgatchi serving", zap.String("addr", addr), zap.String("db", dbPath))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func rulesFrom(sim config.SimulationConfig) engine.Rules {
	return engine.Rules{
		Baseline:           sim.Baseline,
		DecayCheckInterval: sim.DecayCheckInterval,
		DecayWindow:        sim.DecayWindow,
		AgeInterval:        sim.AgeInterval,
		DailyRollover:      sim.DailyRollover,
		DefaultName:        sim.DefaultName,
		DefaultEmoji:       sim.DefaultEmoji,
	}
}
