// Poold is the shielded-pool daemon entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccoin/shieldpool/internal/config"
	"github.com/ccoin/shieldpool/internal/pool"
	"github.com/ccoin/shieldpool/internal/poollog"
	"github.com/ccoin/shieldpool/internal/poolref"
	"github.com/ccoin/shieldpool/internal/storage"
	"github.com/ccoin/shieldpool/pkg/groth16verifier"
)

const banner = `
  shieldpool daemon
`

func main() {
	cfg := config.Parse()
	fmt.Print(banner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := poollog.New(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var (
		saveDescriptor func(context.Context, pool.Handle, pool.Descriptor) error
	)

	if cfg.UseMemoryStore {
		store := storage.NewMemoryStore()
		saveDescriptor = store.SaveDescriptor
	} else {
		dbCfg := &storage.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Database: cfg.DBName,
			SSLMode:  "disable",
			MaxConns: 20,
		}
		store, err := storage.NewPostgresStore(ctx, dbCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		saveDescriptor = store.SaveDescriptor
	}

	resolver := poolref.SeedResolver{}
	vault := poolref.NewLedgerVault()
	pairer := groth16verifier.LocalPairer{}
	sink := poollog.EventSink{Logger: logger}

	selfHandle, err := resolver.Resolve([]byte("pool"), []byte(cfg.DataDir))
	if err != nil {
		return fmt.Errorf("failed to resolve pool handle: %w", err)
	}

	engine := pool.NewEngine(selfHandle, vault, resolver, pairer, sink)

	ownerHandle, err := resolver.Resolve([]byte("owner"), []byte(cfg.OwnerSeed))
	if err != nil {
		return fmt.Errorf("failed to resolve owner handle: %w", err)
	}
	tokenHandle, err := resolver.Resolve([]byte("token"), []byte(cfg.TokenSeed))
	if err != nil {
		return fmt.Errorf("failed to resolve token identity handle: %w", err)
	}
	if err := engine.Initialize(cfg.TreeDepth, cfg.HistorySize, tokenHandle, ownerHandle); err != nil {
		return fmt.Errorf("failed to initialize pool: %w", err)
	}

	logger.Info("shieldpool daemon started")

	<-ctx.Done()

	if err := saveDescriptor(context.Background(), selfHandle, engine.Descriptor()); err != nil {
		logger.WithError(err).Warn("failed to persist descriptor on shutdown")
	}

	logger.Info("shieldpool daemon stopped")
	return nil
}
