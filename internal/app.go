package internal

import (
	"context"
	"fmt"
	"frog-pond/reaction"
	"frog-pond/repositories"
	"frog-pond/runtime"
	"frog-pond/runtime/workers"
	"frog-pond/sink"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// App bundles everything a surface needs to drive the pond.
type App struct {
	log          *slog.Logger
	db           *badger.DB
	Pond         *runtime.Pond
	Orchestrator *runtime.Orchestrator
	Repository   repositories.MessageRepository
	Server       *Server
}

// NewApp opens the in-memory message store and prepares the pond.
// Nothing outlives the process: the chat log goes away with it.
func NewApp(config Config, log *slog.Logger) (*App, error) {
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}

	repository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, supervisor, runtime.NewRegistry(), reaction.NewRandomSource(),
		runtime.OrchestratorConfig{
			SummonThreshold: config.SummonThreshold,
			RibbitWindow:    config.RibbitWindow,
			BufferSize:      config.BufferSize,
			SinkTimeout:     config.SinkTimeout,
		}).
		Add(sink.NewDiskSink(repository, log))

	pond, err := orchestrator.Prepare()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pond preparation failed: %w", err)
	}

	return &App{
		log:          log,
		db:           db,
		Pond:         pond,
		Orchestrator: orchestrator,
		Repository:   repository,
		Server:       NewServer(log, pond, repository),
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.Orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}
	return nil
}

// Close stops the workers first so the last snapshots reach the store before it closes.
func (a *App) Close() {
	a.Orchestrator.Stop()
	a.log.Info("Closing BadgerDB...")
	_ = a.db.Close()
}
