package runtime

import (
	"context"
	"embed"
	"fmt"
	"frog-pond/contract"
	"frog-pond/domain"
	"frog-pond/reaction"
	"frog-pond/runtime/workers"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

//go:embed keywords/*
var keywordsFolder embed.FS

type OrchestratorConfig struct {
	SummonThreshold int
	RibbitWindow    time.Duration
	BufferSize      int
	SinkTimeout     time.Duration
}

// Orchestrator wires the pond, its scheduler and the supervised workers together.
// It holds no frog logic of its own.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	config         OrchestratorConfig
	random         reaction.RandomSource
	supervisor     contract.ISupervisor
	registry       *Registry
	permanentSinks []contract.SnapshotSink
	snapshots      chan domain.State
	scheduler      *Scheduler
	pond           *Pond
	cancel         context.CancelFunc
	done           chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry *Registry,
	random reaction.RandomSource, config OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		log:        log,
		config:     config,
		random:     random,
		supervisor: supervisor,
		registry:   registry,
		snapshots:  make(chan domain.State, config.BufferSize),
		scheduler:  NewScheduler(),
	}
}

// Add registers sinks that receive every snapshot for the whole process lifetime.
func (o *Orchestrator) Add(sinks ...contract.SnapshotSink) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
	return o
}

// Prepare loads the keywords and builds the pond. It must run before Start.
func (o *Orchestrator) Prepare() (*Pond, error) {
	loader := NewKeywordLoader(keywordsFolder)
	keywords, err := loader.LoadAll("keywords")
	if err != nil {
		return nil, fmt.Errorf("keywords loading failed: %w", err)
	}
	triggers := lo.Map(lo.Keys(keywords), func(item reaction.Trigger, _ int) string { return string(item) })
	o.log.Info(fmt.Sprintf("%d keyword files loaded [%s]", len(keywords), strings.Join(triggers, ",")))

	detector, err := reaction.NewDetector(keywords)
	if err != nil {
		return nil, err
	}
	reducer, err := reaction.NewReducer(detector, o.random, o.config.SummonThreshold)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.pond = NewPond(o.log, reducer, o.scheduler, o.snapshots)
	return o.pond, nil
}

// Start registers the workers and runs the supervisor in the background.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.pond == nil {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator not prepared")
	}
	fanout := workers.NewSnapshotFanout(o.log, o.snapshots, o.config.SinkTimeout).
		Add(o.permanentSinks...).
		WithSource(o.registry)
	windowReset := workers.NewWindowResetWorker(o.log, o.pond, o.config.RibbitWindow)
	o.supervisor.Add(fanout, windowReset)
	supervisedCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.done = make(chan struct{})
	done := o.done
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers",
		"threshold", o.config.SummonThreshold, "window", o.config.RibbitWindow)
	go func() {
		defer close(done)
		o.supervisor.Run(supervisedCtx)
	}()
	return nil
}

// Stop cancels the workers and pending reversions, then waits for the supervisor.
func (o *Orchestrator) Stop() {
	o.scheduler.Stop()
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (o *Orchestrator) Registry() *Registry { return o.registry }
