// Package alerts periodically reports items whose available stock has
// dropped to their reorder threshold.
package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// JobName identifies the low-stock sweep in the scheduler.
const JobName = "low-stock-sweep"

// Scheduler runs the low-stock sweep on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	db        *sql.DB
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a scheduler that sweeps every interval, starting as soon as
// Start is called. An interval of zero registers no job.
func New(db *sql.DB, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if interval < 0 {
		return nil, fmt.Errorf("low-stock interval cannot be negative: %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		scheduler: scheduler,
		db:        db,
		logger:    logger.With("job", JobName),
		ctx:       ctx,
		cancel:    cancel,
	}

	if interval == 0 {
		return s, nil
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		scheduler.Shutdown()
		return nil, fmt.Errorf("registering %s: %w", JobName, err)
	}

	return s, nil
}

// Start begins running scheduled sweeps in the background.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop cancels a running sweep and waits for the scheduler to shut down.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.scheduler.Shutdown()
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) run() {
	if _, err := s.Sweep(s.ctx); err != nil && s.ctx.Err() == nil {
		s.logger.Error("low-stock sweep failed", "error", err)
	}
}

// Sweep logs one warning per low-stock item and returns those items.
func (s *Scheduler) Sweep(ctx context.Context) ([]model.Item, error) {
	items, err := store.ListLowStockItems(ctx, s.db)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		s.logger.Warn("low stock",
			"item", item.SKU,
			"name", item.Name,
			"available", item.QuantityAvailable,
			"threshold", item.MinStockThreshold,
			"location", item.Location,
		)
	}
	s.logger.Debug("low-stock sweep finished", "items", len(items))

	return items, nil
}
