// Package monitor periodically checks that the database is reachable and logs transitions.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hongminglow/pos-audit-be/internal/storage"
)

const checkTimeout = 5 * time.Second

// Monitor pings a store on a cron schedule.
type Monitor struct {
	cron   *cron.Cron
	db     storage.Pinger
	logger *zap.Logger

	mu        sync.Mutex
	reachable *bool
}

// New creates a monitor. It does nothing until Start.
func New(db storage.Pinger, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		db:     db,
		logger: logger,
	}
}

// Start schedules the check with a standard cron spec or a descriptor such as "@every 1m".
func (m *Monitor) Start(schedule string) error {
	if _, err := m.cron.AddFunc(schedule, m.Check); err != nil {
		return fmt.Errorf("schedule health check %q: %w", schedule, err)
	}
	m.logger.Info("starting database monitor", zap.String("schedule", schedule))
	m.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info("database monitor stopped")
}

// Check pings once. Failures are logged every time; recovery is logged once.
func (m *Monitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	err := m.db.Ping(ctx)

	m.mu.Lock()
	previous := m.reachable
	ok := err == nil
	m.reachable = &ok
	m.mu.Unlock()

	switch {
	case err != nil:
		m.logger.Error("database unreachable", zap.Error(err))
	case previous == nil || !*previous:
		m.logger.Info("database reachable")
	default:
		m.logger.Debug("database reachable")
	}
}
