package taskflow

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cron fires the three daily batch jobs once per day at the configured hour.
// All three are idempotent, so a missed or doubled tick is harmless.
type Cron struct {
	mu      sync.RWMutex
	service *Service
	hour    int
	logger  *slog.Logger

	lastRunDay string
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewCron creates a runner that fires at the given local hour (0-23).
func NewCron(service *Service, hour int, logger *slog.Logger) *Cron {
	return &Cron{
		service: service,
		hour:    hour,
		logger:  logger,
	}
}

// Start begins the runner loop.
func (c *Cron) Start(ctx context.Context) {
	c.mu.Lock()
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.tick()
			}
		}
	}()
}

// Stop gracefully stops the runner.
func (c *Cron) Stop() {
	c.mu.RLock()
	cancel := c.cancel
	done := c.done
	c.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (c *Cron) tick() {
	now := c.service.now()
	if now.Hour() != c.hour {
		return
	}

	today := DateOf(now)
	c.mu.Lock()
	if c.lastRunDay == today {
		c.mu.Unlock()
		return
	}
	c.lastRunDay = today
	c.mu.Unlock()

	c.RunDaily()
}

// RunDaily executes sweep, schedule, and allowance in order. Sweeping first
// means instances due yesterday are flagged before today's generation.
func (c *Cron) RunDaily() {
	if _, err := c.service.SweepOverdue(); err != nil {
		c.logger.Error("daily sweep failed", "error", err)
	}
	if _, err := c.service.ScheduleRecurringInstances(); err != nil {
		c.logger.Error("daily scheduling failed", "error", err)
	}
	if _, err := c.service.CreditWeeklyAllowance(); err != nil {
		c.logger.Error("daily allowance run failed", "error", err)
	}
}
