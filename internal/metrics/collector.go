package metrics

import (
	"context"
	"time"

	"gallery-sorter/internal/logging"
)

// StatsProvider reports the number of persisted sorting overrides.
type StatsProvider interface {
	Backend() string
	Count(ctx context.Context) (int, error)
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.interval)
	defer cancel()

	count, err := c.statsProvider.Count(ctx)
	if err != nil {
		logging.Warn("Metrics collection failed for %s override store: %v", c.statsProvider.Backend(), err)
		return
	}

	OverridesStored.WithLabelValues(c.statsProvider.Backend()).Set(float64(count))
	logging.Debug("Metrics collected: backend=%s, overrides=%d", c.statsProvider.Backend(), count)
}
