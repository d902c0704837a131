package cmd

import (
	"sync/atomic"
	"time"
)

// progressReporter counts completed columns and logs the percentage on a
// ticker. Increment is called from render workers and never blocks.
type progressReporter struct {
	total    int64
	done     atomic.Int64
	interval time.Duration
	stopCh   chan struct{}
	exitedCh chan struct{}
}

func newProgressReporter(total int, interval time.Duration) *progressReporter {
	return &progressReporter{
		total:    int64(total),
		interval: interval,
		stopCh:   make(chan struct{}),
		exitedCh: make(chan struct{}),
	}
}

// Increment records one finished column
func (p *progressReporter) Increment() {
	p.done.Add(1)
}

// Percent returns the completed share in [0, 100]
func (p *progressReporter) Percent() float64 {
	if p.total <= 0 {
		return 100
	}
	return 100 * float64(p.done.Load()) / float64(p.total)
}

// Start launches the logging goroutine
func (p *progressReporter) Start() {
	go func() {
		defer close(p.exitedCh)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				logger.Infof("rendering %5.1f%% (%d/%d columns)", p.Percent(), p.done.Load(), p.total)
			case <-p.stopCh:
				return
			}
		}
	}()
}

// Stop ends the logging goroutine and waits for it to exit
func (p *progressReporter) Stop() {
	close(p.stopCh)
	<-p.exitedCh
}
