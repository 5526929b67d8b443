package workers

import (
	"context"
	"log/slog"
	"time"

	"batepapo/contract"
)

// EvictionWorker periodically sweeps the presence registry and removes
// participants that stopped sending status pings. The registry announces
// each departure on the message log.
//
// Sweeps never overlap: a single goroutine consumes the ticker, and Go
// tickers drop intermediate ticks when the receiver is slow, so a long
// sweep simply skips the ticks it missed.
type EvictionWorker struct {
	log          *slog.Logger
	participants contract.IParticipantRepository
	interval     time.Duration
	threshold    time.Duration
}

func NewEvictionWorker(
	log *slog.Logger,
	participants contract.IParticipantRepository,
	interval time.Duration,
	threshold time.Duration,
) *EvictionWorker {
	return &EvictionWorker{
		log:          log,
		participants: participants,
		interval:     interval,
		threshold:    threshold,
	}
}

// Run executes the sweep loop until the context is canceled.
// A failing sweep is logged and the worker waits for the next tick;
// it never terminates the process.
func (w *EvictionWorker) Run(ctx context.Context) error {
	w.log.Info("Starting eviction worker", "interval", w.interval, "threshold", w.threshold)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := time.Now()
			evicted, err := w.participants.EvictStale(w.threshold, now)
			if err != nil {
				w.log.Error("Eviction sweep failed", "err", err)
				continue
			}
			if len(evicted) > 0 {
				w.log.Info("Evicted silent participants", "names", evicted)
			}
		}
	}
}
