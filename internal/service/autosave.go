package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultAutoSaveInterval = 5 * time.Minute
	DefaultAutoSaveMinGap   = 30 * time.Second
)

// AutoSaver backs the tournament up on a fixed interval, and right after
// critical changes as long as the previous such save is at least minGap
// old. Nothing is saved while the tournament is still empty.
type AutoSaver struct {
	service  *TournamentService
	interval time.Duration
	critical *rate.Sometimes
	notify   chan struct{}
}

func NewAutoSaver(service *TournamentService, interval, minGap time.Duration) *AutoSaver {
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}
	if minGap <= 0 {
		minGap = DefaultAutoSaveMinGap
	}
	a := &AutoSaver{
		service:  service,
		interval: interval,
		critical: &rate.Sometimes{Interval: minGap},
		notify:   make(chan struct{}, 1),
	}
	service.OnCriticalChange(a.Notify)
	return a
}

// Notify asks for a save after a critical change. It never blocks.
func (a *AutoSaver) Notify() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Run saves until ctx is cancelled.
func (a *AutoSaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.save(ctx, "interval")
		case <-a.notify:
			a.critical.Do(func() {
				a.save(ctx, "critical change")
			})
		}
	}
}

// SaveNow saves immediately. It reports whether a backup was written.
func (a *AutoSaver) SaveNow(ctx context.Context) (bool, error) {
	if !a.service.HasData() {
		return false, nil
	}
	if _, err := a.service.SaveBackup(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (a *AutoSaver) save(ctx context.Context, reason string) {
	saved, err := a.SaveNow(ctx)
	if err != nil {
		slog.Error("auto-save failed", "reason", reason, "error", err)
		return
	}
	if saved {
		slog.Debug("auto-save completed", "reason", reason)
	}
}
