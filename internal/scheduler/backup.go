// Package scheduler runs quay's background loops.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quay/internal/domain"
	"quay/internal/logger"
	"quay/internal/nav"
	"quay/internal/store"
)

// Snapshot is what gets written under the data_backup key.
type Snapshot struct {
	TakenAt time.Time   `json:"taken_at"`
	Data    domain.Data `json:"data"`
}

// Backup periodically snapshots the navigation data into a backup key, so a
// botched admin save can be recovered by hand from the store.
type Backup struct {
	kv            store.KV
	nav           *nav.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewBackup(
	kv store.KV,
	navSvc *nav.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Backup {
	return &Backup{
		kv:            kv,
		nav:           navSvc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start takes an initial snapshot, then runs one on every tick and on every
// manual trigger until Stop is called or ctx is canceled. An interval <= 0
// disables the ticker; manual triggers still work.
func (b *Backup) Start(ctx context.Context) error {
	if err := b.Snapshot(ctx); err != nil {
		return fmt.Errorf("initial backup failed: %w", err)
	}

	var tick <-chan time.Time
	if b.interval > 0 {
		ticker := time.NewTicker(b.interval)
		tick = ticker.C
		go func() {
			<-b.stopCh
			ticker.Stop()
		}()
	}

	go func() {
		for {
			select {
			case <-tick:
				if err := b.Snapshot(ctx); err != nil {
					b.logger.Error("scheduled backup failed", logger.Error(err))
				}
			case <-b.manualTrigger:
				b.logger.Info("manual backup triggered")
				if err := b.Snapshot(ctx); err != nil {
					b.logger.Error("manual backup failed", logger.Error(err))
				}
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the loop.
func (b *Backup) Stop() {
	close(b.stopCh)
}

// Snapshot writes the current data set under the backup key.
func (b *Backup) Snapshot(ctx context.Context) error {
	snap := Snapshot{
		TakenAt: time.Now().UTC(),
		Data:    b.nav.Get(ctx),
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := b.kv.Put(ctx, store.KeyDataBackup, string(raw)); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	b.logger.Debug("data snapshot written",
		logger.Int("categories", len(snap.Data.Categories)),
		logger.Int("sites", len(snap.Data.Sites)))
	return nil
}
