// Package worker mirrors the persisted ledger snapshot to a remote
// spreadsheet. It reacts to snapshot-saved messages and also runs a
// periodic catch-up pass for anything missed while offline.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"spendera/internal/amqp"
	"spendera/internal/ledger"
	"spendera/internal/sheets"
)

type MirrorWorker struct {
	repo     ledger.SnapshotRepository
	mirror   sheets.LedgerMirror
	client   *amqp.Client
	interval time.Duration
}

func NewMirrorWorker(repo ledger.SnapshotRepository, mirror sheets.LedgerMirror, client *amqp.Client, interval time.Duration) *MirrorWorker {
	return &MirrorWorker{
		repo:     repo,
		mirror:   mirror,
		client:   client,
		interval: interval,
	}
}

// Run consumes snapshot messages and ticks a periodic catch-up mirror
// until the context is cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := w.client.ConsumeSnapshotSaved(ctx, w.HandleSnapshotSaved)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.MirrorOnce(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic mirror failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleSnapshotSaved processes one snapshot-saved message.
func (w *MirrorWorker) HandleSnapshotSaved(ctx context.Context, msg *amqp.SnapshotSavedMessage) error {
	slog.InfoContext(ctx, "Processing snapshot message", "revision", msg.Revision)
	return w.MirrorOnce(ctx)
}

// MirrorOnce reloads the snapshot from storage and rewrites the mirror
// sheet. An erased slot mirrors as an empty ledger; a corrupt slot is
// skipped rather than propagated, matching the load contract.
func (w *MirrorWorker) MirrorOnce(ctx context.Context) error {
	snap, err := w.repo.Load(ctx)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		snap = ledger.Snapshot{}
	case errors.Is(err, ledger.ErrCorrupt):
		slog.WarnContext(ctx, "Snapshot corrupt, skipping mirror", "error", err)
		return nil
	case err != nil:
		return fmt.Errorf("load snapshot for mirror: %w", err)
	}

	if err := w.mirror.MirrorSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("mirror snapshot: %w", err)
	}
	return nil
}
