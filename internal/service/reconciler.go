package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"media_syncer/internal/domain"
	"media_syncer/internal/merge"
	"media_syncer/internal/metrics"
)

type ReconcileOptions struct {
	// ManualRefresh marks a user initiated refresh, which restamps the cover
	// timestamp even when the poster URL did not change.
	ManualRefresh bool
}

// Reconciler folds remote records into the local store. It keeps no state
// between calls so concurrent use for the same or different refs is safe.
type Reconciler struct {
	contents  ContentStore
	credits   CreditStore
	trailers  TrailerStore
	covers    CoverCache
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewReconciler(
	contents ContentStore,
	credits CreditStore,
	trailers TrailerStore,
	covers CoverCache,
	publisher Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		contents:  contents,
		credits:   credits,
		trailers:  trailers,
		covers:    covers,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "reconciler"),
		now:       time.Now,
	}
}

func (r *Reconciler) ReconcileContent(ctx context.Context, incoming domain.Content, opts ReconcileOptions) (*domain.Content, domain.ReconcileOutcome, error) {
	ref := incoming.Ref

	existing, err := r.contents.Get(ctx, ref)
	if err != nil {
		r.metrics.ObserveReconcileError("content")
		return nil, "", fmt.Errorf("get content %s: %w", ref, err)
	}

	mopts := merge.Options{
		ManualRefresh:  opts.ManualRefresh,
		HasCustomCover: r.covers != nil && r.covers.HasCustomCover(ref),
		Now:            r.now(),
	}

	if existing == nil {
		merged := merge.Content(nil, incoming, mopts)
		id, err := r.contents.Insert(ctx, &merged)
		switch {
		case err == nil:
			merged.ID = id
			r.done(ctx, &merged, domain.OutcomeInserted)
			return &merged, domain.OutcomeInserted, nil
		case errors.Is(err, domain.ErrConflict):
			// Another caller inserted the same ref first; merge into its row.
			existing, err = r.contents.Get(ctx, ref)
			if err != nil {
				r.metrics.ObserveReconcileError("content")
				return nil, "", fmt.Errorf("get content %s after conflict: %w", ref, err)
			}
			if existing == nil {
				r.metrics.ObserveReconcileError("content")
				return nil, "", fmt.Errorf("insert content %s: %w: %w", ref, domain.ErrStoreWrite, domain.ErrConflict)
			}
		default:
			r.metrics.ObserveReconcileError("content")
			return nil, "", fmt.Errorf("insert content %s: %w: %w", ref, domain.ErrStoreWrite, err)
		}
	}

	merged := merge.Content(existing, incoming, mopts)
	update := merge.DiffContent(*existing, merged)
	if update.IsEmpty() {
		r.metrics.ObserveReconcile("content", string(domain.OutcomeUnchanged))
		return &merged, domain.OutcomeUnchanged, nil
	}

	if err := r.contents.Update(ctx, update); err != nil {
		r.metrics.ObserveReconcileError("content")
		return nil, "", fmt.Errorf("update content %s: %w: %w", ref, domain.ErrStoreWrite, err)
	}

	r.done(ctx, &merged, domain.OutcomeUpdated)
	return &merged, domain.OutcomeUpdated, nil
}

// ReconcileCredit stores or merges a credit. The linked content must already
// be stored; its title and poster are copied onto a newly inserted credit.
func (r *Reconciler) ReconcileCredit(ctx context.Context, incoming domain.Credit) (*domain.Credit, domain.ReconcileOutcome, error) {
	existing, err := r.credits.Get(ctx, incoming.ID)
	if err != nil {
		r.metrics.ObserveReconcileError("credit")
		return nil, "", fmt.Errorf("get credit %s: %w", incoming.ID, err)
	}

	if existing == nil {
		content, err := r.contents.Get(ctx, incoming.Content)
		if err != nil {
			r.metrics.ObserveReconcileError("credit")
			return nil, "", fmt.Errorf("get content %s for credit %s: %w", incoming.Content, incoming.ID, err)
		}
		if content == nil {
			return nil, "", fmt.Errorf("credit %s: content %s: %w", incoming.ID, incoming.Content, domain.ErrNotFound)
		}

		merged := merge.Credit(nil, incoming)
		merged.ContentTitle = content.Title
		merged.ContentPoster = content.PosterURL

		err = r.credits.Insert(ctx, &merged)
		switch {
		case err == nil:
			r.metrics.ObserveReconcile("credit", string(domain.OutcomeInserted))
			return &merged, domain.OutcomeInserted, nil
		case errors.Is(err, domain.ErrConflict):
			existing, err = r.credits.Get(ctx, incoming.ID)
			if err != nil || existing == nil {
				r.metrics.ObserveReconcileError("credit")
				return nil, "", fmt.Errorf("insert credit %s: %w: %w", incoming.ID, domain.ErrStoreWrite, domain.ErrConflict)
			}
		default:
			r.metrics.ObserveReconcileError("credit")
			return nil, "", fmt.Errorf("insert credit %s: %w: %w", incoming.ID, domain.ErrStoreWrite, err)
		}
	}

	merged := merge.Credit(existing, incoming)
	if !merge.CreditChanged(*existing, merged) {
		r.metrics.ObserveReconcile("credit", string(domain.OutcomeUnchanged))
		return &merged, domain.OutcomeUnchanged, nil
	}

	if err := r.credits.Update(ctx, &merged); err != nil {
		r.metrics.ObserveReconcileError("credit")
		return nil, "", fmt.Errorf("update credit %s: %w: %w", incoming.ID, domain.ErrStoreWrite, err)
	}

	r.metrics.ObserveReconcile("credit", string(domain.OutcomeUpdated))
	return &merged, domain.OutcomeUpdated, nil
}

func (r *Reconciler) ReconcileTrailer(ctx context.Context, incoming domain.Trailer) (*domain.Trailer, domain.ReconcileOutcome, error) {
	existing, err := r.trailers.Get(ctx, incoming.ID)
	if err != nil {
		r.metrics.ObserveReconcileError("trailer")
		return nil, "", fmt.Errorf("get trailer %s: %w", incoming.ID, err)
	}

	if existing == nil {
		content, err := r.contents.Get(ctx, incoming.Content)
		if err != nil {
			r.metrics.ObserveReconcileError("trailer")
			return nil, "", fmt.Errorf("get content %s for trailer %s: %w", incoming.Content, incoming.ID, err)
		}
		if content == nil {
			return nil, "", fmt.Errorf("trailer %s: content %s: %w", incoming.ID, incoming.Content, domain.ErrNotFound)
		}

		merged := merge.Trailer(nil, incoming)
		err = r.trailers.Insert(ctx, &merged)
		switch {
		case err == nil:
			r.metrics.ObserveReconcile("trailer", string(domain.OutcomeInserted))
			return &merged, domain.OutcomeInserted, nil
		case errors.Is(err, domain.ErrConflict):
			existing, err = r.trailers.Get(ctx, incoming.ID)
			if err != nil || existing == nil {
				r.metrics.ObserveReconcileError("trailer")
				return nil, "", fmt.Errorf("insert trailer %s: %w: %w", incoming.ID, domain.ErrStoreWrite, domain.ErrConflict)
			}
		default:
			r.metrics.ObserveReconcileError("trailer")
			return nil, "", fmt.Errorf("insert trailer %s: %w: %w", incoming.ID, domain.ErrStoreWrite, err)
		}
	}

	merged := merge.Trailer(existing, incoming)
	if !merge.TrailerChanged(*existing, merged) {
		r.metrics.ObserveReconcile("trailer", string(domain.OutcomeUnchanged))
		return &merged, domain.OutcomeUnchanged, nil
	}

	if err := r.trailers.Update(ctx, &merged); err != nil {
		r.metrics.ObserveReconcileError("trailer")
		return nil, "", fmt.Errorf("update trailer %s: %w: %w", incoming.ID, domain.ErrStoreWrite, err)
	}

	r.metrics.ObserveReconcile("trailer", string(domain.OutcomeUpdated))
	return &merged, domain.OutcomeUpdated, nil
}

func (r *Reconciler) done(ctx context.Context, content *domain.Content, outcome domain.ReconcileOutcome) {
	r.metrics.ObserveReconcile("content", string(outcome))

	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, content, outcome); err != nil {
		r.logger.Warn("failed to publish content change",
			"ref", content.Ref.String(),
			"outcome", outcome,
			"error", err,
		)
	}
}
