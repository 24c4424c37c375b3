package service

import (
	"context"
	"fmt"
	"log/slog"

	"media_syncer/internal/domain"
)

// RefreshResult summarizes a detail refresh. Credit and trailer failures are
// counted but do not fail the refresh.
type RefreshResult struct {
	Content  *domain.Content
	Outcome  domain.ReconcileOutcome
	Credits  int
	Trailers int
	Errors   int
}

// Refresher runs the user initiated detail refresh of a single record.
type Refresher struct {
	catalog    Catalog
	reconciler *Reconciler
	logger     *slog.Logger
}

func NewRefresher(catalog Catalog, reconciler *Reconciler, logger *slog.Logger) *Refresher {
	return &Refresher{
		catalog:    catalog,
		reconciler: reconciler,
		logger:     logger.With("component", "refresher"),
	}
}

func (r *Refresher) Refresh(ctx context.Context, ref domain.ContentRef) (*RefreshResult, error) {
	incoming, err := r.catalog.FetchOne(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch content %s: %w", ref, err)
	}
	incoming.Ref = ref

	content, outcome, err := r.reconciler.ReconcileContent(ctx, *incoming, ReconcileOptions{ManualRefresh: true})
	if err != nil {
		return nil, fmt.Errorf("reconcile content %s: %w", ref, err)
	}

	res := &RefreshResult{Content: content, Outcome: outcome}
	logger := r.logger.With("ref", ref.String())

	credits, err := r.catalog.FetchCredits(ctx, ref)
	if err != nil {
		res.Errors++
		logger.Warn("failed to fetch credits", "error", err)
	}
	for _, credit := range credits {
		credit.Content = ref
		if _, _, err := r.reconciler.ReconcileCredit(ctx, credit); err != nil {
			res.Errors++
			logger.Warn("failed to reconcile credit", "credit_id", credit.ID, "error", err)
			continue
		}
		res.Credits++
	}

	trailers, err := r.catalog.FetchTrailers(ctx, ref)
	if err != nil {
		res.Errors++
		logger.Warn("failed to fetch trailers", "error", err)
	}
	for _, trailer := range trailers {
		trailer.Content = ref
		if _, _, err := r.reconciler.ReconcileTrailer(ctx, trailer); err != nil {
			res.Errors++
			logger.Warn("failed to reconcile trailer", "trailer_id", trailer.ID, "error", err)
			continue
		}
		res.Trailers++
	}

	logger.Info("content refreshed",
		"outcome", outcome,
		"credits", res.Credits,
		"trailers", res.Trailers,
		"errors", res.Errors,
	)
	return res, nil
}
