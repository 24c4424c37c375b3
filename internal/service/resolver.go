package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"media_syncer/internal/domain"
)

// Resolver returns the local record for a ref, fetching and reconciling it
// from the catalog when it is not stored yet. Concurrent resolves of the
// same ref share one fetch.
type Resolver struct {
	contents   ContentStore
	catalog    Catalog
	reconciler *Reconciler
	logger     *slog.Logger

	group        singleflight.Group
	fetchTimeout time.Duration
}

const defaultFetchTimeout = 2 * time.Minute

func NewResolver(contents ContentStore, catalog Catalog, reconciler *Reconciler, logger *slog.Logger) *Resolver {
	return &Resolver{
		contents:     contents,
		catalog:      catalog,
		reconciler:   reconciler,
		logger:       logger.With("component", "resolver"),
		fetchTimeout: defaultFetchTimeout,
	}
}

// Resolve reports fetched=true when the record had to be pulled from the catalog.
func (r *Resolver) Resolve(ctx context.Context, ref domain.ContentRef) (*domain.Content, bool, error) {
	content, err := r.contents.Get(ctx, ref)
	if err != nil {
		return nil, false, fmt.Errorf("get content %s: %w", ref, err)
	}
	if content != nil {
		return content, false, nil
	}

	ch := r.group.DoChan(ref.String(), func() (any, error) {
		// The shared fetch outlives the caller that started it. Each caller
		// stops waiting on its own ctx below.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		incoming, err := r.catalog.FetchOne(fetchCtx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch content %s: %w", ref, err)
		}
		// The catalog is trusted for the payload but not for the key.
		incoming.Ref = ref

		stored, _, err := r.reconciler.ReconcileContent(fetchCtx, *incoming, ReconcileOptions{})
		if err != nil {
			return nil, err
		}
		return stored, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("resolve content %s: %w", ref, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, false, res.Err
	}
	if res.Shared {
		r.logger.Debug("shared catalog fetch", "ref", ref.String())
	}

	out := *res.Val.(*domain.Content)
	return &out, true, nil
}
