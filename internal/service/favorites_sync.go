package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"media_syncer/internal/domain"
	"media_syncer/internal/metrics"
)

const FavoritesSyncJob = "favorites-sync"

// FavoritesSynchronizer reconciles local favorites with the user's remote
// favorites in two passes: local favorites unknown remotely are pushed, then
// every remote favorite is marked locally. Neither pass removes anything.
type FavoritesSynchronizer struct {
	remote   ListService
	contents ContentStore
	resolver *Resolver
	userID   string
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewFavoritesSynchronizer(
	remote ListService,
	contents ContentStore,
	resolver *Resolver,
	userID string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *FavoritesSynchronizer {
	return &FavoritesSynchronizer{
		remote:   remote,
		contents: contents,
		resolver: resolver,
		userID:   userID,
		metrics:  m,
		logger:   logger.With("component", "favorites_sync"),
		now:      time.Now,
	}
}

func (s *FavoritesSynchronizer) SyncFavorites(ctx context.Context) (*domain.SyncStats, error) {
	startTime := s.now()
	s.logger.Info("starting favorites sync")

	stats, err := s.syncFavorites(ctx)
	elapsed := s.now().Sub(startTime)
	itemErrors := 0
	if stats != nil {
		stats.Duration = elapsed
		itemErrors = stats.Errors
	}
	s.metrics.ObserveSync(FavoritesSyncJob, err, elapsed, itemErrors)
	if err != nil {
		return stats, err
	}

	s.logger.Info("favorites sync completed",
		"fetched", stats.Fetched,
		"pushed", stats.Pushed,
		"new", stats.New,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)
	return stats, nil
}

func (s *FavoritesSynchronizer) syncFavorites(ctx context.Context) (*domain.SyncStats, error) {
	rows, err := s.remote.GetFavorites(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("fetch remote favorites: %w", err)
	}

	stats := &domain.SyncStats{Job: FavoritesSyncJob, Fetched: len(rows)}

	remote := make(map[domain.ContentRef]struct{}, len(rows))
	refs := make([]domain.ContentRef, len(rows))
	refErrs := make([]error, len(rows))
	for i, row := range rows {
		refs[i], refErrs[i] = row.Ref()
		if refErrs[i] == nil {
			remote[refs[i]] = struct{}{}
		}
	}

	if err := s.push(ctx, remote, stats); err != nil {
		return stats, err
	}

	for i := range rows {
		if err := ctx.Err(); err != nil {
			stats.Skipped += len(rows) - i
			return stats, fmt.Errorf("pull favorites: %w", err)
		}

		if refErrs[i] != nil {
			stats.Errors++
			s.logger.Warn("skipping remote favorite", "index", i, "error", refErrs[i])
			continue
		}

		marked, fetched, err := s.pull(ctx, refs[i])
		switch {
		case err != nil:
			stats.Errors++
			s.logger.Warn("skipping remote favorite", "ref", refs[i].String(), "error", err)
		case !marked:
			stats.Skipped++
		default:
			stats.Updated++
			if fetched {
				stats.New++
			}
		}
	}

	return stats, nil
}

// push adds local favorites that are missing remotely. A failure to list the
// local favorites only skips this pass.
func (s *FavoritesSynchronizer) push(ctx context.Context, remote map[domain.ContentRef]struct{}, stats *domain.SyncStats) error {
	local, err := s.contents.ListFavorites(ctx)
	if err != nil {
		stats.Errors++
		s.logger.Error("failed to list local favorites, skipping push", "error", err)
		return nil
	}

	for _, c := range local {
		if _, ok := remote[c.Ref]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("push favorites: %w", err)
		}
		if err := s.remote.AddFavorite(ctx, c.Ref); err != nil {
			stats.Errors++
			s.logger.Warn("failed to push favorite", "ref", c.Ref.String(), "error", err)
			continue
		}
		stats.Pushed++
	}
	return nil
}

func (s *FavoritesSynchronizer) pull(ctx context.Context, ref domain.ContentRef) (marked, fetched bool, err error) {
	content, fetched, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return false, false, fmt.Errorf("resolve: %w", err)
	}
	if content.Favorite {
		return false, fetched, nil
	}

	favorite := true
	if err := s.contents.Update(ctx, domain.ContentUpdate{Ref: ref, Favorite: &favorite}); err != nil {
		return false, fetched, fmt.Errorf("mark favorite: %w: %w", domain.ErrStoreWrite, err)
	}
	return true, fetched, nil
}
