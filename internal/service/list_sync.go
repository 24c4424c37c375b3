package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"media_syncer/internal/domain"
	"media_syncer/internal/metrics"
)

const ListSyncJob = "list-sync"

// ListJobName is the scheduler job name for syncing a single list.
func ListJobName(remoteID string) string {
	return ListSyncJob + ":" + remoteID
}

// ListSynchronizer pulls a shared remote list into the local store. Items are
// only ever added; a row that disappeared remotely stays local.
type ListSynchronizer struct {
	remote    ListService
	lists     ListStore
	items     ListItemStore
	contents  ContentStore
	resolver  *Resolver
	txManager TransactionManager
	userID    string
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewListSynchronizer(
	remote ListService,
	lists ListStore,
	items ListItemStore,
	contents ContentStore,
	resolver *Resolver,
	txManager TransactionManager,
	userID string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ListSynchronizer {
	return &ListSynchronizer{
		remote:    remote,
		lists:     lists,
		items:     items,
		contents:  contents,
		resolver:  resolver,
		txManager: txManager,
		userID:    userID,
		metrics:   m,
		logger:    logger.With("component", "list_sync"),
		now:       time.Now,
	}
}

type memberResult struct {
	fetched bool
	err     error
}

// SyncList returns an error only when the header could not be fetched or
// stored, or when ctx ended mid run. Item failures are counted in the stats.
func (s *ListSynchronizer) SyncList(ctx context.Context, remoteID string) (*domain.SyncStats, error) {
	startTime := s.now()
	logger := s.logger.With("remote_list_id", remoteID)
	logger.Info("starting list sync")

	stats, err := s.syncList(ctx, logger, remoteID)
	if stats != nil {
		stats.Duration = s.now().Sub(startTime)
		s.metrics.ObserveSync(ListSyncJob, err, stats.Duration, stats.Errors)
	} else {
		s.metrics.ObserveSync(ListSyncJob, err, s.now().Sub(startTime), 0)
	}
	if err != nil {
		return stats, err
	}

	logger.Info("list sync completed",
		"fetched", stats.Fetched,
		"new", stats.New,
		"linked", stats.Linked,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)
	return stats, nil
}

func (s *ListSynchronizer) syncList(ctx context.Context, logger *slog.Logger, remoteID string) (*domain.SyncStats, error) {
	header, err := s.remote.GetList(ctx, remoteID)
	if err != nil {
		return nil, fmt.Errorf("fetch list header %s: %w", remoteID, err)
	}

	members, err := s.remote.GetMembers(ctx, remoteID)
	if err != nil {
		logger.Warn("failed to fetch list members, updating header only", "error", err)
		members = nil
	}

	var list *domain.List
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		list, err = s.resolveList(txCtx, remoteID, header)
		if err != nil {
			return err
		}
		if err := s.lists.Update(txCtx, s.headerUpdate(list.ID, header)); err != nil {
			return fmt.Errorf("update list %d: %w: %w", list.ID, domain.ErrStoreWrite, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store list header %s: %w", remoteID, err)
	}

	stats := &domain.SyncStats{Job: ListSyncJob, Fetched: len(members)}
	logger = logger.With("list_id", list.ID)

	for i, row := range members {
		if err := ctx.Err(); err != nil {
			stats.Skipped += len(members) - i
			return stats, fmt.Errorf("sync list %s: %w", remoteID, err)
		}

		res := s.syncMember(ctx, list.ID, row)
		switch {
		case res.err != nil:
			stats.Errors++
			logger.Warn("skipping list member", "index", i, "error", res.err)
		case res.fetched:
			stats.New++
			stats.Linked++
		default:
			stats.Linked++
		}
	}

	return stats, nil
}

// SyncLists syncs each list in turn. One list failing does not stop the others.
func (s *ListSynchronizer) SyncLists(ctx context.Context, remoteIDs []string) (*domain.SyncStats, error) {
	total := &domain.SyncStats{Job: ListSyncJob}
	var errs []error

	for _, id := range remoteIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		stats, err := s.SyncList(ctx, id)
		if err != nil {
			errs = append(errs, err)
		}
		if stats != nil {
			total.Fetched += stats.Fetched
			total.New += stats.New
			total.Linked += stats.Linked
			total.Skipped += stats.Skipped
			total.Errors += stats.Errors
			total.Duration += stats.Duration
		}
	}

	return total, errors.Join(errs...)
}

func (s *ListSynchronizer) resolveList(ctx context.Context, remoteID string, header *domain.ListHeader) (*domain.List, error) {
	list, err := s.lists.GetByRemoteID(ctx, remoteID)
	if err != nil {
		return nil, fmt.Errorf("get list %s: %w", remoteID, err)
	}
	if list != nil {
		return list, nil
	}

	list = &domain.List{
		RemoteID:        &remoteID,
		OwnerID:         header.OwnerID,
		OwnerName:       header.OwnerName,
		Name:            header.Name,
		Description:     header.Description,
		InLibrary:       s.userID != "" && header.OwnerID == s.userID,
		SubscriberCount: header.SubscriberCount,
		CreatedAt:       header.CreatedAt,
		ModifiedAt:      header.ModifiedAt,
	}
	id, err := s.lists.Create(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("create list %s: %w: %w", remoteID, domain.ErrStoreWrite, err)
	}
	list.ID = id
	return list, nil
}

func (s *ListSynchronizer) headerUpdate(listID int64, header *domain.ListHeader) domain.ListUpdate {
	syncedAt := s.now()
	description := header.Description
	subscribers := header.SubscriberCount

	update := domain.ListUpdate{
		ID:          listID,
		Description: &description,
		SyncedAt:    &syncedAt,
		Subscribers: &subscribers,
	}
	if !header.ModifiedAt.IsZero() {
		modifiedAt := header.ModifiedAt
		update.ModifiedAt = &modifiedAt
	}
	if header.Name != "" {
		name := header.Name
		update.Name = &name
	}
	if header.OwnerName != "" {
		owner := header.OwnerName
		update.OwnerName = &owner
	}
	return update
}

func (s *ListSynchronizer) syncMember(ctx context.Context, listID int64, row domain.MemberRow) memberResult {
	ref, err := row.Ref()
	if err != nil {
		return memberResult{err: err}
	}

	content, fetched, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return memberResult{err: fmt.Errorf("resolve %s: %w", ref, err)}
	}

	addedAt := row.AddedAt
	if addedAt.IsZero() {
		addedAt = s.now()
	}
	if err := s.items.Add(ctx, domain.ListItem{ListID: listID, Content: ref, AddedAt: addedAt}); err != nil {
		return memberResult{err: fmt.Errorf("add list item %s: %w: %w", ref, domain.ErrStoreWrite, err)}
	}

	if !content.InList {
		inList := true
		if err := s.contents.Update(ctx, domain.ContentUpdate{Ref: ref, InList: &inList}); err != nil {
			return memberResult{err: fmt.Errorf("mark %s in list: %w: %w", ref, domain.ErrStoreWrite, err)}
		}
	}

	return memberResult{fetched: fetched}
}
