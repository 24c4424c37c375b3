package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"media_syncer/internal/domain"
	"media_syncer/internal/paging"
)

type BrowseSession = paging.Session[domain.ContentRef, domain.Content]

// NewBrowseSession starts a pagination session keyed by content ref. Start a
// new one, or Reset it, whenever the query changes.
func NewBrowseSession() *BrowseSession {
	return paging.NewSession(func(c domain.Content) domain.ContentRef { return c.Ref })
}

// Browser pages through catalog listings and searches, storing every item it
// yields.
type Browser struct {
	catalog    Catalog
	reconciler *Reconciler
	logger     *slog.Logger
}

func NewBrowser(catalog Catalog, reconciler *Reconciler, logger *slog.Logger) *Browser {
	return &Browser{
		catalog:    catalog,
		reconciler: reconciler,
		logger:     logger.With("component", "browser"),
	}
}

// Browse yields reconciled items for query, page after page, until the
// catalog runs out or the consumer stops. Each ref is yielded at most once per
// session. A page fetch error is yielded and ends the sequence; a reconcile
// error is yielded and the sequence moves on.
func (b *Browser) Browse(ctx context.Context, query domain.CatalogQuery, session *BrowseSession) iter.Seq2[domain.Content, error] {
	return session.Dedup(b.pages(ctx, query))
}

func (b *Browser) pages(ctx context.Context, query domain.CatalogQuery) iter.Seq2[domain.Content, error] {
	return func(yield func(domain.Content, error) bool) {
		token := ""
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(domain.Content{}, err)
				return
			}

			result, err := b.catalog.FetchPage(ctx, query, token)
			if err != nil {
				yield(domain.Content{}, fmt.Errorf("fetch page %d: %w", page, err))
				return
			}
			b.logger.Debug("fetched catalog page", "page", page, "items", len(result.Items))

			for _, item := range result.Items {
				stored, _, err := b.reconciler.ReconcileContent(ctx, item, ReconcileOptions{})
				if err != nil {
					if !yield(domain.Content{}, err) {
						return
					}
					continue
				}
				if !yield(*stored, nil) {
					return
				}
			}

			if result.NextToken == "" {
				return
			}
			token = result.NextToken
		}
	}
}
