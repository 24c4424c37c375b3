package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"media_syncer/internal/domain"
)

// ContentStore returns a nil record and a nil error from Get when nothing is stored for ref.
type ContentStore interface {
	Get(ctx context.Context, ref domain.ContentRef) (*domain.Content, error)
	Insert(ctx context.Context, content *domain.Content) (int64, error)
	Update(ctx context.Context, update domain.ContentUpdate) error
	ListFavorites(ctx context.Context) ([]domain.Content, error)
}

type CreditStore interface {
	Get(ctx context.Context, id string) (*domain.Credit, error)
	Insert(ctx context.Context, credit *domain.Credit) error
	Update(ctx context.Context, credit *domain.Credit) error
}

type TrailerStore interface {
	Get(ctx context.Context, id string) (*domain.Trailer, error)
	Insert(ctx context.Context, trailer *domain.Trailer) error
	Update(ctx context.Context, trailer *domain.Trailer) error
}

type ListStore interface {
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.List, error)
	Create(ctx context.Context, list *domain.List) (int64, error)
	Update(ctx context.Context, update domain.ListUpdate) error
}

type ListItemStore interface {
	Add(ctx context.Context, item domain.ListItem) error
	ListByList(ctx context.Context, listID int64) ([]domain.ListItem, error)
	Remove(ctx context.Context, listID int64, ref domain.ContentRef) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Catalog interface {
	FetchOne(ctx context.Context, ref domain.ContentRef) (*domain.Content, error)
	FetchPage(ctx context.Context, query domain.CatalogQuery, pageToken string) (*domain.CatalogPage, error)
	FetchCredits(ctx context.Context, ref domain.ContentRef) ([]domain.Credit, error)
	FetchTrailers(ctx context.Context, ref domain.ContentRef) ([]domain.Trailer, error)
}

type ListService interface {
	GetList(ctx context.Context, remoteID string) (*domain.ListHeader, error)
	GetMembers(ctx context.Context, remoteID string) ([]domain.MemberRow, error)
	AddMember(ctx context.Context, remoteID string, ref domain.ContentRef) error
	GetFavorites(ctx context.Context, userID string) ([]domain.MemberRow, error)
	AddFavorite(ctx context.Context, ref domain.ContentRef) error
}

type CoverCache interface {
	HasCustomCover(ref domain.ContentRef) bool
}

type Publisher interface {
	Publish(ctx context.Context, content *domain.Content, outcome domain.ReconcileOutcome) error
	Close() error
}
