package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"media_syncer/internal/domain"
)

type listRow struct {
	ID              int64      `db:"id"`
	RemoteID        *string    `db:"remote_id"`
	OwnerID         string     `db:"owner_id"`
	OwnerName       string     `db:"owner_name"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	InLibrary       bool       `db:"in_library"`
	SubscriberCount int        `db:"subscriber_count"`
	CreatedAt       time.Time  `db:"created_at"`
	ModifiedAt      time.Time  `db:"modified_at"`
	SyncedAt        *time.Time `db:"synced_at"`
}

type ListStore struct {
	db *sqlx.DB
}

func NewListStore(db *sqlx.DB) *ListStore {
	return &ListStore{db: db}
}

func (s *ListStore) GetByRemoteID(ctx context.Context, remoteID string) (*domain.List, error) {
	query := `
		SELECT id, remote_id, owner_id, owner_name, name, description, in_library,
			subscriber_count, created_at, modified_at, synced_at
		FROM lists
		WHERE remote_id = $1`

	var row listRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, remoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.List{
		ID:              row.ID,
		RemoteID:        row.RemoteID,
		OwnerID:         row.OwnerID,
		OwnerName:       row.OwnerName,
		Name:            row.Name,
		Description:     row.Description,
		InLibrary:       row.InLibrary,
		SubscriberCount: row.SubscriberCount,
		CreatedAt:       row.CreatedAt,
		ModifiedAt:      row.ModifiedAt,
		SyncedAt:        row.SyncedAt,
	}, nil
}

// Create inserts the list and returns its id. When a list with the same remote
// id already exists its id is returned and nothing is written.
func (s *ListStore) Create(ctx context.Context, list *domain.List) (int64, error) {
	query := `
		INSERT INTO lists (
			remote_id, owner_id, owner_name, name, description, in_library,
			subscriber_count, created_at, modified_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (remote_id) DO NOTHING
		RETURNING id`

	createdAt := list.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	modifiedAt := list.ModifiedAt
	if modifiedAt.IsZero() {
		modifiedAt = createdAt
	}

	exec := GetExecutor(ctx, s.db)

	var id int64
	err := exec.QueryRowxContext(ctx, query,
		list.RemoteID,
		list.OwnerID,
		list.OwnerName,
		list.Name,
		list.Description,
		list.InLibrary,
		list.SubscriberCount,
		createdAt,
		modifiedAt,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) && list.RemoteID != nil {
		err = exec.QueryRowxContext(ctx,
			"SELECT id FROM lists WHERE remote_id = $1",
			*list.RemoteID,
		).Scan(&id)
	}

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *ListStore) Update(ctx context.Context, u domain.ListUpdate) error {
	var b setBuilder
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Description != nil {
		b.add("description", *u.Description)
	}
	if u.OwnerName != nil {
		b.add("owner_name", *u.OwnerName)
	}
	if u.ModifiedAt != nil {
		b.add("modified_at", *u.ModifiedAt)
	}
	if u.SyncedAt != nil {
		b.add("synced_at", *u.SyncedAt)
	}
	if u.Subscribers != nil {
		b.add("subscriber_count", *u.Subscribers)
	}
	if b.empty() {
		return nil
	}

	query := `UPDATE lists SET ` + b.String() + ` WHERE id = ` + b.placeholder(u.ID)

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, b.args...)
	if err != nil {
		return err
	}
	return notFoundIfNone(res, fmt.Sprintf("list %d", u.ID))
}

type listItemRow struct {
	ListID          int64     `db:"list_id"`
	ContentKind     string    `db:"content_kind"`
	ContentRemoteID int64     `db:"content_remote_id"`
	AddedAt         time.Time `db:"added_at"`
}

type ListItemStore struct {
	db *sqlx.DB
}

func NewListItemStore(db *sqlx.DB) *ListItemStore {
	return &ListItemStore{db: db}
}

// Add links content to a list. Adding an existing pair is a no-op.
func (s *ListItemStore) Add(ctx context.Context, item domain.ListItem) error {
	query := `
		INSERT INTO list_items (list_id, content_kind, content_remote_id, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`

	addedAt := item.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now()
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		item.ListID,
		string(item.Content.Kind),
		item.Content.ID,
		addedAt,
	)
	return classify(err)
}

func (s *ListItemStore) ListByList(ctx context.Context, listID int64) ([]domain.ListItem, error) {
	query := `
		SELECT list_id, content_kind, content_remote_id, added_at
		FROM list_items
		WHERE list_id = $1
		ORDER BY added_at, content_kind, content_remote_id`

	var rows []listItemRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, listID); err != nil {
		return nil, err
	}

	items := make([]domain.ListItem, len(rows))
	for i, r := range rows {
		items[i] = domain.ListItem{
			ListID:  r.ListID,
			Content: domain.ContentRef{Kind: domain.ContentKind(r.ContentKind), ID: r.ContentRemoteID},
			AddedAt: r.AddedAt,
		}
	}
	return items, nil
}

// Remove deletes one membership. Only explicit user actions call it.
func (s *ListItemStore) Remove(ctx context.Context, listID int64, ref domain.ContentRef) error {
	query := `DELETE FROM list_items WHERE list_id = $1 AND content_kind = $2 AND content_remote_id = $3`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, listID, string(ref.Kind), ref.ID)
	if err != nil {
		return err
	}
	return notFoundIfNone(res, fmt.Sprintf("list %d item %s", listID, ref))
}
