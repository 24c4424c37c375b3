package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"media_syncer/internal/domain"
)

type TrailerStore struct {
	db *sqlx.DB
}

func NewTrailerStore(db *sqlx.DB) *TrailerStore {
	return &TrailerStore{db: db}
}

type trailerRow struct {
	ID              string     `db:"id"`
	ContentKind     string     `db:"content_kind"`
	ContentRemoteID int64      `db:"content_remote_id"`
	Name            string     `db:"name"`
	Key             string     `db:"video_key"`
	Site            string     `db:"site"`
	Type            string     `db:"video_type"`
	Official        bool       `db:"official"`
	PublishedAt     *time.Time `db:"published_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

func (s *TrailerStore) Get(ctx context.Context, id string) (*domain.Trailer, error) {
	query := `
		SELECT id, content_kind, content_remote_id, name, video_key, site, video_type,
			official, published_at, created_at
		FROM trailers
		WHERE id = $1`

	var row trailerRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	official := row.Official
	return &domain.Trailer{
		ID:          row.ID,
		Content:     domain.ContentRef{Kind: domain.ContentKind(row.ContentKind), ID: row.ContentRemoteID},
		Name:        row.Name,
		Key:         row.Key,
		Site:        row.Site,
		Type:        row.Type,
		Official:    &official,
		PublishedAt: row.PublishedAt,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (s *TrailerStore) Insert(ctx context.Context, t *domain.Trailer) error {
	query := `
		INSERT INTO trailers (
			id, content_kind, content_remote_id, name, video_key, site, video_type,
			official, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, COALESCE($8, FALSE), $9
		)
		ON CONFLICT (id) DO NOTHING`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		t.ID,
		string(t.Content.Kind),
		t.Content.ID,
		t.Name,
		t.Key,
		t.Site,
		t.Type,
		t.Official,
		t.PublishedAt,
	)
	if err != nil {
		return classify(err)
	}
	return conflictIfNone(res)
}

func (s *TrailerStore) Update(ctx context.Context, t *domain.Trailer) error {
	query := `
		UPDATE trailers SET
			name = $2,
			video_key = $3,
			site = $4,
			video_type = $5,
			official = COALESCE($6, official),
			published_at = $7
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Key,
		t.Site,
		t.Type,
		t.Official,
		t.PublishedAt,
	)
	if err != nil {
		return err
	}
	return notFoundIfNone(res, "trailer "+t.ID)
}
