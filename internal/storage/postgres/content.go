package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"media_syncer/internal/domain"
)

const contentColumns = `
	id, kind, remote_id, title, overview, poster_url, poster_modified_at,
	favorite, in_list, popularity, vote_count, genres, production_companies,
	release_date, status, external_url, original_language, created_at, updated_at`

type contentRow struct {
	ID                  int64          `db:"id"`
	Kind                string         `db:"kind"`
	RemoteID            int64          `db:"remote_id"`
	Title               string         `db:"title"`
	Overview            string         `db:"overview"`
	PosterURL           string         `db:"poster_url"`
	PosterModifiedAt    *time.Time     `db:"poster_modified_at"`
	Favorite            bool           `db:"favorite"`
	InList              bool           `db:"in_list"`
	Popularity          float64        `db:"popularity"`
	VoteCount           int            `db:"vote_count"`
	Genres              pq.StringArray `db:"genres"`
	ProductionCompanies pq.StringArray `db:"production_companies"`
	ReleaseDate         *time.Time     `db:"release_date"`
	Status              string         `db:"status"`
	ExternalURL         string         `db:"external_url"`
	OriginalLanguage    string         `db:"original_language"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (r contentRow) toDomain() domain.Content {
	return domain.Content{
		ID:                  r.ID,
		Ref:                 domain.ContentRef{Kind: domain.ContentKind(r.Kind), ID: r.RemoteID},
		Title:               r.Title,
		Overview:            r.Overview,
		PosterURL:           r.PosterURL,
		PosterModifiedAt:    r.PosterModifiedAt,
		Favorite:            r.Favorite,
		InList:              r.InList,
		Popularity:          r.Popularity,
		VoteCount:           r.VoteCount,
		Genres:              nonEmpty(r.Genres),
		ProductionCompanies: nonEmpty(r.ProductionCompanies),
		ReleaseDate:         r.ReleaseDate,
		Status:              domain.ContentStatus(r.Status),
		ExternalURL:         r.ExternalURL,
		OriginalLanguage:    r.OriginalLanguage,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func nonEmpty(a pq.StringArray) []string {
	if len(a) == 0 {
		return nil
	}
	return []string(a)
}

func arrayOf(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}

type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) Get(ctx context.Context, ref domain.ContentRef) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE kind = $1 AND remote_id = $2`

	var row contentRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, string(ref.Kind), ref.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c := row.toDomain()
	return &c, nil
}

// Insert returns domain.ErrConflict when a row for the same ref already exists.
func (s *ContentStore) Insert(ctx context.Context, c *domain.Content) (int64, error) {
	if !c.Ref.Kind.Valid() {
		return 0, fmt.Errorf("invalid content kind %q", c.Ref.Kind)
	}

	query := `
		INSERT INTO contents (
			kind, remote_id, title, overview, poster_url, poster_modified_at,
			favorite, in_list, popularity, vote_count, genres, production_companies,
			release_date, status, external_url, original_language
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (kind, remote_id) DO NOTHING
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		string(c.Ref.Kind),
		c.Ref.ID,
		c.Title,
		c.Overview,
		c.PosterURL,
		c.PosterModifiedAt,
		c.Favorite,
		c.InList,
		c.Popularity,
		c.VoteCount,
		arrayOf(c.Genres),
		arrayOf(c.ProductionCompanies),
		c.ReleaseDate,
		string(c.Status),
		c.ExternalURL,
		c.OriginalLanguage,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrConflict
	}
	if err != nil {
		return 0, classify(err)
	}

	return id, nil
}

// Update writes only the non-nil fields of u in a single statement.
func (s *ContentStore) Update(ctx context.Context, u domain.ContentUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	var b setBuilder
	if u.Title != nil {
		b.add("title", *u.Title)
	}
	if u.Overview != nil {
		b.add("overview", *u.Overview)
	}
	if u.PosterURL != nil {
		b.add("poster_url", *u.PosterURL)
	}
	if u.PosterModifiedAt != nil {
		b.add("poster_modified_at", *u.PosterModifiedAt)
	}
	if u.Favorite != nil {
		b.add("favorite", *u.Favorite)
	}
	if u.InList != nil {
		b.add("in_list", *u.InList)
	}
	if u.Popularity != nil {
		b.add("popularity", *u.Popularity)
	}
	if u.VoteCount != nil {
		b.add("vote_count", *u.VoteCount)
	}
	if u.Genres != nil {
		b.add("genres", arrayOf(u.Genres))
	}
	if u.ProductionCompanies != nil {
		b.add("production_companies", arrayOf(u.ProductionCompanies))
	}
	if u.ReleaseDate != nil {
		b.add("release_date", *u.ReleaseDate)
	}
	if u.Status != nil {
		b.add("status", string(*u.Status))
	}
	if u.ExternalURL != nil {
		b.add("external_url", *u.ExternalURL)
	}
	if u.OriginalLanguage != nil {
		b.add("original_language", *u.OriginalLanguage)
	}

	kind := b.placeholder(string(u.Ref.Kind))
	remoteID := b.placeholder(u.Ref.ID)
	query := `UPDATE contents SET ` + b.String() + `, updated_at = NOW() WHERE kind = ` + kind + ` AND remote_id = ` + remoteID

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, b.args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("content %s: %w", u.Ref, domain.ErrNotFound)
	}
	return nil
}

func (s *ContentStore) ListFavorites(ctx context.Context) ([]domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE favorite ORDER BY id`

	var rows []contentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query); err != nil {
		return nil, err
	}

	out := make([]domain.Content, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}
