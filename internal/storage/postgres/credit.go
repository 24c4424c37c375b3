package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"media_syncer/internal/domain"
)

type creditRow struct {
	ID              string    `db:"id"`
	ContentKind     string    `db:"content_kind"`
	ContentRemoteID int64     `db:"content_remote_id"`
	PersonID        *int64    `db:"person_id"`
	PersonName      string    `db:"person_name"`
	Character       string    `db:"character_name"`
	IsCrew          bool      `db:"is_crew"`
	Order           int       `db:"credit_order"`
	Department      string    `db:"department"`
	Job             string    `db:"job"`
	ContentTitle    string    `db:"content_title"`
	ContentPoster   string    `db:"content_poster"`
	CreatedAt       time.Time `db:"created_at"`
}

type CreditStore struct {
	db *sqlx.DB
}

func NewCreditStore(db *sqlx.DB) *CreditStore {
	return &CreditStore{db: db}
}

func (s *CreditStore) Get(ctx context.Context, id string) (*domain.Credit, error) {
	query := `
		SELECT id, content_kind, content_remote_id, person_id, person_name, character_name,
			is_crew, credit_order, department, job, content_title, content_poster, created_at
		FROM credits
		WHERE id = $1`

	var row creditRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	order := row.Order
	return &domain.Credit{
		ID:            row.ID,
		Content:       domain.ContentRef{Kind: domain.ContentKind(row.ContentKind), ID: row.ContentRemoteID},
		PersonID:      row.PersonID,
		PersonName:    row.PersonName,
		Character:     row.Character,
		IsCrew:        row.IsCrew,
		Order:         &order,
		Department:    row.Department,
		Job:           row.Job,
		ContentTitle:  row.ContentTitle,
		ContentPoster: row.ContentPoster,
		CreatedAt:     row.CreatedAt,
	}, nil
}

// Insert returns domain.ErrConflict for a duplicate id and domain.ErrNotFound
// when the linked content is not stored.
func (s *CreditStore) Insert(ctx context.Context, c *domain.Credit) error {
	query := `
		INSERT INTO credits (
			id, content_kind, content_remote_id, person_id, person_name, character_name,
			is_crew, credit_order, department, job, content_title, content_poster
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, COALESCE($8, 0), $9, $10, $11, $12
		)
		ON CONFLICT (id) DO NOTHING`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		c.ID,
		string(c.Content.Kind),
		c.Content.ID,
		c.PersonID,
		c.PersonName,
		c.Character,
		c.IsCrew,
		c.Order,
		c.Department,
		c.Job,
		c.ContentTitle,
		c.ContentPoster,
	)
	if err != nil {
		return classify(err)
	}
	return conflictIfNone(res)
}

// Update rewrites the mutable columns. The content linkage and the copied
// content title and poster are left as inserted.
func (s *CreditStore) Update(ctx context.Context, c *domain.Credit) error {
	query := `
		UPDATE credits SET
			person_id = $2,
			person_name = $3,
			character_name = $4,
			is_crew = $5,
			credit_order = COALESCE($6, credit_order),
			department = $7,
			job = $8
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		c.ID,
		c.PersonID,
		c.PersonName,
		c.Character,
		c.IsCrew,
		c.Order,
		c.Department,
		c.Job,
	)
	if err != nil {
		return err
	}
	return notFoundIfNone(res, "credit "+c.ID)
}
