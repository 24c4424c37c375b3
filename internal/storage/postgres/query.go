package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"media_syncer/internal/domain"
)

// setBuilder collects "col = $n" assignments for a partial UPDATE.
type setBuilder struct {
	sb   strings.Builder
	args []any
}

func (b *setBuilder) add(column string, value any) {
	if len(b.args) > 0 {
		b.sb.WriteString(", ")
	}
	b.args = append(b.args, value)
	b.sb.WriteString(column)
	b.sb.WriteString(" = $")
	b.sb.WriteString(strconv.Itoa(len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.args) == 0
}

// placeholder reserves the next argument position for a WHERE clause value.
func (b *setBuilder) placeholder(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *setBuilder) String() string {
	return b.sb.String()
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify maps driver errors onto domain errors where the caller can act on them.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return errors.Join(domain.ErrConflict, err)
	case pqForeignKeyViolation:
		return errors.Join(domain.ErrNotFound, err)
	}
	return err
}

func conflictIfNone(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConflict
	}
	return nil
}

func notFoundIfNone(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
