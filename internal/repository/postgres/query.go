package postgres

import (
	"context"
	"fmt"
	"strings"

	"eventory/internal/domain"
)

// setBuilder assembles the SET clause of a partial UPDATE with positional args.
// updated_at is always refreshed.
type setBuilder struct {
	clauses []string
	values  []any
	touched bool
}

func newSetBuilder() *setBuilder {
	return &setBuilder{clauses: []string{"updated_at = NOW()"}}
}

func (b *setBuilder) add(column string, value any) {
	b.values = append(b.values, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.values)))
	b.touched = true
}

func (b *setBuilder) empty() bool { return !b.touched }

func (b *setBuilder) clause() string { return strings.Join(b.clauses, ", ") }

// next is the placeholder index following the SET values.
func (b *setBuilder) next() int { return len(b.values) + 1 }

func (b *setBuilder) args(extra ...any) []any {
	return append(append([]any{}, b.values...), extra...)
}

// whereBuilder assembles an AND-joined WHERE clause with positional args.
type whereBuilder struct {
	clauses []string
	values  []any
}

func (w *whereBuilder) add(format string, value any) {
	w.values = append(w.values, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.values)))
}

func (w *whereBuilder) clause() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *whereBuilder) next() int { return len(w.values) + 1 }

// limitArg maps an unset page size to NULL, which Postgres treats as LIMIT ALL.
func limitArg(p domain.PaginationParams) any {
	if l := p.Limit(); l > 0 {
		return l
	}
	return nil
}

func deleteByID(ctx context.Context, db querier, table, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
