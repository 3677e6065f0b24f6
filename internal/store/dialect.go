package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Dialect owns everything the two engines disagree on. All query text in the
// repositories uses ? placeholders and is passed through Rebind before
// execution.
type Dialect interface {
	Name() string

	// Rebind converts ? placeholders to the engine's native style.
	Rebind(query string) string

	// InsertReturningID runs an INSERT (written without RETURNING) and
	// yields the generated id for the new row.
	InsertReturningID(ctx context.Context, tx Tx, query string, args ...any) (int64, error)

	// UpsertReturningID inserts a row that may collide on keyCol and yields
	// the id of whichever row owns the key afterwards. The existing row is
	// left untouched on conflict (first write wins). keyCol must be the
	// first entry of cols, and args follow cols order.
	UpsertReturningID(ctx context.Context, tx Tx, table, keyCol string, cols []string, args ...any) (int64, error)

	// InsertOrIgnore builds an INSERT (with ? placeholders) that is a no-op
	// when keyCol collides with an existing row.
	InsertOrIgnore(table, keyCol string, cols []string) string
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgresql" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d postgresDialect) InsertReturningID(ctx context.Context, tx Tx, query string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, d.Rebind(query+" RETURNING id"), args...).Scan(&id)
	return id, err
}

// upsertQuery builds the conflict-tolerant insert. The no-op DO UPDATE makes
// RETURNING yield the existing row's id on conflict; none of its stored
// fields change.
func (postgresDialect) upsertQuery(table, keyCol string, cols []string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s RETURNING id",
		table, strings.Join(cols, ", "), placeholders(len(cols)), keyCol, keyCol, keyCol)
}

func (d postgresDialect) UpsertReturningID(ctx context.Context, tx Tx, table, keyCol string, cols []string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, d.Rebind(d.upsertQuery(table, keyCol, cols)), args...).Scan(&id)
	return id, err
}

func (postgresDialect) InsertOrIgnore(table, keyCol string, cols []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		table, strings.Join(cols, ", "), placeholders(len(cols)), keyCol)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) InsertReturningID(ctx context.Context, tx Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d sqliteDialect) UpsertReturningID(ctx context.Context, tx Tx, table, keyCol string, cols []string, args ...any) (int64, error) {
	insert := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return 0, err
	}

	// LastInsertId is unreliable when the insert was ignored, so always
	// re-select by the key (args[0], per the cols convention).
	var id int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ?", table, keyCol)
	err := tx.QueryRowContext(ctx, query, args[0]).Scan(&id)
	return id, err
}

func (sqliteDialect) InsertOrIgnore(table, keyCol string, cols []string) string {
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))
}
