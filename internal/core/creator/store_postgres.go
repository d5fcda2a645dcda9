// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/creatorverse/internal/platform/dberr"
)

// PostgresRepository reads and writes the creators table directly.
//
// It returns the same raw rows the REST endpoint would, so the service applies
// identical normalization and column fallback on top of it.
type PostgresRepository struct {
	db    *pgxpool.Pool
	table string
}

func NewPostgresRepository(db *pgxpool.Pool, table string) *PostgresRepository {
	return &PostgresRepository{
		db:    db,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

func (repository *PostgresRepository) ListCreators(ctx context.Context) ([]Row, error) {
	return repository.query(ctx, "list creators", repository.listStatement())
}

func (repository *PostgresRepository) FindCreators(ctx context.Context, id string) ([]Row, error) {
	rows, err := repository.query(ctx, "find creator", repository.findStatement(), id)
	if isMalformedID(err) {
		return nil, nil
	}
	return rows, err
}

func (repository *PostgresRepository) InsertCreator(ctx context.Context, payload Row) (Row, error) {
	columns, args := splitPayload(payload)

	rows, err := repository.query(ctx, "insert creator", repository.insertStatement(columns), args...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (repository *PostgresRepository) UpdateCreator(ctx context.Context, id string, payload Row) (Row, error) {
	columns, args := splitPayload(payload)
	args = append(args, id)

	rows, err := repository.query(ctx, "update creator", repository.updateStatement(columns), args...)
	if isMalformedID(err) {
		return nil, nil
	}
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (repository *PostgresRepository) DeleteCreator(ctx context.Context, id string) error {
	if _, err := repository.db.Exec(ctx, repository.deleteStatement(), id); err != nil && !isMalformedID(err) {
		return dberr.Wrap(err, "delete creator")
	}
	return nil
}

func (repository *PostgresRepository) Ping(ctx context.Context) error {
	if err := repository.db.Ping(ctx); err != nil {
		return dberr.Wrap(err, "ping")
	}
	return nil
}

// query runs a row-returning statement and collects every row as a map.
func (repository *PostgresRepository) query(ctx context.Context, action, query string, args ...any) ([]Row, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	result := make([]Row, 0, len(collected))
	for _, row := range collected {
		result = append(result, Row(row))
	}
	return result, nil
}

// # Statements
//
// The id is compared as "id = $N" so the parameter takes the column's type and
// the primary key index applies. The textual id is sent in the text format and
// parsed by the server, whatever the id type is.

func (repository *PostgresRepository) listStatement() string {
	return fmt.Sprintf(`SELECT * FROM %s ORDER BY id ASC`, repository.table)
}

func (repository *PostgresRepository) findStatement() string {
	return fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, repository.table)
}

func (repository *PostgresRepository) insertStatement(columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		repository.table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

// updateStatement binds the columns to $1..$N and the id to $N+1.
func (repository *PostgresRepository) updateStatement(columns []string) string {
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}

	return fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING *`,
		repository.table,
		strings.Join(assignments, ", "),
		len(columns)+1,
	)
}

func (repository *PostgresRepository) deleteStatement() string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, repository.table)
}

// isMalformedID reports whether err says the id text is not a valid value of
// the id column's type. Such an id matches no row.
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

// splitPayload returns the quoted column names of payload in a stable order
// together with their values.
func splitPayload(payload Row) ([]string, []any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	columns := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, key := range keys {
		columns[i] = pgx.Identifier{key}.Sanitize()
		args[i] = payload[key]
	}
	return columns, args
}
