// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/creatorverse/internal/platform/ctxutil"
	"github.com/taibuivan/creatorverse/internal/platform/metrics"
)

// unknownColumnHints are the phrases that, next to a column name, mark a store
// error as "this column does not exist".
var unknownColumnHints = []string{"does not exist", "column", "schema cache"}

// isUnknownColumn reports whether err looks like the store rejecting field as
// an unknown column.
//
// This is a substring heuristic on the error text: it is case-insensitive and
// needs the field name plus any one hint. It can misfire on unrelated errors
// that mention the field. Swap it for a structured code check if the store
// ever exposes one.
func isUnknownColumn(err error, field string) bool {
	if err == nil {
		return false
	}

	message := strings.ToLower(err.Error())
	if !strings.Contains(message, strings.ToLower(field)) {
		return false
	}

	for _, hint := range unknownColumnHints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}

// writeFunc performs one create or update attempt with the given payload.
type writeFunc func(ctx context.Context, payload Row) (Row, error)

// writeWithFallback runs write once and, when the store rejects an aliased
// field's canonical column, runs it exactly once more with that field moved
// under its first alias.
//
// The retry only happens when the field was in the payload. Its outcome,
// success or failure, is returned as is.
func writeWithFallback(ctx context.Context, payload Row, write writeFunc) (Row, error) {
	row, err := write(ctx, payload)
	if err == nil {
		return row, nil
	}

	for field, aliases := range fieldAliases {
		value, present := payload[field]
		if !present || len(aliases) == 0 || !isUnknownColumn(err, field) {
			continue
		}

		ctxutil.GetLogger(ctx).WarnContext(ctx, "creator_write_column_fallback",
			slog.String("column", field),
			slog.String("alias", aliases[0]),
			slog.String("store_message", err.Error()),
		)
		metrics.RecordWriteFallback(field)

		return write(ctx, substitute(payload, field, aliases[0], value))
	}

	return nil, err
}

// substitute returns a copy of payload with field renamed to alias.
func substitute(payload Row, field, alias string, value any) Row {
	retry := make(Row, len(payload))
	for key, v := range payload {
		if key != field {
			retry[key] = v
		}
	}
	retry[alias] = value
	return retry
}
