// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// Server-reported errors keep the server's message so users see the same text
// the REST endpoint would have returned for the same failure. Missing rows are
// not errors here: queries collect zero rows and the service decides.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 1. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict(pgErr.Message)
			conflict.Cause = cause
			return conflict
		default:
			return apperr.Store(pgErr.Message, cause)
		}
	}

	// 2. Connection-level failures read like transport errors
	return apperr.Store(err.Error(), cause)
}
