// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import "context"

// Repository defines the data access contract.
//
// Implementations move raw rows and report store failures as
// [apperr.AppError] values whose message is fit for display. Normalization,
// validation and the column fallback are the service's job.
type Repository interface {
	// ListCreators returns every row ordered by id ascending.
	ListCreators(ctx context.Context) ([]Row, error)
	// FindCreators returns the rows whose id equals id.
	FindCreators(ctx context.Context, id string) ([]Row, error)
	// InsertCreator writes payload as a new row and returns the stored row, or nil if none was echoed.
	InsertCreator(ctx context.Context, payload Row) (Row, error)
	// UpdateCreator replaces the fields of row id and returns the stored row, or nil if none was echoed.
	UpdateCreator(ctx context.Context, id string, payload Row) (Row, error)
	// DeleteCreator removes row id. Deleting a missing row is not an error.
	DeleteCreator(ctx context.Context, id string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
