// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"

	"github.com/taibuivan/creatorverse/internal/platform/metrics"
)

// instrumentedRepository counts every store call by backend, operation and outcome.
type instrumentedRepository struct {
	next    Repository
	backend string
}

// Instrument wraps repo so its calls are exported as store metrics.
func Instrument(repo Repository, backend string) Repository {
	return &instrumentedRepository{next: repo, backend: backend}
}

func (repository *instrumentedRepository) ListCreators(ctx context.Context) ([]Row, error) {
	rows, err := repository.next.ListCreators(ctx)
	metrics.ObserveStoreRequest(repository.backend, "list", err)
	return rows, err
}

func (repository *instrumentedRepository) FindCreators(ctx context.Context, id string) ([]Row, error) {
	rows, err := repository.next.FindCreators(ctx, id)
	metrics.ObserveStoreRequest(repository.backend, "find", err)
	return rows, err
}

func (repository *instrumentedRepository) InsertCreator(ctx context.Context, payload Row) (Row, error) {
	row, err := repository.next.InsertCreator(ctx, payload)
	metrics.ObserveStoreRequest(repository.backend, "insert", err)
	return row, err
}

func (repository *instrumentedRepository) UpdateCreator(ctx context.Context, id string, payload Row) (Row, error) {
	row, err := repository.next.UpdateCreator(ctx, id, payload)
	metrics.ObserveStoreRequest(repository.backend, "update", err)
	return row, err
}

func (repository *instrumentedRepository) DeleteCreator(ctx context.Context, id string) error {
	err := repository.next.DeleteCreator(ctx, id)
	metrics.ObserveStoreRequest(repository.backend, "delete", err)
	return err
}

func (repository *instrumentedRepository) Ping(ctx context.Context) error {
	err := repository.next.Ping(ctx)
	metrics.ObserveStoreRequest(repository.backend, "ping", err)
	return err
}
