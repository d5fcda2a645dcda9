// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/creatorverse/internal/platform/constants"
	"github.com/taibuivan/creatorverse/internal/platform/rest"
)

// RESTRepository talks to the creators table through the PostgREST API.
type RESTRepository struct {
	client *rest.Client
}

func NewRESTRepository(client *rest.Client) *RESTRepository {
	return &RESTRepository{client: client}
}

func (repository *RESTRepository) ListCreators(ctx context.Context) ([]Row, error) {
	return repository.fetch(ctx, rest.Request{
		Method: http.MethodGet,
		Query:  url.Values{"select": {"*"}, "order": {FieldID + ".asc"}},
	})
}

func (repository *RESTRepository) FindCreators(ctx context.Context, id string) ([]Row, error) {
	return repository.fetch(ctx, rest.Request{
		Method: http.MethodGet,
		Query:  url.Values{"select": {"*"}, FieldID: {eq(id)}},
	})
}

func (repository *RESTRepository) InsertCreator(ctx context.Context, payload Row) (Row, error) {
	return repository.first(ctx, rest.Request{
		Method: http.MethodPost,
		Query:  url.Values{"select": {"*"}},
		Body:   payload,
		Prefer: constants.PreferRepresentation,
	})
}

func (repository *RESTRepository) UpdateCreator(ctx context.Context, id string, payload Row) (Row, error) {
	return repository.first(ctx, rest.Request{
		Method: http.MethodPatch,
		Query:  url.Values{FieldID: {eq(id)}, "select": {"*"}},
		Body:   payload,
		Prefer: constants.PreferRepresentation,
	})
}

func (repository *RESTRepository) DeleteCreator(ctx context.Context, id string) error {
	_, err := repository.client.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Query:  url.Values{FieldID: {eq(id)}},
		Prefer: constants.PreferMinimal,
	})
	return err
}

func (repository *RESTRepository) Ping(ctx context.Context) error {
	return repository.client.Ping(ctx)
}

// fetch sends req and decodes every returned row.
func (repository *RESTRepository) fetch(ctx context.Context, req rest.Request) ([]Row, error) {
	raw, err := repository.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	decoded, err := rest.DecodeRows(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(decoded))
	for _, row := range decoded {
		rows = append(rows, Row(row))
	}
	return rows, nil
}

// first sends req and returns the first echoed row, or nil.
func (repository *RESTRepository) first(ctx context.Context, req rest.Request) (Row, error) {
	rows, err := repository.fetch(ctx, req)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// eq renders a PostgREST equality filter.
func eq(value string) string {
	return "eq." + value
}
