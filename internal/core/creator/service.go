// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
	"github.com/taibuivan/creatorverse/internal/platform/validate"
)

// Messages shown verbatim when input is rejected.
const (
	MessageMissingFields = "Please provide a name, url, and description."
	MessageFieldsTooLong = "Please shorten the highlighted fields."
	MessageMissingID     = "Creator id is required"
)

// Field length limits, in characters.
const (
	MaxNameLength        = 200
	MaxURLLength         = 2048
	MaxDescriptionLength = 5000
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListCreators returns every creator ordered by id. An empty catalog is not an error.
func (service *Service) ListCreators(ctx context.Context) ([]*Creator, error) {
	rows, err := service.repo.ListCreators(ctx)
	if err != nil {
		return nil, err
	}

	creators := make([]*Creator, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		creators = append(creators, fromRow(Normalize(row)))
	}
	return creators, nil
}

// GetCreator returns the creator with the given id.
//
// When the store matches several rows the first one wins.
func (service *Service) GetCreator(ctx context.Context, id string) (*Creator, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.NotFound("Creator")
	}

	rows, err := service.repo.FindCreators(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row != nil {
			return fromRow(Normalize(row)), nil
		}
	}
	return nil, apperr.NotFound("Creator")
}

// CreateCreator validates input and stores it as a new creator.
func (service *Service) CreateCreator(ctx context.Context, input Input) (*Creator, error) {
	input = input.trimmed()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row, err := writeWithFallback(ctx, input.payload(), service.repo.InsertCreator)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.Storef("The store did not return the created creator.")
	}

	created := fromRow(Normalize(row))
	service.logger.Info("creator_created",
		slog.String("creator_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// UpdateCreator replaces every user-editable field of creator id.
//
// An image left blank is not sent, so the stored image is kept.
func (service *Service) UpdateCreator(ctx context.Context, id string, input Input) (*Creator, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.NotFound("Creator")
	}

	input = input.trimmed()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row, err := writeWithFallback(ctx, input.payload(), func(ctx context.Context, payload Row) (Row, error) {
		return service.repo.UpdateCreator(ctx, id, payload)
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.NotFound("Creator")
	}

	updated := fromRow(Normalize(row))
	service.logger.Info("creator_updated", slog.String("creator_id", updated.ID))
	return updated, nil
}

// DeleteCreator removes creator id. Removing a creator that no longer exists succeeds.
func (service *Service) DeleteCreator(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	validator := &validate.Validator{}
	validator.Custom(FieldID, id == "", "This field is required")
	if err := validator.ErrWithMessage(MessageMissingID); err != nil {
		return err
	}

	if err := service.repo.DeleteCreator(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("creator_deleted", slog.String("creator_id", id))
	return nil
}

// Ping reports whether the backing store is reachable.
func (service *Service) Ping(ctx context.Context) error {
	return service.repo.Ping(ctx)
}

// validateInput checks the required fields of a trimmed input, then their lengths.
func validateInput(input Input) error {
	required := &validate.Validator{}
	required.
		Required(FieldName, input.Name).
		Required(FieldURL, input.URL).
		Required(FieldDescription, input.Description)
	if err := required.ErrWithMessage(MessageMissingFields); err != nil {
		return err
	}

	bounded := &validate.Validator{}
	bounded.
		MaxLen(FieldName, input.Name, MaxNameLength).
		MaxLen(FieldURL, input.URL, MaxURLLength).
		MaxLen(FieldDescription, input.Description, MaxDescriptionLength).
		MaxLen(FieldImageURL, input.ImageURL, MaxURLLength)
	return bounded.ErrWithMessage(MessageFieldsTooLong)
}
