// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
)

// fakeRepository records calls and answers from canned values.
type fakeRepository struct {
	listRows []Row
	findRows []Row
	err      error

	insert func(payload Row) (Row, error)
	update func(id string, payload Row) (Row, error)

	calls          int
	insertPayloads []Row
	updateIDs      []string
	deletedIDs     []string
}

func (repository *fakeRepository) ListCreators(context.Context) ([]Row, error) {
	repository.calls++
	return repository.listRows, repository.err
}

func (repository *fakeRepository) FindCreators(context.Context, string) ([]Row, error) {
	repository.calls++
	return repository.findRows, repository.err
}

func (repository *fakeRepository) InsertCreator(_ context.Context, payload Row) (Row, error) {
	repository.calls++
	repository.insertPayloads = append(repository.insertPayloads, payload)
	return repository.insert(payload)
}

func (repository *fakeRepository) UpdateCreator(_ context.Context, id string, payload Row) (Row, error) {
	repository.calls++
	repository.updateIDs = append(repository.updateIDs, id)
	return repository.update(id, payload)
}

func (repository *fakeRepository) DeleteCreator(_ context.Context, id string) error {
	repository.calls++
	repository.deletedIDs = append(repository.deletedIDs, id)
	return repository.err
}

func (repository *fakeRepository) Ping(context.Context) error {
	return repository.err
}

// echoWithID returns the payload as a stored row with the given id.
func echoWithID(id string) func(Row) (Row, error) {
	return func(payload Row) (Row, error) {
		row := Row{FieldID: id}
		for key, value := range payload {
			row[key] = value
		}
		return row, nil
	}
}

func newTestService(repository *fakeRepository) *Service {
	return NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var validInput = Input{Name: "Ana", URL: "https://youtube.com/@ana", Description: "Cooking"}

func TestService_ListCreators(t *testing.T) {
	repository := &fakeRepository{listRows: []Row{
		{"id": json.Number("1"), "name": "Ana", "imageURL": "https://img/a.png"},
		{"id": json.Number("2"), "name": "Bo", "image_url": "https://img/b.png"},
		{"id": json.Number("3"), "name": "Cy"},
	}}

	creators, err := newTestService(repository).ListCreators(context.Background())

	require.NoError(t, err)
	require.Len(t, creators, 3)
	assert.Equal(t, "1", creators[0].ID)
	assert.Equal(t, "https://img/a.png", creators[0].ImageURL)
	assert.Equal(t, "https://img/b.png", creators[1].ImageURL)
	assert.Equal(t, "", creators[2].ImageURL)
}

func TestService_ListCreators_Empty(t *testing.T) {
	creators, err := newTestService(&fakeRepository{}).ListCreators(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, creators)
	assert.Empty(t, creators)
}

func TestService_ListCreators_StoreError(t *testing.T) {
	repository := &fakeRepository{err: apperr.Store("Invalid API key", nil)}

	_, err := newTestService(repository).ListCreators(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Invalid API key", err.Error())
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))
}

func TestService_GetCreator(t *testing.T) {
	repository := &fakeRepository{findRows: []Row{
		{"id": json.Number("7"), "name": "First", "url": "u", "description": "d", "image_url": "https://img/7.png"},
		{"id": json.Number("7"), "name": "Second"},
	}}

	creator, err := newTestService(repository).GetCreator(context.Background(), "7")

	require.NoError(t, err)
	assert.Equal(t, &Creator{ID: "7", Name: "First", URL: "u", Description: "d", ImageURL: "https://img/7.png"}, creator)
	assert.Equal(t, 1, repository.calls)
}

func TestService_GetCreator_NotFound(t *testing.T) {
	repository := &fakeRepository{findRows: []Row{}}

	_, err := newTestService(repository).GetCreator(context.Background(), "404")

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Creator not found", err.Error())
	assert.Equal(t, 1, repository.calls)
}

func TestService_CreateCreator_ValidationMakesNoCalls(t *testing.T) {
	inputs := []Input{
		{Name: "  ", URL: "https://a.tv", Description: "d"},
		{Name: "Ana", URL: "", Description: "d"},
		{Name: "Ana", URL: "https://a.tv", Description: "\t\n"},
		{},
	}

	for _, input := range inputs {
		repository := &fakeRepository{}

		_, err := newTestService(repository).CreateCreator(context.Background(), input)

		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Equal(t, MessageMissingFields, err.Error())
		assert.Zero(t, repository.calls)
	}
}

func TestService_CreateCreator_RejectsOverlongFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
		field  string
	}{
		{"name", func(in *Input) { in.Name = strings.Repeat("n", MaxNameLength+1) }, FieldName},
		{"url", func(in *Input) { in.URL = "https://a.tv/" + strings.Repeat("p", MaxURLLength) }, FieldURL},
		{"description", func(in *Input) { in.Description = strings.Repeat("é", MaxDescriptionLength+1) }, FieldDescription},
		{"image", func(in *Input) { in.ImageURL = "https://img/" + strings.Repeat("i", MaxURLLength) }, FieldImageURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &fakeRepository{insert: echoWithID("1")}
			input := validInput
			tt.mutate(&input)

			_, err := newTestService(repository).CreateCreator(context.Background(), input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, MessageFieldsTooLong, ae.Message)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
			assert.Zero(t, repository.calls)
		})
	}
}

func TestService_CreateCreator_AcceptsFieldsAtLimit(t *testing.T) {
	repository := &fakeRepository{insert: echoWithID("1")}
	input := Input{
		Name:        strings.Repeat("n", MaxNameLength),
		URL:         "https://a.tv",
		Description: strings.Repeat("é", MaxDescriptionLength),
	}

	_, err := newTestService(repository).CreateCreator(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 1, repository.calls)
}

func TestService_CreateCreator_OmitsEmptyImage(t *testing.T) {
	repository := &fakeRepository{insert: echoWithID("1")}

	input := Input{Name: " Ana ", URL: " https://a.tv ", Description: " Cooking ", ImageURL: "   "}
	creator, err := newTestService(repository).CreateCreator(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, repository.insertPayloads, 1)
	assert.Equal(t, Row{"name": "Ana", "url": "https://a.tv", "description": "Cooking"}, repository.insertPayloads[0])
	assert.Equal(t, &Creator{ID: "1", Name: "Ana", URL: "https://a.tv", Description: "Cooking"}, creator)
}

func TestService_CreateCreator_SendsImage(t *testing.T) {
	repository := &fakeRepository{insert: echoWithID("1")}

	input := validInput
	input.ImageURL = "https://img/a.png"
	creator, err := newTestService(repository).CreateCreator(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "https://img/a.png", repository.insertPayloads[0]["imageURL"])
	assert.Equal(t, "https://img/a.png", creator.ImageURL)
}

func TestService_CreateCreator_FallsBackToSnakeColumn(t *testing.T) {
	repository := &fakeRepository{}
	repository.insert = func(payload Row) (Row, error) {
		if _, ok := payload["imageURL"]; ok {
			return nil, apperr.Store("Could not find the 'imageURL' column of 'creators' in the schema cache", nil)
		}
		return echoWithID("9")(payload)
	}

	input := validInput
	input.ImageURL = "https://img/a.png"
	creator, err := newTestService(repository).CreateCreator(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 2, repository.calls)
	assert.Equal(t, "https://img/a.png", repository.insertPayloads[1]["image_url"])
	assert.NotContains(t, repository.insertPayloads[1], "imageURL")
	assert.Equal(t, "https://img/a.png", creator.ImageURL)
}

func TestService_CreateCreator_FallbackFailureSurfacesSecondError(t *testing.T) {
	repository := &fakeRepository{}
	repository.insert = func(payload Row) (Row, error) {
		if _, ok := payload["imageURL"]; ok {
			return nil, apperr.Store("column \"imageURL\" of relation \"creators\" does not exist", nil)
		}
		return nil, apperr.Store("new row violates row-level security policy", nil)
	}

	input := validInput
	input.ImageURL = "https://img/a.png"
	_, err := newTestService(repository).CreateCreator(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, "new row violates row-level security policy", err.Error())
	assert.Equal(t, 2, repository.calls)
}

func TestService_CreateCreator_NoEcho(t *testing.T) {
	repository := &fakeRepository{insert: func(Row) (Row, error) { return nil, nil }}

	_, err := newTestService(repository).CreateCreator(context.Background(), validInput)

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))
}

func TestService_UpdateCreator(t *testing.T) {
	repository := &fakeRepository{}
	repository.update = func(id string, payload Row) (Row, error) {
		return echoWithID(id)(payload)
	}

	creator, err := newTestService(repository).UpdateCreator(context.Background(), "3", validInput)

	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, repository.updateIDs)
	assert.Equal(t, "3", creator.ID)
	assert.Equal(t, "Ana", creator.Name)
}

func TestService_UpdateCreator_FallbackKeepsID(t *testing.T) {
	repository := &fakeRepository{}
	repository.update = func(id string, payload Row) (Row, error) {
		if _, ok := payload["imageURL"]; ok {
			return nil, apperr.Store("Could not find the 'imageURL' column of 'creators' in the schema cache", nil)
		}
		return echoWithID(id)(payload)
	}

	input := validInput
	input.ImageURL = "https://img/new.png"
	creator, err := newTestService(repository).UpdateCreator(context.Background(), "3", input)

	require.NoError(t, err)
	assert.Equal(t, []string{"3", "3"}, repository.updateIDs)
	assert.Equal(t, "https://img/new.png", creator.ImageURL)
}

func TestService_UpdateCreator_EmptyEchoIsNotFound(t *testing.T) {
	repository := &fakeRepository{update: func(string, Row) (Row, error) { return nil, nil }}

	_, err := newTestService(repository).UpdateCreator(context.Background(), "404", validInput)

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_UpdateCreator_ValidationMakesNoCalls(t *testing.T) {
	repository := &fakeRepository{}

	_, err := newTestService(repository).UpdateCreator(context.Background(), "1", Input{Name: "Ana"})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Zero(t, repository.calls)
}

func TestService_DeleteCreator(t *testing.T) {
	repository := &fakeRepository{}

	err := newTestService(repository).DeleteCreator(context.Background(), "5")

	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, repository.deletedIDs)
	assert.Equal(t, 1, repository.calls)
}

func TestService_DeleteCreator_BlankID(t *testing.T) {
	repository := &fakeRepository{}

	err := newTestService(repository).DeleteCreator(context.Background(), " ")

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, MessageMissingID, err.Error())
	assert.Zero(t, repository.calls)
}
