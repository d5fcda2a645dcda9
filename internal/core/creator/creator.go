// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package creator manages the catalog of content creators.
//
// Rows live in an external store (a PostgREST endpoint, or the Postgres
// database behind it). This package owns everything between the pages and
// that store: validation, payload construction, image-field normalization,
// and the one-shot fallback for stores that name the image column differently.
package creator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Creator is a content creator as read back from the store.
//
// ImageURL is always present; an empty string means the creator has no image.
type Creator struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
}

// Input carries the user-supplied fields of a create or full-record update.
type Input struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
}

// Row is a raw store row (or outgoing payload) keyed by column name.
type Row map[string]any

// Column names understood by the store.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldImageURL    = "imageURL"

	// ColumnImageURLSnake is the legacy physical name of the image column.
	ColumnImageURLSnake = "image_url"
)

// fieldAliases maps a canonical field name to the alternate column names a
// store may have persisted it under, in order of preference.
//
// Reads fold aliases into the canonical name; writes fall back to the first
// alias when the canonical column is rejected.
var fieldAliases = map[string][]string{
	FieldImageURL: {ColumnImageURLSnake},
}

// aliasesOf returns the alternate column names registered for field.
func aliasesOf(field string) []string {
	return fieldAliases[field]
}

// fromRow converts a normalized row into a [Creator].
func fromRow(row Row) *Creator {
	return &Creator{
		ID:          stringValue(row[FieldID]),
		Name:        stringValue(row[FieldName]),
		URL:         stringValue(row[FieldURL]),
		Description: stringValue(row[FieldDescription]),
		ImageURL:    stringValue(row[FieldImageURL]),
	}
}

// stringValue renders a decoded column value as text. Nil becomes "".
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case [16]byte:
		return uuid.UUID(v).String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// trimmed returns a copy of in with every field trimmed of surrounding space.
func (in Input) trimmed() Input {
	return Input{
		Name:        strings.TrimSpace(in.Name),
		URL:         strings.TrimSpace(in.URL),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}

// payload builds the outgoing row for a validated, trimmed input.
//
// The image field is left out entirely when empty so the store never sees an
// empty or null write for it.
func (in Input) payload() Row {
	row := Row{
		FieldName:        in.Name,
		FieldURL:         in.URL,
		FieldDescription: in.Description,
	}
	if in.ImageURL != "" {
		row[FieldImageURL] = in.ImageURL
	}
	return row
}
