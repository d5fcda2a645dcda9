// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
)

// maxJSONBytes bounds the size of a decoded request body.
const maxJSONBytes = 1 << 20

// ErrInvalidJSON is returned when a request body is not a single JSON document.
var ErrInvalidJSON = apperr.ValidationError("Request body must be valid JSON")

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to bound the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxJSONBytes)
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(target); err != nil {
		return ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (numeric id or UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
FormValue returns a posted form field without trimming.

Trimming is left to the service so re-rendered forms show what the user typed.
*/
func FormValue(request *http.Request, name string) string {
	return request.PostFormValue(name)
}
