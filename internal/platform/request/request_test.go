// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
	requestutil "github.com/taibuivan/creatorverse/internal/platform/request"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Ana"}`, false},
		{"malformed", `{"name":`, true},
		{"trailing_document", `{"name":"Ana"} {"name":"Bo"}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var target struct {
				Name string `json:"name"`
			}

			err := requestutil.DecodeJSON(httptest.NewRecorder(), request, &target)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", target.Name)
		})
	}
}

func TestID(t *testing.T) {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("id", " 42 ")

	request := httptest.NewRequest(http.MethodGet, "/creators/42", nil)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))

	assert.Equal(t, "42", requestutil.ID(request, "id"))
	assert.Empty(t, requestutil.ID(request, "missing"))
}
