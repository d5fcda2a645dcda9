// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/creatorverse/internal/platform/apperr"
	"github.com/taibuivan/creatorverse/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Ana", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
		{"tabs_and_newlines", "name", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").
		Required("url", " ").
		MaxLen("description", "abcdef", 3).
		Custom("id", true, "bad id").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
	assert.Equal(t, "Validation failed", ae.Message)
}

func TestValidator_ErrWithMessage(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.Required("name", "Ana").ErrWithMessage("unused"))

	err := v.Required("url", "").ErrWithMessage("Please provide a url.")
	require.Error(t, err)
	assert.Equal(t, "Please provide a url.", err.Error())
}
