// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package viewscope_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/creatorverse/internal/platform/viewscope"
)

type ctxKey struct{}

func TestLoad_ActiveView(t *testing.T) {
	value, err := viewscope.Load(viewscope.Of(context.Background()), func(context.Context) (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestLoad_PassesThroughErrors(t *testing.T) {
	failure := errors.New("store down")

	_, err := viewscope.Load(viewscope.Of(context.Background()), func(context.Context) (int, error) {
		return 0, failure
	})

	assert.ErrorIs(t, err, failure)
	assert.False(t, viewscope.IsStale(err))
}

func TestLoad_DiscardsResultWhenViewEnds(t *testing.T) {
	view, leave := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "request-1"))
	scope := viewscope.Of(view)

	var (
		loadCtxErr error
		loadValue  any
	)
	value, err := viewscope.Load(scope, func(ctx context.Context) ([]string, error) {
		leave()
		loadCtxErr = ctx.Err()
		loadValue = ctx.Value(ctxKey{})
		return []string{"late"}, nil
	})

	assert.True(t, viewscope.IsStale(err))
	assert.Nil(t, value)
	assert.False(t, scope.Active())

	// The load itself was neither cancelled nor stripped of request values.
	assert.NoError(t, loadCtxErr)
	assert.Equal(t, "request-1", loadValue)
}

func TestRun(t *testing.T) {
	view, leave := context.WithCancel(context.Background())
	ran := false

	err := viewscope.Run(viewscope.Of(view), func(context.Context) error {
		ran = true
		leave()
		return nil
	})

	assert.True(t, ran)
	assert.ErrorIs(t, err, viewscope.ErrStale)
}
