// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package viewscope ties store calls to the page view that started them.

A page load runs to completion even when the browser goes away: the store call
is not aborted. What changes is what happens to its result. If the view is gone
by the time the call returns, [Load] reports [ErrStale] and the caller drops
the result without rendering, redirecting, or logging a failure.

Usage:

	creators, err := viewscope.Load(viewscope.Of(request.Context()), service.ListCreators)
	if viewscope.IsStale(err) {
	    return
	}
*/
package viewscope

import (
	"context"
	"errors"
)

// ErrStale reports that the view which started a load is gone.
var ErrStale = errors.New("viewscope: view is no longer active")

// Scope is the lifetime token of one page view.
type Scope struct {
	view context.Context
}

// Of returns the scope of the view whose lifetime is ctx.
func Of(ctx context.Context) Scope {
	return Scope{view: ctx}
}

// Active reports whether the view is still waiting for results.
func (scope Scope) Active() bool {
	return scope.view.Err() == nil
}

// Load runs load and hands its result back only if the view is still active.
//
// load receives a context that carries the view's values (logger, request id)
// but not its cancellation, so the store call is never cut short.
func Load[T any](scope Scope, load func(ctx context.Context) (T, error)) (T, error) {
	value, err := load(context.WithoutCancel(scope.view))
	if !scope.Active() {
		var zero T
		return zero, ErrStale
	}
	return value, err
}

// Run is [Load] for operations that only return an error.
func Run(scope Scope, run func(ctx context.Context) error) error {
	_, err := Load(scope, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, run(ctx)
	})
	return err
}

// IsStale reports whether err means the result was discarded.
func IsStale(err error) bool {
	return errors.Is(err, ErrStale)
}
