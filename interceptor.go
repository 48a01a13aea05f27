package typeormlint

import (
	"context"
)

// PassFunc runs one rule over one file.
// It is passed to [Interceptor] functions to invoke the next interceptor
// or the rule itself.
type PassFunc func(ctx context.Context, pass *Pass) error

// Interceptor is a hook that wraps a rule pass.
//
//	func timing(ctx context.Context, pass *typeormlint.Pass, next typeormlint.PassFunc) error {
//	    start := time.Now()
//	    err := next(ctx, pass)
//	    log.Printf("%s on %s took %v", pass.Rule(), pass.File.Path, time.Since(start))
//	    return err
//	}
//
// Interceptors can inspect pass.Diagnostics() after next returns, or
// skip the pass by returning without calling next.
type Interceptor func(ctx context.Context, pass *Pass, next PassFunc) error

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, pass *Pass, next PassFunc) error {
		// Chain: i[0] -> i[1] -> ... -> next
		chain := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, pass *Pass) error {
				return current(ctx, pass, inner)
			}
		}
		return chain(ctx, pass)
	}
}
