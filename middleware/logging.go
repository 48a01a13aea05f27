// Package middleware provides interceptors for typeormlint.Linter.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/typeormlint"
)

// LoggingInterceptor creates an interceptor that logs rule passes using slog.
// Each pass is logged at debug level with its duration and diagnostic
// count; failed passes are logged at error level.
func LoggingInterceptor(logger *slog.Logger) typeormlint.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, pass *typeormlint.Pass, next typeormlint.PassFunc) error {
		start := time.Now()

		err := next(ctx, pass)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "rule pass failed",
				slog.String("rule", pass.Rule()),
				slog.String("file", pass.File.Path),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.DebugContext(ctx, "rule pass completed",
				slog.String("rule", pass.Rule()),
				slog.String("file", pass.File.Path),
				slog.Int("diagnostics", len(pass.Diagnostics())),
				slog.Duration("duration", duration),
			)
		}

		return err
	}
}
