package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, caller, duration and, on failure, the error code.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			userID := GetUserID(ctx) // empty unless an outer interceptor authenticated the call
			duration := time.Since(start).Milliseconds()

			var connectErr *connect.Error
			switch {
			case err == nil:
				logger.Info("RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"duration_ms", duration,
				)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				logger.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"user_id", userID,
					"duration_ms", duration,
				)
			default:
				logger.Error("RPC error",
					"procedure", procedure,
					"code", connect.CodeOf(err),
					"error", err,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
