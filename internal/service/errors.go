// Package service implements the tripsplit Connect services on top of the
// storage layer and the debt calculator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	// ErrInvalidArgument is wrapped by request validation failures.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidTransaction is wrapped by transaction input that cannot be recorded.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// connectError maps domain errors onto Connect codes.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrInvalidTransaction),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// loadGroup fetches a group for a request, mapping failures onto Connect codes.
func loadGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: group_id required", ErrInvalidArgument))
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("Failed to load group", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}
	return group, nil
}
