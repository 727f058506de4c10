package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// TransactionService implements the Connect TransactionService.
type TransactionService struct {
	store  storage.Store
	events eventlog.Sink
	now    func() time.Time
}

var _ api.TransactionServiceHandler = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService with the given
// storage backend. A nil events sink discards events.
func NewTransactionService(store storage.Store, events eventlog.Sink) *TransactionService {
	if events == nil {
		events = eventlog.Discard
	}
	return &TransactionService{store: store, events: events, now: time.Now}
}

// AddTransaction records an expense in a group.
func (s *TransactionService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	slog.Info("AddTransaction request received",
		"group_id", req.Msg.GroupID,
		"description", req.Msg.Description,
		"participants_count", len(req.Msg.Participants),
	)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	tx, err := buildTransaction(group, req.Msg.TransactionInput, s.now())
	if err != nil {
		slog.Warn("AddTransaction rejected", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}
	tx.CreatedBy = middleware.GetUserID(ctx)

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		slog.Error("AddTransaction failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	s.logEvent(ctx, eventlog.TypeTransactionAdded, tx.GroupID, tx.ID)
	slog.Info("Transaction added", "group_id", tx.GroupID, "transaction_id", tx.ID, "amount", tx.Amount.String())

	return connect.NewResponse(&api.AddTransactionResponse{Transaction: transactionToAPI(tx)}), nil
}

// GetTransaction retrieves a single transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	slog.Info("GetTransaction request received", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	if err := requireIDs(req.Msg.GroupID, req.Msg.TransactionID); err != nil {
		return nil, err
	}

	tx, err := s.store.GetTransaction(ctx, req.Msg.GroupID, req.Msg.TransactionID)
	if err != nil {
		slog.Error("GetTransaction failed", "transaction_id", req.Msg.TransactionID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetTransactionResponse{Transaction: transactionToAPI(tx)}), nil
}

// EditTransaction replaces the editable fields of a transaction.
func (s *TransactionService) EditTransaction(ctx context.Context, req *connect.Request[api.EditTransactionRequest]) (*connect.Response[api.EditTransactionResponse], error) {
	slog.Info("EditTransaction request received", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	if err := requireIDs(req.Msg.GroupID, req.Msg.TransactionID); err != nil {
		return nil, err
	}

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetTransaction(ctx, group.ID, req.Msg.TransactionID)
	if err != nil {
		slog.Error("EditTransaction failed", "transaction_id", req.Msg.TransactionID, "error", err)
		return nil, connectError(err)
	}

	tx, err := buildTransaction(group, req.Msg.TransactionInput, s.now())
	if err != nil {
		slog.Warn("EditTransaction rejected", "transaction_id", existing.ID, "error", err)
		return nil, connectError(err)
	}
	tx.ID = existing.ID
	tx.CreatedBy = existing.CreatedBy
	tx.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		slog.Error("EditTransaction failed", "transaction_id", tx.ID, "error", err)
		return nil, connectError(err)
	}

	s.logEvent(ctx, eventlog.TypeTransactionUpdated, tx.GroupID, tx.ID)
	slog.Info("Transaction updated", "group_id", tx.GroupID, "transaction_id", tx.ID)

	return connect.NewResponse(&api.EditTransactionResponse{Transaction: transactionToAPI(tx)}), nil
}

// DeleteTransaction removes a transaction from its group.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	slog.Info("DeleteTransaction request received", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	if err := requireIDs(req.Msg.GroupID, req.Msg.TransactionID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteTransaction(ctx, req.Msg.GroupID, req.Msg.TransactionID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.TransactionID, "error", err)
		return nil, connectError(err)
	}

	s.logEvent(ctx, eventlog.TypeTransactionDeleted, req.Msg.GroupID, req.Msg.TransactionID)
	slog.Info("Transaction deleted", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// SettleDebt records a repayment from one member to another. The payment is
// stored as a transaction, so it shows up in the group's history and
// reduces the debtor's outstanding debt.
func (s *TransactionService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	slog.Info("SettleDebt request received",
		"group_id", req.Msg.GroupID,
		"from", req.Msg.FromPersonID,
		"to", req.Msg.ToPersonID,
	)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if req.Msg.FromPersonID == req.Msg.ToPersonID {
		return nil, connectError(fmt.Errorf("%w: a person cannot settle with themselves", ErrInvalidTransaction))
	}
	amount, err := decimal.NewFromString(req.Msg.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, connectError(fmt.Errorf("%w: settlement amount must be positive", ErrInvalidTransaction))
	}

	settlement := models.Settlement{
		GroupID:      group.ID,
		FromPersonID: req.Msg.FromPersonID,
		ToPersonID:   req.Msg.ToPersonID,
		Amount:       amount,
		Date:         req.Msg.Date,
		Note:         req.Msg.Note,
	}
	draft := settlement.Transaction()

	tx, err := buildTransaction(group, api.TransactionInput{
		Description:  draft.Description,
		Amount:       draft.Amount.String(),
		PaidByID:     draft.PaidByID,
		Participants: draft.Participants,
		Date:         draft.Date,
	}, s.now())
	if err != nil {
		slog.Warn("SettleDebt rejected", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}
	tx.CreatedBy = middleware.GetUserID(ctx)

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		slog.Error("SettleDebt failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	s.logEvent(ctx, eventlog.TypeSettlementRecorded, tx.GroupID, tx.ID)
	slog.Info("Settlement recorded", "group_id", tx.GroupID, "transaction_id", tx.ID, "amount", amount.String())

	return connect.NewResponse(&api.SettleDebtResponse{Transaction: transactionToAPI(tx)}), nil
}

func (s *TransactionService) logEvent(ctx context.Context, eventType, groupID, transactionID string) {
	s.events.Log(eventlog.NewEvent(
		eventlog.WithType(eventType),
		eventlog.WithData(map[string]string{"group_id": groupID, "transaction_id": transactionID}),
		eventlog.WithUser(middleware.GetUserID(ctx)),
	))
}

func requireIDs(groupID, transactionID string) error {
	if groupID == "" || transactionID == "" {
		return connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: group_id and transaction_id required", ErrInvalidArgument))
	}
	return nil
}
