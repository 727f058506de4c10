package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const TransactionServiceName = "tripsplit.v1.TransactionService"

const (
	TransactionServiceAddTransactionProcedure    = "/tripsplit.v1.TransactionService/AddTransaction"
	TransactionServiceGetTransactionProcedure    = "/tripsplit.v1.TransactionService/GetTransaction"
	TransactionServiceEditTransactionProcedure   = "/tripsplit.v1.TransactionService/EditTransaction"
	TransactionServiceDeleteTransactionProcedure = "/tripsplit.v1.TransactionService/DeleteTransaction"
	TransactionServiceSettleDebtProcedure        = "/tripsplit.v1.TransactionService/SettleDebt"
)

// TransactionServiceClient is a client for the tripsplit.v1.TransactionService service.
type TransactionServiceClient interface {
	AddTransaction(context.Context, *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error)
	EditTransaction(context.Context, *connect.Request[EditTransactionRequest]) (*connect.Response[EditTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
	SettleDebt(context.Context, *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error)
}

// NewTransactionServiceClient constructs a client for the tripsplit.v1.TransactionService service.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &transactionServiceClient{
		addTransaction:    connect.NewClient[AddTransactionRequest, AddTransactionResponse](httpClient, baseURL+TransactionServiceAddTransactionProcedure, opts...),
		getTransaction:    connect.NewClient[GetTransactionRequest, GetTransactionResponse](httpClient, baseURL+TransactionServiceGetTransactionProcedure, opts...),
		editTransaction:   connect.NewClient[EditTransactionRequest, EditTransactionResponse](httpClient, baseURL+TransactionServiceEditTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+TransactionServiceDeleteTransactionProcedure, opts...),
		settleDebt:        connect.NewClient[SettleDebtRequest, SettleDebtResponse](httpClient, baseURL+TransactionServiceSettleDebtProcedure, opts...),
	}
}

type transactionServiceClient struct {
	addTransaction    *connect.Client[AddTransactionRequest, AddTransactionResponse]
	getTransaction    *connect.Client[GetTransactionRequest, GetTransactionResponse]
	editTransaction   *connect.Client[EditTransactionRequest, EditTransactionResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	settleDebt        *connect.Client[SettleDebtRequest, SettleDebtResponse]
}

func (c *transactionServiceClient) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetTransaction(ctx context.Context, req *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) EditTransaction(ctx context.Context, req *connect.Request[EditTransactionRequest]) (*connect.Response[EditTransactionResponse], error) {
	return c.editTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

// TransactionServiceHandler is implemented by the tripsplit.v1.TransactionService server.
type TransactionServiceHandler interface {
	AddTransaction(context.Context, *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error)
	EditTransaction(context.Context, *connect.Request[EditTransactionRequest]) (*connect.Response[EditTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
	SettleDebt(context.Context, *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error)
}

// NewTransactionServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodec(opts)
	handlers := map[string]http.Handler{
		TransactionServiceAddTransactionProcedure:    connect.NewUnaryHandler(TransactionServiceAddTransactionProcedure, svc.AddTransaction, opts...),
		TransactionServiceGetTransactionProcedure:    connect.NewUnaryHandler(TransactionServiceGetTransactionProcedure, svc.GetTransaction, opts...),
		TransactionServiceEditTransactionProcedure:   connect.NewUnaryHandler(TransactionServiceEditTransactionProcedure, svc.EditTransaction, opts...),
		TransactionServiceDeleteTransactionProcedure: connect.NewUnaryHandler(TransactionServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...),
		TransactionServiceSettleDebtProcedure:        connect.NewUnaryHandler(TransactionServiceSettleDebtProcedure, svc.SettleDebt, opts...),
	}
	return "/" + TransactionServiceName + "/", route(handlers)
}
