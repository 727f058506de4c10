package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqldb"
	"github.com/mmynk/tripsplit/pkg/api"
)

// recordingSink keeps every logged event in memory.
type recordingSink struct {
	mu     sync.Mutex
	events []eventlog.Event
}

func (r *recordingSink) Log(e eventlog.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	groups       api.GroupServiceClient
	transactions api.TransactionServiceClient
	auth         api.AuthServiceClient
	txService    *TransactionService
	jwt          *auth.JWTManager
	events       *recordingSink
}

// setupTestServer serves all three services over a fresh SQLite database.
// Group and transaction calls accept an optional bearer token.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqldb.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	events := &recordingSink{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	groupSvc := NewGroupService(store, events)
	txSvc := NewTransactionService(store, events)
	authSvc := NewAuthService(authenticator, jwtManager, events, nil)

	interceptors := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(api.NewGroupServiceHandler(groupSvc, interceptors))
	mux.Handle(api.NewTransactionServiceHandler(txSvc, interceptors))
	mux.Handle(api.NewAuthServiceHandler(authSvc))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		groups:       api.NewGroupServiceClient(http.DefaultClient, server.URL),
		transactions: api.NewTransactionServiceClient(http.DefaultClient, server.URL),
		auth:         api.NewAuthServiceClient(http.DefaultClient, server.URL),
		txService:    txSvc,
		jwt:          jwtManager,
		events:       events,
	}
}

// createGroup creates a group and returns it with people IDs keyed by name.
func (e *testEnv) createGroup(t *testing.T, name string, people ...string) (*api.Group, map[string]string) {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:   name,
		People: people,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	ids := make(map[string]string, len(resp.Msg.Group.People))
	for _, p := range resp.Msg.Group.People {
		ids[p.Name] = p.ID
	}
	return resp.Msg.Group, ids
}

func (e *testEnv) addTransaction(t *testing.T, groupID string, in api.TransactionInput) *api.Transaction {
	t.Helper()
	resp, err := e.transactions.AddTransaction(context.Background(), connect.NewRequest(&api.AddTransactionRequest{
		GroupID:          groupID,
		TransactionInput: in,
	}))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	return resp.Msg.Transaction
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code: expected %v, got %v (%v)", want, got, err)
	}
}
