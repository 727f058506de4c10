package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/storage/sqldb"
	"github.com/mmynk/tripsplit/pkg/api"
)

func newTestServer(t *testing.T, requireAuth bool) *httptest.Server {
	t.Helper()

	store, err := sqldb.New(filepath.Join(t.TempDir(), "router.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>tripsplit</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('hi')"), 0o644))

	router, err := newRouter(routerConfig{
		store:       store,
		jwtManager:  auth.NewJWTManager("test-secret", time.Hour),
		events:      eventlog.Discard,
		registry:    prometheus.NewRegistry(),
		staticDir:   staticDir,
		requireAuth: requireAuth,
	})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouter(t *testing.T) {
	server := newTestServer(t, false)
	groups := api.NewGroupServiceClient(http.DefaultClient, server.URL)

	t.Run("health", func(t *testing.T) {
		status, body := get(t, server.URL+"/healthz")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body)
	})

	t.Run("rpc and metrics", func(t *testing.T) {
		_, err := groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
			Name:   "Trip",
			People: []string{"Ann", "Ben"},
		}))
		require.NoError(t, err)

		status, body := get(t, server.URL+"/metrics")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `tripsplit_rpc_requests_total{code="ok",procedure="/tripsplit.v1.GroupService/CreateGroup"} 1`)
	})

	t.Run("static files", func(t *testing.T) {
		status, body := get(t, server.URL+"/app.js")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "console.log")

		status, body = get(t, server.URL+"/")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "tripsplit")
	})

	t.Run("spa fallback", func(t *testing.T) {
		status, body := get(t, server.URL+"/groups/123")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "tripsplit")
	})

	t.Run("unknown rpc service", func(t *testing.T) {
		status, _ := get(t, server.URL+"/tripsplit.v1.NopeService/Nope")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, server.URL+api.GroupServiceGetGroupProcedure, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_RequireAuth(t *testing.T) {
	server := newTestServer(t, true)
	ctx := context.Background()
	groups := api.NewGroupServiceClient(http.DefaultClient, server.URL)
	authClient := api.NewAuthServiceClient(http.DefaultClient, server.URL)

	_, err := groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	reg, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "ann@example.com",
		DisplayName: "Ann",
		Password:    "correct horse",
	}))
	require.NoError(t, err)

	req := connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"})
	req.Header().Set("Authorization", "Bearer "+reg.Msg.Token)
	resp, err := groups.CreateGroup(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, resp.Msg.Group.CreatedBy)
}
