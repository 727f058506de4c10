package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const AuthServiceName = "tripsplit.v1.AuthService"

const (
	AuthServiceRegisterProcedure = "/tripsplit.v1.AuthService/Register"
	AuthServiceLoginProcedure    = "/tripsplit.v1.AuthService/Login"
)

// AuthServiceClient is a client for the tripsplit.v1.AuthService service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
}

// NewAuthServiceClient constructs a client for the tripsplit.v1.AuthService
// service. The baseURL is the server's root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &authServiceClient{
		register: connect.NewClient[RegisterRequest, AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	register *connect.Client[RegisterRequest, AuthResponse]
	login    *connect.Client[LoginRequest, AuthResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the tripsplit.v1.AuthService server.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodec(opts)
	register := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func withCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func withHandlerCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}
