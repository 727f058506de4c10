package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const GroupServiceName = "tripsplit.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure      = "/tripsplit.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure         = "/tripsplit.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure       = "/tripsplit.v1.GroupService/ListGroups"
	GroupServiceDeleteGroupProcedure      = "/tripsplit.v1.GroupService/DeleteGroup"
	GroupServiceAddPersonProcedure        = "/tripsplit.v1.GroupService/AddPerson"
	GroupServiceGetGroupDebtsProcedure    = "/tripsplit.v1.GroupService/GetGroupDebts"
	GroupServiceGetGroupBalancesProcedure = "/tripsplit.v1.GroupService/GetGroupBalances"
	GroupServiceExportGroupsProcedure     = "/tripsplit.v1.GroupService/ExportGroups"
	GroupServiceImportGroupsProcedure     = "/tripsplit.v1.GroupService/ImportGroups"
)

// GroupServiceClient is a client for the tripsplit.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	GetGroupDebts(context.Context, *connect.Request[GetGroupDebtsRequest]) (*connect.Response[GetGroupDebtsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
	ExportGroups(context.Context, *connect.Request[ExportGroupsRequest]) (*connect.Response[ExportGroupsResponse], error)
	ImportGroups(context.Context, *connect.Request[ImportGroupsRequest]) (*connect.Response[ImportGroupsResponse], error)
}

// NewGroupServiceClient constructs a client for the tripsplit.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &groupServiceClient{
		createGroup:      connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		deleteGroup:      connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addPerson:        connect.NewClient[AddPersonRequest, AddPersonResponse](httpClient, baseURL+GroupServiceAddPersonProcedure, opts...),
		getGroupDebts:    connect.NewClient[GetGroupDebtsRequest, GetGroupDebtsResponse](httpClient, baseURL+GroupServiceGetGroupDebtsProcedure, opts...),
		getGroupBalances: connect.NewClient[GetGroupBalancesRequest, GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		exportGroups:     connect.NewClient[ExportGroupsRequest, ExportGroupsResponse](httpClient, baseURL+GroupServiceExportGroupsProcedure, opts...),
		importGroups:     connect.NewClient[ImportGroupsRequest, ImportGroupsResponse](httpClient, baseURL+GroupServiceImportGroupsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup      *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup         *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups       *connect.Client[ListGroupsRequest, ListGroupsResponse]
	deleteGroup      *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	addPerson        *connect.Client[AddPersonRequest, AddPersonResponse]
	getGroupDebts    *connect.Client[GetGroupDebtsRequest, GetGroupDebtsResponse]
	getGroupBalances *connect.Client[GetGroupBalancesRequest, GetGroupBalancesResponse]
	exportGroups     *connect.Client[ExportGroupsRequest, ExportGroupsResponse]
	importGroups     *connect.Client[ImportGroupsRequest, ImportGroupsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupDebts(ctx context.Context, req *connect.Request[GetGroupDebtsRequest]) (*connect.Response[GetGroupDebtsResponse], error) {
	return c.getGroupDebts.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) ExportGroups(ctx context.Context, req *connect.Request[ExportGroupsRequest]) (*connect.Response[ExportGroupsResponse], error) {
	return c.exportGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) ImportGroups(ctx context.Context, req *connect.Request[ImportGroupsRequest]) (*connect.Response[ImportGroupsResponse], error) {
	return c.importGroups.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the tripsplit.v1.GroupService server.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	GetGroupDebts(context.Context, *connect.Request[GetGroupDebtsRequest]) (*connect.Response[GetGroupDebtsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
	ExportGroups(context.Context, *connect.Request[ExportGroupsRequest]) (*connect.Response[ExportGroupsResponse], error)
	ImportGroups(context.Context, *connect.Request[ImportGroupsRequest]) (*connect.Response[ImportGroupsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodec(opts)
	handlers := map[string]http.Handler{
		GroupServiceCreateGroupProcedure:      connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:         connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:       connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceDeleteGroupProcedure:      connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceAddPersonProcedure:        connect.NewUnaryHandler(GroupServiceAddPersonProcedure, svc.AddPerson, opts...),
		GroupServiceGetGroupDebtsProcedure:    connect.NewUnaryHandler(GroupServiceGetGroupDebtsProcedure, svc.GetGroupDebts, opts...),
		GroupServiceGetGroupBalancesProcedure: connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...),
		GroupServiceExportGroupsProcedure:     connect.NewUnaryHandler(GroupServiceExportGroupsProcedure, svc.ExportGroups, opts...),
		GroupServiceImportGroupsProcedure:     connect.NewUnaryHandler(GroupServiceImportGroupsProcedure, svc.ImportGroups, opts...),
	}
	return "/" + GroupServiceName + "/", route(handlers)
}

// route dispatches on the full procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
