package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// amountPlaces is the number of decimals in every amount sent to clients.
const amountPlaces = 2

// GroupService implements the Connect GroupService.
type GroupService struct {
	store  storage.Store
	events eventlog.Sink
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
// A nil events sink discards events.
func NewGroupService(store storage.Store, events eventlog.Sink) *GroupService {
	if events == nil {
		events = eventlog.Discard
	}
	return &GroupService{store: store, events: events}
}

// CreateGroup creates a new group with an initial roster.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"people_count", len(req.Msg.People),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: name is required", ErrInvalidArgument))
	}

	group := &models.Group{
		Name:         name,
		People:       []models.Person{},
		Transactions: []models.Transaction{},
		CreatedBy:    middleware.GetUserID(ctx),
	}
	for _, personName := range req.Msg.People {
		if personName = strings.TrimSpace(personName); personName != "" {
			group.People = append(group.People, models.Person{Name: personName})
		}
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType(eventlog.TypeGroupCreated),
		eventlog.WithData(map[string]string{"group_id": group.ID, "name": group.Name}),
		eventlog.WithUser(group.CreatedBy),
	))
	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(group)}), nil
}

// GetGroup retrieves a group with its roster and transactions.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups retrieves all groups, oldest first.
func (s *GroupService) ListGroups(ctx context.Context, _ *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.LoadGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i := range groups {
		out[i] = groupToAPI(&groups[i])
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group and all of its transactions.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: group_id required", ErrInvalidArgument))
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType(eventlog.TypeGroupDeleted),
		eventlog.WithData(map[string]string{"group_id": req.Msg.GroupID}),
		eventlog.WithUser(middleware.GetUserID(ctx)),
	))
	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddPerson appends a person to a group's roster.
func (s *GroupService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	slog.Info("AddPerson request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: group_id required", ErrInvalidArgument))
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: name is required", ErrInvalidArgument))
	}

	person := &models.Person{Name: name, UserID: req.Msg.UserID}
	if err := s.store.AddPerson(ctx, req.Msg.GroupID, person); err != nil {
		slog.Error("AddPerson failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType(eventlog.TypePersonAdded),
		eventlog.WithData(map[string]string{"group_id": req.Msg.GroupID, "person_id": person.ID}),
		eventlog.WithUser(middleware.GetUserID(ctx)),
	))
	slog.Info("Person added", "group_id", req.Msg.GroupID, "person_id", person.ID)

	p := personToAPI(*person)
	return connect.NewResponse(&api.AddPersonResponse{Person: &p}), nil
}

// GetGroupDebts computes who owes whom in a group, after pairwise netting.
// Debts are sorted by debtor name, then creditor name.
func (s *GroupService) GetGroupDebts(ctx context.Context, req *connect.Request[api.GetGroupDebtsRequest]) (*connect.Response[api.GetGroupDebtsResponse], error) {
	slog.Info("GetGroupDebts request received", "group_id", req.Msg.GroupID)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	names := group.PersonNames()
	debts := calculator.CalculateDebts(*group)
	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = api.Debt{
			FromPersonID: d.FromPersonID,
			FromName:     names[d.FromPersonID],
			ToPersonID:   d.ToPersonID,
			ToName:       names[d.ToPersonID],
			Amount:       d.Amount.StringFixed(amountPlaces),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FromName != out[j].FromName {
			return out[i].FromName < out[j].FromName
		}
		return out[i].ToName < out[j].ToName
	})

	slog.Info("GetGroupDebts successful", "group_id", group.ID, "count", len(out))

	return connect.NewResponse(&api.GetGroupDebtsResponse{Debts: out}), nil
}

// GetGroupBalances reports what each roster member paid, owes and nets.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupID)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	names := group.PersonNames()
	balances := calculator.CalculateBalances(*group)
	out := make([]api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = api.MemberBalance{
			PersonID: b.PersonID,
			Name:     names[b.PersonID],
			Paid:     b.Paid.StringFixed(amountPlaces),
			Share:    b.Share.StringFixed(amountPlaces),
			Net:      b.Net.StringFixed(amountPlaces),
		}
	}

	slog.Info("GetGroupBalances successful", "group_id", group.ID, "members", len(out))

	return connect.NewResponse(&api.GetGroupBalancesResponse{Balances: out}), nil
}

// ExportGroups returns the whole collection in its persisted shape.
func (s *GroupService) ExportGroups(ctx context.Context, _ *connect.Request[api.ExportGroupsRequest]) (*connect.Response[api.ExportGroupsResponse], error) {
	slog.Info("ExportGroups request received")

	groups, err := s.store.LoadGroups(ctx)
	if err != nil {
		slog.Error("ExportGroups failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]api.Group, len(groups))
	for i := range groups {
		out[i] = *groupToAPI(&groups[i])
	}

	slog.Info("ExportGroups successful", "count", len(out))

	return connect.NewResponse(&api.ExportGroupsResponse{Groups: out}), nil
}

// ImportGroups replaces the whole collection with the given groups after
// repairing or dropping entries that cannot be stored.
func (s *GroupService) ImportGroups(ctx context.Context, req *connect.Request[api.ImportGroupsRequest]) (*connect.Response[api.ImportGroupsResponse], error) {
	slog.Info("ImportGroups request received", "count", len(req.Msg.Groups))

	groups := make([]models.Group, len(req.Msg.Groups))
	for i, g := range req.Msg.Groups {
		groups[i] = groupFromAPI(g)
	}

	groups, warnings := sanitizeGroups(groups)
	for _, w := range warnings {
		slog.Warn("ImportGroups repaired input", "warning", w)
	}

	if err := s.store.SaveGroups(ctx, groups); err != nil {
		slog.Error("ImportGroups failed", "error", err)
		return nil, connectError(err)
	}

	transactions := 0
	for _, g := range groups {
		transactions += len(g.Transactions)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType(eventlog.TypeGroupsImported),
		eventlog.WithData(map[string]string{
			"groups":       strconv.Itoa(len(groups)),
			"transactions": strconv.Itoa(transactions),
			"warnings":     strconv.Itoa(len(warnings)),
		}),
		eventlog.WithUser(middleware.GetUserID(ctx)),
	))
	slog.Info("ImportGroups successful", "groups", len(groups), "transactions", transactions)

	return connect.NewResponse(&api.ImportGroupsResponse{
		GroupsImported:       len(groups),
		TransactionsImported: transactions,
		Warnings:             warnings,
	}), nil
}
