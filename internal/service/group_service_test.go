package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:   "  Roommates ",
		People: []string{"Alice", " ", "Bob", "Charlie"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group == nil {
		t.Fatal("expected group in response")
	}
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if len(group.People) != 3 {
		t.Fatalf("people: expected 3, got %d", len(group.People))
	}
	for i, name := range []string{"Alice", "Bob", "Charlie"} {
		if group.People[i].Name != name || group.People[i].ID == "" {
			t.Errorf("person %d: expected %s with an ID, got %+v", i, name, group.People[i])
		}
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if got := env.events.types(); !reflect.DeepEqual(got, []string{eventlog.TypeGroupCreated}) {
		t.Errorf("events: got %v", got)
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestCreateGroup_StampsCreator(t *testing.T) {
	env := setupTestServer(t)

	token, _, err := env.jwt.Generate(&models.User{ID: "user-42", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req := connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"})
	req.Header().Set("Authorization", "Bearer "+token)

	resp, err := env.groups.CreateGroup(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if resp.Msg.Group.CreatedBy != "user-42" {
		t.Errorf("createdBy: expected user-42, got %q", resp.Msg.Group.CreatedBy)
	}
}

func TestGetGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	created, ids := env.createGroup(t, "Work Lunch", "Diana", "Eve")
	env.addTransaction(t, created.ID, api.TransactionInput{
		Description:  "Pizza",
		Amount:       "30",
		PaidByID:     ids["Diana"],
		Participants: []string{ids["Diana"], ids["Eve"]},
	})

	resp, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: created.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.Name != "Work Lunch" {
		t.Errorf("name: expected 'Work Lunch', got '%s'", group.Name)
	}
	if len(group.People) != 2 {
		t.Errorf("people: expected 2, got %d", len(group.People))
	}
	if len(group.Transactions) != 1 {
		t.Fatalf("transactions: expected 1, got %d", len(group.Transactions))
	}
	if !group.Transactions[0].Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("amount: expected 30, got %s", group.Transactions[0].Amount)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "missing"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestListAndDeleteGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	first, _ := env.createGroup(t, "First", "A", "B")
	second, _ := env.createGroup(t, "Second", "C")

	resp, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp.Msg.Groups))
	}
	if resp.Msg.Groups[0].ID != first.ID || resp.Msg.Groups[1].ID != second.ID {
		t.Errorf("groups not in creation order: %s, %s", resp.Msg.Groups[0].Name, resp.Msg.Groups[1].Name)
	}

	if _, err := env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: first.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: first.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: first.ID}))
	assertCode(t, err, connect.CodeNotFound)

	resp, err = env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].ID != second.ID {
		t.Errorf("expected only %q to remain, got %+v", second.Name, resp.Msg.Groups)
	}
}

func TestAddPerson(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group, _ := env.createGroup(t, "Trip", "Alice")

	resp, err := env.groups.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{
		GroupID: group.ID,
		Name:    " Bob ",
		UserID:  "user-7",
	}))
	if err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}
	if resp.Msg.Person.ID == "" || resp.Msg.Person.Name != "Bob" || resp.Msg.Person.UserID != "user-7" {
		t.Errorf("unexpected person: %+v", resp.Msg.Person)
	}

	getResp, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	people := getResp.Msg.Group.People
	if len(people) != 2 || people[1].Name != "Bob" {
		t.Errorf("expected Bob appended to roster, got %+v", people)
	}

	t.Run("empty name", func(t *testing.T) {
		_, err := env.groups.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{GroupID: group.ID, Name: ""}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := env.groups.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{GroupID: "missing", Name: "Eve"}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestGetGroupDebts(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group, ids := env.createGroup(t, "Demo Trip", "Michael", "Andrew", "James")

	env.addTransaction(t, group.ID, api.TransactionInput{
		Description:  "Lunch",
		Amount:       "120",
		PaidByID:     ids["Michael"],
		Participants: []string{ids["Michael"], ids["Andrew"]},
	})
	env.addTransaction(t, group.ID, api.TransactionInput{
		Description:  "Activity",
		Amount:       "180",
		PaidByID:     ids["James"],
		Participants: []string{ids["Michael"], ids["Andrew"], ids["James"]},
	})

	resp, err := env.groups.GetGroupDebts(ctx, connect.NewRequest(&api.GetGroupDebtsRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupDebts failed: %v", err)
	}

	var got []string
	for _, d := range resp.Msg.Debts {
		got = append(got, d.FromName+" owes "+d.ToName+" "+d.Amount)
		if d.FromPersonID != ids[d.FromName] || d.ToPersonID != ids[d.ToName] {
			t.Errorf("ids do not match names in %+v", d)
		}
	}
	want := []string{
		"Andrew owes James 60.00",
		"Andrew owes Michael 60.00",
		"Michael owes James 60.00",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("debts:\n got %v\nwant %v", got, want)
	}

	t.Run("empty group", func(t *testing.T) {
		empty, _ := env.createGroup(t, "Empty", "Solo")
		resp, err := env.groups.GetGroupDebts(ctx, connect.NewRequest(&api.GetGroupDebtsRequest{GroupID: empty.ID}))
		if err != nil {
			t.Fatalf("GetGroupDebts failed: %v", err)
		}
		if len(resp.Msg.Debts) != 0 {
			t.Errorf("expected no debts, got %v", resp.Msg.Debts)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := env.groups.GetGroupDebts(ctx, connect.NewRequest(&api.GetGroupDebtsRequest{GroupID: "missing"}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestGetGroupBalances(t *testing.T) {
	env := setupTestServer(t)
	group, ids := env.createGroup(t, "Flat", "Ann", "Ben", "Cat")

	env.addTransaction(t, group.ID, api.TransactionInput{
		Description:  "Groceries",
		Amount:       "100",
		PaidByID:     ids["Ann"],
		Participants: []string{ids["Ann"], ids["Ben"], ids["Cat"]},
	})

	resp, err := env.groups.GetGroupBalances(context.Background(), connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	want := []api.MemberBalance{
		{PersonID: ids["Ann"], Name: "Ann", Paid: "100.00", Share: "33.33", Net: "66.67"},
		{PersonID: ids["Ben"], Name: "Ben", Paid: "0.00", Share: "33.33", Net: "-33.33"},
		{PersonID: ids["Cat"], Name: "Cat", Paid: "0.00", Share: "33.33", Net: "-33.33"},
	}
	if !reflect.DeepEqual(resp.Msg.Balances, want) {
		t.Errorf("balances:\n got %+v\nwant %+v", resp.Msg.Balances, want)
	}
}

func TestExportImportGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group, ids := env.createGroup(t, "Original", "Ann", "Ben")
	env.addTransaction(t, group.ID, api.TransactionInput{
		Description:  "Taxi",
		Amount:       "20.50",
		PaidByID:     ids["Ann"],
		Participants: []string{ids["Ann"], ids["Ben"]},
		Date:         "2024-03-01",
	})

	exported, err := env.groups.ExportGroups(ctx, connect.NewRequest(&api.ExportGroupsRequest{}))
	if err != nil {
		t.Fatalf("ExportGroups failed: %v", err)
	}
	if len(exported.Msg.Groups) != 1 || len(exported.Msg.Groups[0].Transactions) != 1 {
		t.Fatalf("unexpected export: %+v", exported.Msg.Groups)
	}

	imported := exported.Msg.Groups
	imported = append(imported, api.Group{
		Name:   "Imported",
		People: []api.Person{{ID: "p1", Name: "Xia"}, {ID: "p2", Name: "Yan"}, {ID: "p1", Name: "Dup"}},
		Transactions: []api.Transaction{
			{ID: "t1", Description: "Ok", Amount: decimal.NewFromInt(10), PaidByID: "p1", Participants: []string{"p1", "p2", "ghost"}},
			{ID: "t2", Description: "Unknown payer", Amount: decimal.NewFromInt(5), PaidByID: "ghost", Participants: []string{"p1"}},
			{ID: "t3", Description: "Negative", Amount: decimal.NewFromInt(-5), PaidByID: "p1", Participants: []string{"p2"}},
			{ID: "t4", Description: "Nobody", Amount: decimal.NewFromInt(5), PaidByID: "p1", Participants: []string{"ghost"}},
		},
	})

	resp, err := env.groups.ImportGroups(ctx, connect.NewRequest(&api.ImportGroupsRequest{Groups: imported}))
	if err != nil {
		t.Fatalf("ImportGroups failed: %v", err)
	}
	if resp.Msg.GroupsImported != 2 {
		t.Errorf("groups imported: expected 2, got %d", resp.Msg.GroupsImported)
	}
	if resp.Msg.TransactionsImported != 2 {
		t.Errorf("transactions imported: expected 2, got %d", resp.Msg.TransactionsImported)
	}
	if len(resp.Msg.Warnings) != 6 {
		t.Errorf("expected 6 warnings, got %d: %s", len(resp.Msg.Warnings), strings.Join(resp.Msg.Warnings, "; "))
	}

	list, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups after import, got %d", len(list.Msg.Groups))
	}

	original := list.Msg.Groups[0]
	if original.ID != group.ID || original.Transactions[0].Date != "2024-03-01" ||
		!original.Transactions[0].Amount.Equal(decimal.RequireFromString("20.50")) {
		t.Errorf("original group did not round trip: %+v", original)
	}

	added := list.Msg.Groups[1]
	if len(added.People) != 2 {
		t.Errorf("expected duplicate person dropped, got %+v", added.People)
	}
	if len(added.Transactions) != 1 || !reflect.DeepEqual(added.Transactions[0].Participants, []string{"p1", "p2"}) {
		t.Errorf("expected only t1 with known participants, got %+v", added.Transactions)
	}

	debts, err := env.groups.GetGroupDebts(ctx, connect.NewRequest(&api.GetGroupDebtsRequest{GroupID: added.ID}))
	if err != nil {
		t.Fatalf("GetGroupDebts failed: %v", err)
	}
	if len(debts.Msg.Debts) != 1 || debts.Msg.Debts[0].Amount != "5.00" {
		t.Errorf("expected Yan owes Xia 5.00, got %+v", debts.Msg.Debts)
	}
}
