package api

import "github.com/shopspring/decimal"

// Person is a member of a group's roster.
type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId,omitempty"`
}

// Transaction is one recorded expense.
type Transaction struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"groupId,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidByID     string          `json:"paidById"`
	Participants []string        `json:"participants"`
	Date         string          `json:"date,omitempty"`
	Location     string          `json:"location,omitempty"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	CreatedAt    int64           `json:"createdAt,omitempty"`
}

// Group is a roster and its expenses. Its JSON shape is also the
// import/export format of the whole collection.
type Group struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	People       []Person      `json:"people"`
	Transactions []Transaction `json:"transactions"`
	CreatedBy    string        `json:"createdBy,omitempty"`
	CreatedAt    int64         `json:"createdAt,omitempty"`
}

// Debt reads "FromName owes ToName Amount". Amount has exactly 2 decimals.
type Debt struct {
	FromPersonID string `json:"fromPersonId"`
	FromName     string `json:"fromName"`
	ToPersonID   string `json:"toPersonId"`
	ToName       string `json:"toName"`
	Amount       string `json:"amount"`
}

// MemberBalance is one person's totals within a group. Amounts have exactly 2 decimals.
type MemberBalance struct {
	PersonID string `json:"personId"`
	Name     string `json:"name"`
	Paid     string `json:"paid"`
	Share    string `json:"share"`
	Net      string `json:"net"`
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
	// People are display names for the initial roster.
	People []string `json:"people,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddPersonRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	UserID  string `json:"userId,omitempty"`
}

type AddPersonResponse struct {
	Person *Person `json:"person"`
}

type GetGroupDebtsRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupDebtsResponse struct {
	Debts []Debt `json:"debts"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}

type ExportGroupsRequest struct{}

type ExportGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type ImportGroupsRequest struct {
	Groups []Group `json:"groups"`
}

type ImportGroupsResponse struct {
	GroupsImported       int `json:"groupsImported"`
	TransactionsImported int `json:"transactionsImported"`
	// Warnings describe every entry dropped or repaired during import.
	Warnings []string `json:"warnings,omitempty"`
}

// TransactionInput holds the editable fields of a transaction.
type TransactionInput struct {
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	PaidByID     string   `json:"paidById"`
	Participants []string `json:"participants"`
	Date         string   `json:"date,omitempty"`
	Location     string   `json:"location,omitempty"`
}

type AddTransactionRequest struct {
	GroupID string `json:"groupId"`
	TransactionInput
}

type AddTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetTransactionRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type EditTransactionRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
	TransactionInput
}

type EditTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
}

type DeleteTransactionResponse struct{}

// SettleDebtRequest records that FromPersonID paid ToPersonID back.
type SettleDebtRequest struct {
	GroupID      string `json:"groupId"`
	FromPersonID string `json:"fromPersonId"`
	ToPersonID   string `json:"toPersonId"`
	Amount       string `json:"amount"`
	Date         string `json:"date,omitempty"`
	Note         string `json:"note,omitempty"`
}

type SettleDebtResponse struct {
	Transaction *Transaction `json:"transaction"`
}
