package dto

import (
	"encoding/json"
	"errors"
)

// RegisterRequest is the request body for owner registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,username"`
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
}

// LoginRequest is the request body for owner login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" sanitize:"html"`
	Password string `json:"password" binding:"required" sanitize:"-"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// TokenRequest carries a previously issued JWT.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyResponse names the owner a valid token belongs to.
type VerifyResponse struct {
	OwnerID  string `json:"owner_id"`
	Username string `json:"username"`
}

// Amount is a money value as sent by a client: a JSON string or a JSON
// number. The literal text is kept so precision checks see what was sent.
type Amount string

var errAmountType = errors.New("amount must be a decimal string or number")

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errAmountType
	}
	*a = Amount(n.String())
	return nil
}

// CreateWalletRequest is the request body for wallet creation.
// A missing initial balance means 0.00.
type CreateWalletRequest struct {
	InitialBalance *Amount `json:"initial_balance,omitempty"`
}

// OperationRequest is the request body for a credit or debit.
// operation_type is checked by the service so unknown kinds get their own code.
type OperationRequest struct {
	OperationType string `json:"operation_type" binding:"required"`
	Amount        Amount `json:"amount" binding:"required"`
}

// ListOperationsQuery holds the query parameters of the history endpoint.
type ListOperationsQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OperationType string `form:"operation_type"`
}

// Defaults for ListOperationsQuery.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Normalize fills in defaults for omitted paging parameters.
func (q *ListOperationsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID        string `json:"id"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WalletListResponse wraps the caller's wallets.
type WalletListResponse struct {
	Items []WalletResponse `json:"items"`
	Total int              `json:"total"`
}

// OperationResponse is one entry of a wallet's history.
type OperationResponse struct {
	ID            string `json:"id"`
	WalletID      string `json:"wallet_id"`
	OperationType string `json:"operation_type"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"created_at"`
}

// OperationListResponse wraps a page of history.
type OperationListResponse struct {
	Items      []OperationResponse `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// SummaryResponse is the reconciliation view of a wallet.
type SummaryResponse struct {
	WalletID       string `json:"wallet_id"`
	InitialBalance string `json:"initial_balance"`
	Balance        string `json:"balance"`
	TotalCredits   string `json:"total_credits"`
	TotalDebits    string `json:"total_debits"`
	CreditCount    int64  `json:"credit_count"`
	DebitCount     int64  `json:"debit_count"`
	OperationCount int64  `json:"operation_count"`
	Consistent     bool   `json:"consistent"`
}

// DependencyStatus is the health of one external dependency.
type DependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health. It is not wrapped in the
// standard envelope so load balancers can read it directly.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}
