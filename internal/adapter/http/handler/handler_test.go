package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// decimalEq matches decimals by value, ignoring exponent.
type decimalEq struct{ want decimal.Decimal }

func (m decimalEq) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalEq) String() string { return "equals " + m.want.String() }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		c.Request = httptest.NewRequest(method, target, nil)
	} else {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func withWallet(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decode(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

func sampleWallet(owner *uuid.UUID, balance string) *domain.Wallet {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := domain.NewWallet(owner, dec(balance), now)
	return w
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	owner := &domain.Owner{ID: uuid.New(), Username: "alice", CreatedAt: time.Now()}
	mockAuth.EXPECT().Register(gomock.Any(), "alice", "password123").Return(owner, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"password123"}`)
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, owner.ID.String(), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.NotContains(t, w.Body.String(), "password")
	assert.Equal(t, owner.ID.String(), c.GetString(middleware.CtxResourceID))
}

func TestRegister_ValidationError(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"username":"al","password":"password123"}`,
		`{"username":"al ice","password":"password123"}`,
		`{"username":"alice","password":"short"}`,
		`not json`,
	}

	for _, body := range bodies {
		ctrl := gomock.NewController(t)
		h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

		c, w := newContext(http.MethodPost, "/api/v1/auth/register", body)
		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "VAL_001", errorCode(t, w), body)
	}
}

func TestRegister_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperror.ErrUsernameExists())

	c, w := newContext(http.MethodPost, "/", `{"username":"taken","password":"password123"}`)
	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "AUTH_002", errorCode(t, w))
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "alice", "password123").Return("jwt-token-123", expiry, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"password123"}`)
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expires_at"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad", "bad").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	c, w := newContext(http.MethodPost, "/", `{"username":"bad","password":"bad"}`)
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", errorCode(t, w))
}

// --- Wallet Handler Tests ---

func TestCreateWallet_DefaultsToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	ownerID := uuid.New()
	wallet := sampleWallet(&ownerID, "0")
	mockSvc.EXPECT().CreateWallet(gomock.Any(), &ownerID, decimalEq{decimal.Zero}).Return(wallet, nil)

	c, w := newContext(http.MethodPost, "/api/v1/wallets", "")
	c.Set(middleware.CtxOwnerID, ownerID)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, wallet.ID.String(), data["id"])
	assert.Equal(t, "0.00", data["balance"])
	assert.Equal(t, "2026-03-01T12:00:00Z", data["created_at"])
	assert.Equal(t, wallet.ID.String(), c.GetString(middleware.CtxResourceID))
}

func TestCreateWallet_InitialBalance(t *testing.T) {
	for _, body := range []string{`{"initial_balance":"25.5"}`, `{"initial_balance":25.5}`} {
		ctrl := gomock.NewController(t)
		mockSvc := mocks.NewMockWalletService(ctrl)
		h := NewWalletHandler(mockSvc)

		mockSvc.EXPECT().CreateWallet(gomock.Any(), gomock.Nil(), decimalEq{dec("25.50")}).
			Return(sampleWallet(nil, "25.50"), nil)

		c, w := newContext(http.MethodPost, "/api/v1/wallets", body)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code, body)
		assert.Equal(t, "25.50", dataOf(t, w)["balance"])
	}
}

func TestCreateWallet_Rejected(t *testing.T) {
	tests := []struct {
		body string
		code string
	}{
		{`{"initial_balance":"-1"}`, "WAL_004"},
		{`{"initial_balance":"1.001"}`, "WAL_004"},
		{`{"initial_balance":"abc"}`, "WAL_004"},
		{`{"initial_balance":true}`, "VAL_001"},
		{`{"initial_balance":`, "VAL_001"},
	}

	for _, tt := range tests {
		ctrl := gomock.NewController(t)
		h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

		c, w := newContext(http.MethodPost, "/api/v1/wallets", tt.body)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, tt.body)
		assert.Equal(t, tt.code, errorCode(t, w), tt.body)
	}
}

func TestListWallets(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	ownerID := uuid.New()
	mockSvc.EXPECT().ListWallets(gomock.Any(), ownerID).Return([]domain.Wallet{
		*sampleWallet(&ownerID, "1.00"),
		*sampleWallet(&ownerID, "2.50"),
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/wallets", "")
	c.Set(middleware.CtxOwnerID, ownerID)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(2), data["total"])
	items := data["items"].([]interface{})
	assert.Equal(t, "2.50", items[1].(map[string]interface{})["balance"])
}

func TestListWallets_RequiresOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/wallets", "")
	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	ownerID := uuid.New()
	wallet := sampleWallet(&ownerID, "1000")
	mockSvc.EXPECT().GetWallet(gomock.Any(), &ownerID, wallet.ID).Return(wallet, nil)

	c, w := newContext(http.MethodGet, "/", "")
	withWallet(c, wallet.ID.String())
	c.Set(middleware.CtxOwnerID, ownerID)
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "1000.00", data["balance"])
	assert.Len(t, data, 4)
	assert.NotContains(t, data, "owner_id")
}

func TestGetWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	id := uuid.New()
	mockSvc.EXPECT().GetWallet(gomock.Any(), gomock.Nil(), id).Return(nil, apperror.ErrWalletNotFound())

	c, w := newContext(http.MethodGet, "/", "")
	withWallet(c, id.String())
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_001", errorCode(t, w))
}

func TestGetWallet_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	c, w := newContext(http.MethodGet, "/", "")
	withWallet(c, "not-a-uuid")
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_001", errorCode(t, w))
}

func TestApplyOperation_Success(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind domain.OperationKind
		amt  string
	}{
		{"credit string", `{"operation_type":"CREDIT","amount":"500.00"}`, domain.OperationCredit, "500"},
		{"debit number", `{"operation_type":"DEBIT","amount":10.5}`, domain.OperationDebit, "10.50"},
		{"deposit alias", `{"operation_type":"deposit","amount":"1"}`, domain.OperationCredit, "1"},
		{"withdraw alias", `{"operation_type":"WITHDRAW","amount":"0.01"}`, domain.OperationDebit, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := mocks.NewMockWalletService(ctrl)
			h := NewWalletHandler(mockSvc)

			wallet := sampleWallet(nil, "1500")
			mockSvc.EXPECT().ApplyOperation(gomock.Any(), gomock.Nil(), wallet.ID, tt.kind, decimalEq{dec(tt.amt)}).
				Return(wallet, nil)

			c, w := newContext(http.MethodPost, "/", tt.body)
			withWallet(c, wallet.ID.String())
			h.ApplyOperation(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "1500.00", dataOf(t, w)["balance"])
		})
	}
}

func TestApplyOperation_RejectedAtBoundary(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"three decimals", `{"operation_type":"CREDIT","amount":"100.123"}`, "WAL_004"},
		{"three decimals number", `{"operation_type":"CREDIT","amount":100.123}`, "WAL_004"},
		{"zero", `{"operation_type":"DEBIT","amount":"0"}`, "WAL_004"},
		{"negative", `{"operation_type":"CREDIT","amount":-5}`, "WAL_004"},
		{"too large", `{"operation_type":"CREDIT","amount":"1000000000000000000"}`, "WAL_004"},
		{"not a number", `{"operation_type":"CREDIT","amount":"ten"}`, "WAL_004"},
		{"unknown kind", `{"operation_type":"TRANSFER","amount":"1.00"}`, "WAL_003"},
		{"missing amount", `{"operation_type":"CREDIT"}`, "VAL_001"},
		{"missing kind", `{"amount":"1.00"}`, "VAL_001"},
		{"bool amount", `{"operation_type":"CREDIT","amount":false}`, "VAL_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

			c, w := newContext(http.MethodPost, "/", tt.body)
			withWallet(c, uuid.NewString())
			h.ApplyOperation(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestApplyOperation_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient", apperror.ErrInsufficientBalance("100.00", "200.00"), http.StatusBadRequest, "WAL_002"},
		{"not found", apperror.ErrWalletNotFound(), http.StatusNotFound, "WAL_001"},
		{"lock timeout", apperror.ErrLockTimeout(errors.New("context deadline exceeded")), http.StatusServiceUnavailable, "SYS_002"},
		{"internal", apperror.InternalError(errors.New("db down")), http.StatusInternalServerError, "SYS_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := mocks.NewMockWalletService(ctrl)
			h := NewWalletHandler(mockSvc)

			mockSvc.EXPECT().ApplyOperation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/", `{"operation_type":"DEBIT","amount":"200"}`)
			withWallet(c, uuid.NewString())
			h.ApplyOperation(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestApplyOperation_InsufficientDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().ApplyOperation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientBalance("1300.00", "2000.00"))

	c, w := newContext(http.MethodPost, "/", `{"operation_type":"DEBIT","amount":"2000"}`)
	withWallet(c, uuid.NewString())
	h.ApplyOperation(c)

	details := decode(t, w)["details"].(map[string]interface{})
	assert.Equal(t, "1300.00", details["balance"])
	assert.Equal(t, "2000.00", details["requested"])
}

func TestListOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	walletID := uuid.New()
	debit := domain.OperationDebit
	now := time.Now()
	mockSvc.EXPECT().ListOperations(gomock.Any(), gomock.Nil(), ports.OperationListParams{
		WalletID: walletID,
		Kind:     &debit,
		Page:     2,
		PageSize: 2,
	}).Return([]domain.Operation{
		*domain.NewOperation(walletID, domain.OperationDebit, dec("7"), now),
	}, int64(3), nil)

	c, w := newContext(http.MethodGet, "/?page=2&page_size=2&operation_type=withdraw", "")
	withWallet(c, walletID.String())
	h.ListOperations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["total_pages"])
	assert.Equal(t, float64(2), data["page"])
	item := data["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "DEBIT", item["operation_type"])
	assert.Equal(t, "7.00", item["amount"])
	assert.Equal(t, walletID.String(), item["wallet_id"])
}

func TestListOperations_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	walletID := uuid.New()
	mockSvc.EXPECT().ListOperations(gomock.Any(), gomock.Nil(), ports.OperationListParams{
		WalletID: walletID,
		Page:     1,
		PageSize: 20,
	}).Return([]domain.Operation{}, int64(0), nil)

	c, w := newContext(http.MethodGet, "/", "")
	withWallet(c, walletID.String())
	h.ListOperations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Empty(t, data["items"])
	assert.Equal(t, float64(0), data["total_pages"])
}

func TestListOperations_BadQuery(t *testing.T) {
	for _, q := range []string{"page_size=500", "page=-1", "page=abc"} {
		ctrl := gomock.NewController(t)
		h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

		c, w := newContext(http.MethodGet, "/?"+q, "")
		withWallet(c, uuid.NewString())
		h.ListOperations(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "VAL_001", errorCode(t, w), q)
	}
}

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	wallet := sampleWallet(nil, "1000")
	wallet.Balance = dec("1300")
	mockSvc.EXPECT().Summarize(gomock.Any(), gomock.Nil(), wallet.ID).Return(&ports.WalletSummary{
		Wallet: wallet,
		Totals: domain.OperationTotals{
			Credits:     dec("500"),
			Debits:      dec("200"),
			CreditCount: 1,
			DebitCount:  1,
		},
		Consistent: true,
	}, nil)

	c, w := newContext(http.MethodGet, "/", "")
	withWallet(c, wallet.ID.String())
	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "1000.00", data["initial_balance"])
	assert.Equal(t, "1300.00", data["balance"])
	assert.Equal(t, "500.00", data["total_credits"])
	assert.Equal(t, "200.00", data["total_debits"])
	assert.Equal(t, float64(2), data["operation_count"])
	assert.Equal(t, true, data["consistent"])
}

// --- Health Check Tests ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockHealthChecker(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)
	db.EXPECT().Name().Return("postgresql").AnyTimes()

	c, w := newContext(http.MethodGet, "/health", "")
	HealthCheck(db)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "healthy", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockHealthChecker(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)
	db.EXPECT().Name().Return("postgresql").AnyTimes()
	cache := mocks.NewMockHealthChecker(ctrl)
	cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	cache.EXPECT().Name().Return("redis").AnyTimes()

	c, w := newContext(http.MethodGet, "/health", "")
	HealthCheck(db, cache)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	redis := resp["dependencies"].(map[string]interface{})["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
	assert.Equal(t, "connection refused", redis["error"])
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Refresh(gomock.Any(), "old-token").Return("new-token", expiry, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/refresh", `{"token":" old-token "}`)
	h.Refresh(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "new-token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expires_at"])
}

func TestRefresh_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Refresh(gomock.Any(), "expired").Return("", time.Time{}, apperror.ErrInvalidToken())

	c, w := newContext(http.MethodPost, "/", `{"token":"expired"}`)
	h.Refresh(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_003", errorCode(t, w))
}

func TestVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	ownerID := uuid.New()
	mockAuth.EXPECT().Verify(gomock.Any(), "tok").Return(&ports.TokenClaims{OwnerID: ownerID, Username: "alice"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/verify", `{"token":"tok"}`)
	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, ownerID.String(), data["owner_id"])
	assert.Equal(t, "alice", data["username"])
}

func TestVerify_MissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	c, w := newContext(http.MethodPost, "/", `{}`)
	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}
