package handler

import (
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Create handles POST /api/v1/wallets. The body is optional.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, bindError(err))
		return
	}

	initial := decimal.Zero
	if req.InitialBalance != nil {
		d, err := domain.ParseBalance(string(*req.InitialBalance))
		if err != nil {
			response.Error(c, apperror.ErrInvalidAmount(err.Error()))
			return
		}
		initial = d
	}

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), ownerScope(c), initial)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, wallet.ID.String())
	response.Created(c, toWalletResponse(wallet))
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	owner, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallets, err := h.walletSvc.ListWallets(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}
	response.OK(c, dto.WalletListResponse{Items: items, Total: len(items)})
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), ownerScope(c), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// ApplyOperation handles POST /api/v1/wallets/:id/operation.
func (h *WalletHandler) ApplyOperation(c *gin.Context) {
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	var req dto.OperationRequest
	if !bindJSON(c, &req) {
		return
	}

	kind := domain.ParseOperationKind(req.OperationType)
	if !kind.IsValid() {
		response.Error(c, apperror.ErrUnknownOperationKind(req.OperationType))
		return
	}
	amount, err := domain.ParseAmount(string(req.Amount))
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(err.Error()))
		return
	}

	wallet, err := h.walletSvc.ApplyOperation(c.Request.Context(), ownerScope(c), walletID, kind, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// ListOperations handles GET /api/v1/wallets/:id/operations.
func (h *WalletHandler) ListOperations(c *gin.Context) {
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	var q dto.ListOperationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	q.Normalize()

	params := ports.OperationListParams{
		WalletID: walletID,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	// The filter takes the same spellings as an operation body.
	if q.OperationType != "" {
		kind := domain.ParseOperationKind(q.OperationType)
		params.Kind = &kind
	}

	ops, total, err := h.walletSvc.ListOperations(c.Request.Context(), ownerScope(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.OperationResponse, 0, len(ops))
	for i := range ops {
		items = append(items, toOperationResponse(&ops[i]))
	}

	response.OK(c, dto.OperationListResponse{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(q.PageSize))),
	})
}

// Summary handles GET /api/v1/wallets/:id/summary.
func (h *WalletHandler) Summary(c *gin.Context) {
	walletID, ok := walletIDParam(c)
	if !ok {
		return
	}

	summary, err := h.walletSvc.Summarize(c.Request.Context(), ownerScope(c), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	t := summary.Totals
	response.OK(c, dto.SummaryResponse{
		WalletID:       summary.Wallet.ID.String(),
		InitialBalance: domain.FormatAmount(summary.Wallet.InitialBalance),
		Balance:        domain.FormatAmount(summary.Wallet.Balance),
		TotalCredits:   domain.FormatAmount(t.Credits),
		TotalDebits:    domain.FormatAmount(t.Debits),
		CreditCount:    t.CreditCount,
		DebitCount:     t.DebitCount,
		OperationCount: t.Count(),
		Consistent:     summary.Consistent,
	})
}

// ownerScope returns the caller when the route is authenticated, nil otherwise.
func ownerScope(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.OwnerID(c); ok {
		return &id
	}
	return nil
}

// walletIDParam parses :id. A malformed id cannot name a wallet, so it is
// reported as not found.
func walletIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrWalletNotFound())
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req, writing a VAL_001 response on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) *apperror.AppError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.Validation("request body too large")
	}
	return apperror.Validation(err.Error())
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:        w.ID.String(),
		Balance:   domain.FormatAmount(w.Balance),
		CreatedAt: formatTime(w.CreatedAt),
		UpdatedAt: formatTime(w.UpdatedAt),
	}
}

func toOperationResponse(op *domain.Operation) dto.OperationResponse {
	return dto.OperationResponse{
		ID:            op.ID.String(),
		WalletID:      op.WalletID.String(),
		OperationType: string(op.Kind),
		Amount:        domain.FormatAmount(op.Amount),
		CreatedAt:     formatTime(op.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
