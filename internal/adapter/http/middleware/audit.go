package middleware

import (
	"net/http"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records an access event for every successful write request.
// Handlers may set CtxResourceID when the resource id is not in the path.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		action := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var ownerID *uuid.UUID
		if id, ok := OwnerID(c); ok {
			ownerID = &id
		}

		resourceID := c.GetString(CtxResourceID)
		if resourceID == "" {
			resourceID = c.Param("id")
		}

		auditSvc.Record(c.Request.Context(), &domain.AccessEvent{
			Action:     action,
			OwnerID:    ownerID,
			ResourceID: resourceID,
			RequestID:  response.RequestID(c),
			IPAddress:  c.ClientIP(),
			Status:     status,
			CreatedAt:  time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) domain.AccessAction {
	if method != http.MethodPost {
		return ""
	}
	switch route {
	case "/api/v1/auth/register":
		return domain.AccessActionRegister
	case "/api/v1/auth/login":
		return domain.AccessActionLogin
	case "/api/v1/auth/refresh":
		return domain.AccessActionRefreshToken
	case "/api/v1/wallets":
		return domain.AccessActionCreateWallet
	case "/api/v1/wallets/:id/operation":
		return domain.AccessActionWalletOperation
	}
	return ""
}
