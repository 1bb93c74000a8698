package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessAction names an audited write request.
type AccessAction string

const (
	AccessActionRegister        AccessAction = "REGISTER"
	AccessActionLogin           AccessAction = "LOGIN"
	AccessActionRefreshToken    AccessAction = "REFRESH_TOKEN"
	AccessActionCreateWallet    AccessAction = "CREATE_WALLET"
	AccessActionWalletOperation AccessAction = "WALLET_OPERATION"
)

// AccessEvent records who did what through the API.
type AccessEvent struct {
	Action     AccessAction
	OwnerID    *uuid.UUID
	ResourceID string
	RequestID  string
	IPAddress  string
	Status     int
	CreatedAt  time.Time
}
