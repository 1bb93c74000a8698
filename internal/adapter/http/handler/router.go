package handler

import (
	"wallet-ledger/config"
	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	RateLimits     config.RateLimitConfig
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	AuthEnabled    bool
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(deps.MaxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep: storage and redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.RateLimitRules(deps.RateLimits)

	// rl returns the group's rate limiter, or a noop when limiting is off.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimiter == nil || !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	if deps.AuthSvc != nil {
		authHandler := NewAuthHandler(deps.AuthSvc)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", rl(middleware.GroupAuth), authHandler.Register)
			auth.POST("/login", rl(middleware.GroupAuth), authHandler.Login)
			auth.POST("/refresh", rl(middleware.GroupAuth), authHandler.Refresh)
			auth.POST("/verify", rl(middleware.GroupAuth), authHandler.Verify)
		}
	}

	// --- Wallet routes (JWT unless auth is disabled) ---
	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallets := v1.Group("/wallets")
	if deps.AuthEnabled {
		wallets.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
		wallets.GET("", rl(middleware.GroupReads), walletHandler.List)
	}
	{
		wallets.POST("", rl(middleware.GroupOperations), walletHandler.Create)
		wallets.GET("/:id", rl(middleware.GroupReads), walletHandler.Get)
		wallets.POST("/:id/operation", rl(middleware.GroupOperations), walletHandler.ApplyOperation)
		wallets.GET("/:id/operations", rl(middleware.GroupReads), walletHandler.ListOperations)
		wallets.GET("/:id/summary", rl(middleware.GroupReads), walletHandler.Summary)
	}

	return r
}
