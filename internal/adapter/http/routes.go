package http

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health       *Handler
	Shareholders *ShareholderHandler
	Stages       *StageHandler
	Dividends    *DividendHandler
	Pricing      *PricingHandler
	Agreements   *AgreementHandler
}

// Register mounts every route. idem guards the mutating endpoints a client
// may retry; pass nil to serve them unguarded.
func Register(e *echo.Echo, h Handlers, idem echo.MiddlewareFunc) {
	guarded := []echo.MiddlewareFunc{}
	if idem != nil {
		guarded = append(guarded, idem)
	}

	e.GET("/health", h.Health.Health)

	e.POST("/shareholders", h.Shareholders.Register, guarded...)
	e.POST("/auth/login", h.Shareholders.Login)
	e.GET("/shareholders", h.Shareholders.List)
	e.GET("/shareholders/:id", h.Shareholders.Get)
	e.GET("/shareholders/:id/dividends", h.Dividends.ListByShareholder)
	e.GET("/shareholders/:id/agreement", h.Agreements.Download)

	e.GET("/stages", h.Stages.List)
	e.GET("/stages/running", h.Stages.Running)
	e.GET("/role-prices", h.Pricing.ListRolePrices)
	e.GET("/subscriber-counts", h.Pricing.ListSubscriberCounts)

	admin := e.Group("/admin")
	admin.PUT("/stages", h.Stages.Upsert)
	admin.PATCH("/shareholders/:id/status", h.Shareholders.SetStatus)
	admin.PATCH("/shareholders/:id/credentials", h.Shareholders.UpdateCredentials)
	admin.DELETE("/shareholders/:id", h.Shareholders.Delete)
	admin.POST("/dividends", h.Dividends.PayOne, guarded...)
	admin.POST("/dividends/bulk", h.Dividends.PayAll, guarded...)
	admin.GET("/dividends/export", h.Dividends.Export)
	admin.PUT("/role-prices/:role", h.Pricing.SetRolePrice)
	admin.PUT("/subscriber-counts/:role", h.Pricing.SetSubscriberCount)
}
