package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/iliyamo/event-ticket-inventory/internal/handler"    // handlers implement the endpoint logic
	"github.com/iliyamo/event-ticket-inventory/internal/middleware" // middleware for session auth, caching, rate limiting
)

// RegisterRoutes registers the routes that do not require a session on
// the provided Echo instance: the health check used by load balancers
// and the session endpoint itself.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler) {
	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/session", a.CreateSession)
}

// RegisterAPI registers every protected endpoint under /v1. All routes
// in the group require a valid operator session token; the destructive
// endpoints additionally check their own shared secret in the handler.
// The optional extra middleware (response cache, rate limiter) is
// applied to the group in the order given.
func RegisterAPI(e *echo.Echo, jwtSecret string,
	inv *handler.InventoryHandler, sales *handler.SalesHandler,
	visitors *handler.VisitorHandler, menu *handler.MenuHandler,
	admin *handler.AdminHandler, extra ...echo.MiddlewareFunc) {

	g := e.Group("/v1")
	g.Use(middleware.SessionAuth(jwtSecret))
	for _, m := range extra {
		g.Use(m)
	}

	// Read-only views over the cached snapshot.
	g.GET("/dashboard/summary", inv.GetSummary)
	g.GET("/tickets", inv.ListTickets)
	g.GET("/tickets/available", inv.ListAvailable)
	g.GET("/tickets/eligible", inv.ListEligible)

	// Sale transitions.
	g.POST("/sales", sales.CreateSale)
	g.POST("/sales/bulk", sales.BulkSale)
	g.DELETE("/sales/:ticket_id", sales.ReverseSale)
	g.GET("/sales/recent", sales.RecentSales)

	// Visitor check-in transitions.
	g.POST("/visitors", visitors.CheckIn)
	g.DELETE("/visitors/:ticket_id", visitors.ReverseCheckIn)
	g.GET("/visitors/recent", visitors.RecentVisitors)

	// Catalog viewing and editing.
	g.GET("/menu", menu.GetMenu)
	g.PUT("/menu", menu.CommitMenu)
	g.POST("/menu/expand", menu.ExpandInventory)

	// Cache refresh and the destructive reset (gated by the admin secret).
	g.POST("/admin/refresh", admin.Refresh)
	g.POST("/admin/reset", admin.Reset)
}
