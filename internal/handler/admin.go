package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/repository"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
	"github.com/iliyamo/event-ticket-inventory/internal/utils"
)

// AdminHandler holds the destructive operations. Reset wipes every
// ticket back to unsold, so it demands the admin secret on top of the
// session token.
type AdminHandler struct {
	Cache           *store.Cache
	Tickets         *repository.TicketRepo
	AdminSecretHash string
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(cache *store.Cache, tickets *repository.TicketRepo, adminSecretHash string) *AdminHandler {
	if cache == nil || tickets == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cache: cache, Tickets: tickets, AdminSecretHash: adminSecretHash}
}

// Refresh handles POST /v1/admin/refresh. It drops the in-memory
// snapshot so the next read reflects any out-of-band table edits
// without waiting for the TTL.
func (h *AdminHandler) Refresh(c echo.Context) error {
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"refreshed": true})
}

// Reset handles POST /v1/admin/reset. Every ticket keeps its identity,
// category and allowance but loses all sale and visit state: Sold,
// Visited, Customer, VisitorSeats and Timestamp are cleared, then the
// whole table is replaced.
func (h *AdminHandler) Reset(c echo.Context) error {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !utils.VerifySecret(h.AdminSecretHash, body.Secret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin secret"})
	}
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	for i := range snap.Tickets {
		snap.Tickets[i].Sold = false
		snap.Tickets[i].Visited = false
		snap.Tickets[i].Customer = ""
		snap.Tickets[i].VisitorSeats = 0
		snap.Tickets[i].Timestamp = nil
	}
	if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"reset": len(snap.Tickets)})
}
