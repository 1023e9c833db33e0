package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/checkin"
	"github.com/iliyamo/event-ticket-inventory/internal/inventory"
	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/sales"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
)

// InventoryHandler serves the read-only views: the reconciled summary,
// the full ticket listing, and the candidate lists the sale and
// check-in forms are built from. Everything reads from the snapshot
// cache; no handler here mutates state.
type InventoryHandler struct {
	Cache *store.Cache
}

// NewInventoryHandler constructs an InventoryHandler.
func NewInventoryHandler(cache *store.Cache) *InventoryHandler {
	if cache == nil {
		panic("nil cache passed to NewInventoryHandler")
	}
	return &InventoryHandler{Cache: cache}
}

// GetSummary handles GET /v1/dashboard/summary. It recomputes the
// inventory reconciliation from the current snapshot: one row per
// (seq, type, category, admit) group plus the grand total, groups
// ordered with the seq 0 overflow bucket last.
func (h *InventoryHandler) GetSummary(c echo.Context) error {
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rows := inventory.Summarize(snap.Tickets)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(rows),
		"rows":  rows,
	})
}

// ListTickets handles GET /v1/tickets with optional type, category,
// sold and visited filters.
func (h *InventoryHandler) ListTickets(c echo.Context) error {
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tickets := snap.Tickets
	if v := c.QueryParam("type"); v != "" {
		typ, err := model.ParseTicketType(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type"})
		}
		tickets = filterTickets(tickets, func(t model.Ticket) bool { return t.Type == typ })
	}
	if v := c.QueryParam("category"); v != "" {
		tickets = filterTickets(tickets, func(t model.Ticket) bool { return t.Category == v })
	}
	if want, ok := boolFilter(c.QueryParam("sold")); ok {
		tickets = filterTickets(tickets, func(t model.Ticket) bool { return t.Sold == want })
	}
	if want, ok := boolFilter(c.QueryParam("visited")); ok {
		tickets = filterTickets(tickets, func(t model.Ticket) bool { return t.Visited == want })
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tickets),
		"items": tickets,
	})
}

// ListAvailable handles GET /v1/tickets/available and returns the
// ticket IDs still for sale within the requested (type, category).
func (h *InventoryHandler) ListAvailable(c echo.Context) error {
	typ, category, err := scope(c)
	if err != nil {
		return err
	}
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ids := sales.Available(snap.Tickets, typ, category)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(ids),
		"items": ids,
	})
}

// ListEligible handles GET /v1/tickets/eligible and returns the ticket
// IDs that can be checked in within the requested (type, category).
func (h *InventoryHandler) ListEligible(c echo.Context) error {
	typ, category, err := scope(c)
	if err != nil {
		return err
	}
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ids := checkin.Eligible(snap.Tickets, typ, category)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(ids),
		"items": ids,
	})
}
