package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/checkin"
	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/queue"
	"github.com/iliyamo/event-ticket-inventory/internal/repository"
	queue_publisher "github.com/iliyamo/event-ticket-inventory/internal/service"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
)

// VisitorHandler drives the check-in transitions, mirroring the sale
// flow: clone snapshot, mutate, replace table, invalidate cache.
type VisitorHandler struct {
	Cache   *store.Cache
	Tickets *repository.TicketRepo
	Engine  *checkin.Engine
}

// NewVisitorHandler constructs a VisitorHandler.
func NewVisitorHandler(cache *store.Cache, tickets *repository.TicketRepo, engine *checkin.Engine) *VisitorHandler {
	if cache == nil || tickets == nil || engine == nil {
		panic("nil dependency passed to NewVisitorHandler")
	}
	return &VisitorHandler{Cache: cache, Tickets: tickets, Engine: engine}
}

// CheckIn handles POST /v1/visitors. Body: {"ticket_id": "...",
// "visitors": n} with 1 <= n <= the ticket's admit allowance.
func (h *VisitorHandler) CheckIn(c echo.Context) error {
	var body struct {
		TicketID string `json:"ticket_id"`
		Visitors int64  `json:"visitors"`
	}
	if err := c.Bind(&body); err != nil || body.TicketID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_id is required"})
	}
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Engine.Enter(snap.Tickets, body.TicketID, body.Visitors); err != nil {
		return checkinError(c, err)
	}
	if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()

	t := model.FindTicket(snap.Tickets, body.TicketID)
	// Best effort: a lost event never fails the check-in.
	_ = queue_publisher.Publish(ctx, queue_publisher.QueueVisitorCheckedIn, queue.VisitorCheckedInEvent{
		TicketID:     t.TicketID,
		Type:         string(t.Type),
		Category:     t.Category,
		VisitorSeats: t.VisitorSeats,
		Admit:        t.Admit,
		CheckedInAt:  formatTimestamp(t.Timestamp),
	})
	return c.JSON(http.StatusCreated, echo.Map{"ticket": t})
}

// ReverseCheckIn handles DELETE /v1/visitors/:ticket_id. Visited and
// the visitor count are cleared; the sale fields stay as they are.
func (h *VisitorHandler) ReverseCheckIn(c echo.Context) error {
	ticketID := c.Param("ticket_id")
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Engine.Reverse(snap.Tickets, ticketID); err != nil {
		return checkinError(c, err)
	}
	if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"ticket": model.FindTicket(snap.Tickets, ticketID)})
}

// RecentVisitors handles GET /v1/visitors/recent: visited tickets
// ordered by most recent transition first, with a 1-based serial.
func (h *VisitorHandler) RecentVisitors(c echo.Context) error {
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	visited := filterTickets(snap.Tickets, func(t model.Ticket) bool { return t.Visited })
	sortByTimestampDesc(visited)

	type entry struct {
		Sno          int    `json:"sno"`
		TicketID     string `json:"ticket_id"`
		Category     string `json:"category"`
		VisitorSeats int64  `json:"visitor_seats"`
		Customer     string `json:"customer"`
		Timestamp    string `json:"timestamp"`
	}
	items := make([]entry, 0, len(visited))
	for i, t := range visited {
		items = append(items, entry{
			Sno:          i + 1,
			TicketID:     t.TicketID,
			Category:     t.Category,
			VisitorSeats: t.VisitorSeats,
			Customer:     t.Customer,
			Timestamp:    formatTimestamp(t.Timestamp),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"items": items,
	})
}

// checkinError maps engine errors onto HTTP responses.
func checkinError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, checkin.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case errors.Is(err, checkin.ErrNotEligible):
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket not eligible for check-in"})
	case errors.Is(err, checkin.ErrNotVisited):
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket not checked in"})
	case errors.Is(err, checkin.ErrVisitorCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "visitor count out of range"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
