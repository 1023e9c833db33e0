package handler

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/queue"
	"github.com/iliyamo/event-ticket-inventory/internal/repository"
	"github.com/iliyamo/event-ticket-inventory/internal/sales"
	queue_publisher "github.com/iliyamo/event-ticket-inventory/internal/service"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
)

// SalesHandler drives the sale transitions. Every mutation follows the
// same shape: clone the snapshot, let the engine mutate the clone,
// replace the whole tickets table, invalidate the cache.
type SalesHandler struct {
	Cache   *store.Cache
	Tickets *repository.TicketRepo
	Engine  *sales.Engine
}

// NewSalesHandler constructs a SalesHandler.
func NewSalesHandler(cache *store.Cache, tickets *repository.TicketRepo, engine *sales.Engine) *SalesHandler {
	if cache == nil || tickets == nil || engine == nil {
		panic("nil dependency passed to NewSalesHandler")
	}
	return &SalesHandler{Cache: cache, Tickets: tickets, Engine: engine}
}

// CreateSale handles POST /v1/sales. Body: {"ticket_id": "...",
// "customer": "..."}. The customer name may be empty.
func (h *SalesHandler) CreateSale(c echo.Context) error {
	var body struct {
		TicketID string `json:"ticket_id"`
		Customer string `json:"customer"`
	}
	if err := c.Bind(&body); err != nil || body.TicketID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_id is required"})
	}
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Engine.Sell(snap.Tickets, body.TicketID, body.Customer); err != nil {
		return saleError(c, err)
	}
	if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()

	t := model.FindTicket(snap.Tickets, body.TicketID)
	// Best effort: a lost event never fails the sale.
	_ = queue_publisher.Publish(ctx, queue_publisher.QueueTicketSold, queue.TicketSoldEvent{
		TicketID: t.TicketID,
		Type:     string(t.Type),
		Category: t.Category,
		Customer: t.Customer,
		Admit:    t.Admit,
		SoldAt:   formatTimestamp(t.Timestamp),
	})
	return c.JSON(http.StatusCreated, echo.Map{"ticket": t})
}

// BulkSale handles POST /v1/sales/bulk. The batch arrives either as a
// JSON body {"rows": [{"ticket_id", "customer_name"}, ...]} or as a
// multipart CSV upload (field "file", columns TicketID and
// CustomerName). Each row is an independent decision; missing or
// already-sold tickets are skipped and reported in the counts.
func (h *SalesHandler) BulkSale(c echo.Context) error {
	rows, err := bulkRows(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if len(rows) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no rows provided"})
	}
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	res := h.Engine.SellBulk(snap.Tickets, rows)
	if res.Applied > 0 {
		if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		h.Cache.Invalidate()
	}
	return c.JSON(http.StatusOK, echo.Map{
		"applied": res.Applied,
		"skipped": res.Skipped,
	})
}

// ReverseSale handles DELETE /v1/sales/:ticket_id, returning the ticket
// to available. Reversal of a checked-in ticket is rejected with 409.
func (h *SalesHandler) ReverseSale(c echo.Context) error {
	ticketID := c.Param("ticket_id")
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Engine.Reverse(snap.Tickets, ticketID); err != nil {
		return saleError(c, err)
	}
	if err := h.Tickets.ReplaceAll(ctx, snap.Tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"ticket": model.FindTicket(snap.Tickets, ticketID)})
}

// RecentSales handles GET /v1/sales/recent: sold tickets ordered by
// most recent transition first, each with a 1-based serial number.
func (h *SalesHandler) RecentSales(c echo.Context) error {
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	sold := filterTickets(snap.Tickets, func(t model.Ticket) bool { return t.Sold })
	sortByTimestampDesc(sold)

	type entry struct {
		Sno       int    `json:"sno"`
		TicketID  string `json:"ticket_id"`
		Category  string `json:"category"`
		Customer  string `json:"customer"`
		Timestamp string `json:"timestamp"`
	}
	items := make([]entry, 0, len(sold))
	for i, t := range sold {
		items = append(items, entry{
			Sno:       i + 1,
			TicketID:  t.TicketID,
			Category:  t.Category,
			Customer:  t.Customer,
			Timestamp: formatTimestamp(t.Timestamp),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"items": items,
	})
}

// saleError maps engine errors onto HTTP responses.
func saleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sales.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case errors.Is(err, sales.ErrAlreadySold):
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket already sold"})
	case errors.Is(err, sales.ErrNotSold):
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket not sold"})
	case errors.Is(err, sales.ErrTicketVisited):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reverse the check-in first"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// bulkRows extracts the bulk-sale batch from either a CSV upload or a
// JSON body.
func bulkRows(c echo.Context) ([]sales.BulkRow, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.New("cannot open uploaded file")
		}
		defer f.Close()
		return parseBulkCSV(f)
	}
	var body struct {
		Rows []sales.BulkRow `json:"rows"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, errors.New("invalid request body")
	}
	return body.Rows, nil
}

// parseBulkCSV reads tabular bulk-sale input. The header row names the
// columns; TicketID and CustomerName are matched case-insensitively so
// exports from spreadsheet tools load without editing.
func parseBulkCSV(r io.Reader) ([]sales.BulkRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("empty or unreadable csv")
	}
	idCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "ticketid", "ticket_id":
			idCol = i
		case "customername", "customer_name", "customer":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, errors.New("csv must have TicketID and CustomerName columns")
	}
	var rows []sales.BulkRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed line: skip and continue, same policy as unknown IDs.
			continue
		}
		if idCol >= len(record) || nameCol >= len(record) {
			continue
		}
		rows = append(rows, sales.BulkRow{
			TicketID:     record[idCol],
			CustomerName: record[nameCol],
		})
	}
	return rows, nil
}

// sortByTimestampDesc orders tickets by Timestamp descending with nil
// timestamps last. The sort is stable so equal stamps keep table order.
func sortByTimestampDesc(tickets []model.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := tickets[i].Timestamp, tickets[j].Timestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format("2006-01-02 15:04:05")
}
