package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// scope reads the type and category query parameters shared by the
// candidate-list endpoints. Both are required: sale and check-in forms
// always operate within one (type, category) pair.
func scope(c echo.Context) (model.TicketType, string, error) {
	typ, err := model.ParseTicketType(c.QueryParam("type"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid or missing type")
	}
	category := c.QueryParam("category")
	if category == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}
	return typ, category, nil
}

// boolFilter interprets an optional true/false query parameter. The
// second return reports whether a recognized value was present.
func boolFilter(v string) (want, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

func filterTickets(in []model.Ticket, keep func(model.Ticket) bool) []model.Ticket {
	out := make([]model.Ticket, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
