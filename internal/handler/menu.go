package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-inventory/internal/catalog"
	"github.com/iliyamo/event-ticket-inventory/internal/inventory"
	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/repository"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
	"github.com/iliyamo/event-ticket-inventory/internal/utils"
)

// MenuHandler serves and edits the category catalog. Catalog commits
// and inventory regeneration are destructive, so both are gated by the
// menu secret in addition to the session token.
type MenuHandler struct {
	Cache          *store.Cache
	Tickets        *repository.TicketRepo
	Menu           *repository.MenuRepo
	MenuSecretHash string
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(cache *store.Cache, tickets *repository.TicketRepo, menu *repository.MenuRepo, menuSecretHash string) *MenuHandler {
	if cache == nil || tickets == nil || menu == nil {
		panic("nil dependency passed to NewMenuHandler")
	}
	return &MenuHandler{Cache: cache, Tickets: tickets, Menu: menu, MenuSecretHash: menuSecretHash}
}

// GetMenu handles GET /v1/menu. Rows come back in display order: seq
// ascending with the seq 0 overflow bucket last.
func (h *MenuHandler) GetMenu(c echo.Context) error {
	snap, err := h.Cache.GetOrLoad(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rows := inventory.SortMenu(snap.Menu)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(rows),
		"items": rows,
	})
}

// CommitMenu handles PUT /v1/menu. The body carries the edited draft
// and the menu secret. Alloc and TotalCapacity are recomputed from each
// row's series before the commit; rows whose series does not parse keep
// the derived values they arrived with. The whole menu table is
// replaced with the result.
func (h *MenuHandler) CommitMenu(c echo.Context) error {
	var body struct {
		Secret string          `json:"secret"`
		Rows   []model.MenuRow `json:"rows"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !utils.VerifySecret(h.MenuSecretHash, body.Secret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid menu secret"})
	}
	if len(body.Rows) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows are required"})
	}
	for i := range body.Rows {
		typ, err := model.ParseTicketType(string(body.Rows[i].Type))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		body.Rows[i].Type = typ
	}

	res := catalog.Recalculate(body.Rows)
	ctx := c.Request().Context()
	if err := h.Menu.ReplaceAll(ctx, body.Rows); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{
		"applied": res.Applied,
		"skipped": res.Skipped,
		"items":   inventory.SortMenu(body.Rows),
	})
}

// ExpandInventory handles POST /v1/menu/expand. It regenerates the
// ticket table from the committed catalog: one fresh unsold ticket per
// series number per category. All existing ticket state is destroyed,
// so the menu secret is required.
func (h *MenuHandler) ExpandInventory(c echo.Context) error {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !utils.VerifySecret(h.MenuSecretHash, body.Secret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid menu secret"})
	}
	ctx := c.Request().Context()
	snap, err := h.Cache.GetOrLoad(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tickets := catalog.Expand(snap.Menu)
	if len(tickets) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "catalog has no expandable series"})
	}
	if err := h.Tickets.ReplaceAll(ctx, tickets); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Cache.Invalidate()
	return c.JSON(http.StatusOK, echo.Map{"generated": len(tickets)})
}
