package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/booking"
	"github.com/iliyamo/table-reservation/internal/model"
)

// tableCatalog is the slice of the catalog the table endpoints
// consume. The MySQL TableRepo satisfies it; tests inject fakes.
type tableCatalog interface {
	Register(ctx context.Context, t model.Table) (model.Table, error)
	GetByID(ctx context.Context, id string) (model.Table, error)
	ListAll(ctx context.Context) ([]model.Table, error)
}

// TableHandler serves the table catalog endpoints. Tables are
// registered once and then only read; all routes require an
// authenticated caller.
type TableHandler struct {
	Catalog tableCatalog
}

// NewTableHandler constructs a TableHandler over the given catalog.
func NewTableHandler(catalog tableCatalog) *TableHandler {
	if catalog == nil {
		panic("nil catalog passed to NewTableHandler")
	}
	return &TableHandler{Catalog: catalog}
}

type tableReq struct {
	ID       string   `json:"id"`
	Number   *int     `json:"number"`
	Capacity *int     `json:"places"`
	IsVip    *bool    `json:"isVip"`
	MinOrder *float64 `json:"minOrder"`
}

// Create handles POST /tables. Number, places and isVip are
// mandatory; the client may supply its own id, otherwise one is
// generated. Responds with the id of the stored table.
func (h *TableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Number == nil || req.Capacity == nil || req.IsVip == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number, places and isVip are required"})
	}
	candidate := model.Table{
		ID:       req.ID,
		Number:   *req.Number,
		Capacity: *req.Capacity,
		IsVip:    *req.IsVip,
	}
	if req.MinOrder != nil {
		candidate.MinOrder = *req.MinOrder
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Catalog.Register(ctx, candidate)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register table failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": stored.ID})
}

// List handles GET /tables and returns every registered table.
func (h *TableHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Catalog.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// Get handles GET /tables/:tableId.
func (h *TableHandler) Get(c echo.Context) error {
	id := c.Param("tableId")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	table, err := h.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrUnknownTable) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch table failed"})
	}
	return c.JSON(http.StatusOK, table)
}
