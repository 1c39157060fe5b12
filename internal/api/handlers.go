package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"backend/internal/engine"
	"backend/internal/format"
	"backend/internal/models"
	"backend/internal/platform/logger"
)

// Handler is the rendering-collaborator boundary: it serves the derived view
// and consumes the interaction events the table UI emits.
type Handler struct {
	coord    *engine.Coordinator
	producer *engine.Producer
	total    int // rows per generate-more request
	chunk    int // generation batch cap
	log      *logger.Logger
}

func NewHandler(coord *engine.Coordinator, producer *engine.Producer, total, chunk int, log *logger.Logger) *Handler {
	return &Handler{coord: coord, producer: producer, total: total, chunk: chunk, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/products", h.GetProducts)
	api.POST("/products/generate", h.GenerateMore)
	api.GET("/products/export", h.ExportCSV)
	api.GET("/products/stats", h.GetStats)
	api.POST("/products/:id/freeze", h.FreezeRow)
	api.DELETE("/products/:id/freeze", h.UnfreezeRow)

	api.GET("/view", h.GetView)
	api.POST("/view/sort", h.SetSort)
	api.POST("/view/filter", h.SetFilter)
	api.POST("/view/filters/clear", h.ClearFilters)
	api.POST("/view/global-filter", h.SetGlobalFilter)
	api.POST("/view/columns/toggle", h.ToggleColumn)
	api.POST("/view/columns/order", h.SetColumnOrder)
	api.POST("/view/size", h.SetSize)
	api.POST("/view/rows", h.SetRows)
	api.POST("/view/freeze", h.ToggleFreeze)
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetProducts(c echo.Context) error {
	if h.coord.Len() == 0 {
		// Initial batch still generating in the background.
		return echo.NewHTTPError(http.StatusServiceUnavailable, "data loading")
	}

	view := h.coord.Derive()
	total := view.Matched
	limit, offset := getPaginationParams(c, total)

	rows := []models.Product{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = view.Rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":    rows,
		"frozen":  view.Frozen,
		"total":   view.Total,
		"matched": view.Matched,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *Handler) GenerateMore(c echo.Context) error {
	batch, err := h.producer.ProduceMore(h.total, h.chunk)
	if err != nil {
		return h.mapError(err)
	}
	h.coord.Append(batch)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"generated": len(batch),
		"total":     h.coord.Len(),
	})
}

func (h *Handler) ExportCSV(c echo.Context) error {
	catalog := models.Columns()
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/csv")
	resp.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=products-%s.csv", h.producer.Session()))
	resp.WriteHeader(http.StatusOK)

	w := csv.NewWriter(resp)
	if err := w.Write(catalog); err != nil {
		return err
	}
	row := make([]string, len(catalog))
	for _, p := range h.coord.Dataset() {
		for i, col := range catalog {
			row[i] = p.StringValue(col)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *Handler) GetStats(c echo.Context) error {
	stats := h.coord.Stats()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rows":         stats.Rows,
		"availability": stats.Availability,
		"priceRange": map[string]interface{}{
			"min":   stats.PriceRange.Min,
			"max":   stats.PriceRange.Max,
			"label": format.Currency(stats.PriceRange.Min) + " - " + format.Currency(stats.PriceRange.Max),
		},
		"lastId": stats.LastID,
	})
}

func (h *Handler) GetView(c echo.Context) error {
	st := h.coord.State()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"state":          st,
		"freezeFirstRow": h.coord.FreezeFirstRow(),
		"columns":        models.Columns(),
		"hasFilters":     st.HasActiveFilters(),
	})
}

func (h *Handler) SetSort(c echo.Context) error {
	var req struct {
		Field string `json:"field"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.SetSort(req.Field)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetFilter(c echo.Context) error {
	var req struct {
		Field     string `json:"field"`
		Value     any    `json:"value"`
		MatchMode string `json:"matchMode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.SetFilter(req.Field, req.Value, req.MatchMode)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) ClearFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.coord.ClearFilters())
}

func (h *Handler) SetGlobalFilter(c echo.Context) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.coord.SetGlobalFilter(req.Value))
}

func (h *Handler) ToggleColumn(c echo.Context) error {
	var req struct {
		Field string `json:"field"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.ToggleColumn(req.Field)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetColumnOrder(c echo.Context) error {
	var req struct {
		Order []string `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.SetColumnOrder(req.Order)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetSize(c echo.Context) error {
	var req struct {
		Size string `json:"size"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.SetSize(req.Size)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetRows(c echo.Context) error {
	var req struct {
		Rows int `json:"rows"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.coord.SetRows(req.Rows)
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) ToggleFreeze(c echo.Context) error {
	frozen := h.coord.ToggleFreeze()
	return c.JSON(http.StatusOK, map[string]interface{}{"freezeFirstRow": frozen})
}

func (h *Handler) FreezeRow(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	changed := h.coord.FreezeRow(id)
	return c.JSON(http.StatusOK, map[string]interface{}{"frozen": changed})
}

func (h *Handler) UnfreezeRow(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	changed := h.coord.UnfreezeRow(id)
	return c.JSON(http.StatusOK, map[string]interface{}{"unfrozen": changed})
}

// mapError translates engine errors onto HTTP status codes.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownField),
		errors.Is(err, engine.ErrInvalidSize),
		errors.Is(err, engine.ErrInvalidRowCount),
		errors.Is(err, engine.ErrInvalidBatchSize):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrLastVisibleColumn):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrIdentityExhausted):
		h.log.Error("identity space exhausted", "err", err)
		return echo.NewHTTPError(http.StatusInsufficientStorage, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
