package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/exchanger/internal/domain/currency"
	"github.com/yanqian/exchanger/internal/domain/unitconv"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	unitSvc     unitconv.Service
	currencySvc currency.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(unitSvc unitconv.Service, currencySvc currency.Service, logger *slog.Logger) *Handler {
	return &Handler{
		unitSvc:     unitSvc,
		currencySvc: currencySvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListUnits returns every unit type with its codes and display labels.
func (h *Handler) ListUnits(c *gin.Context) {
	groups := h.unitSvc.Units(c.Request.Context())
	out := make([]unitGroupView, 0, len(groups))
	for _, g := range groups {
		view := unitGroupView{Type: g.Type, Units: make([]unitView, 0, len(g.Units))}
		for _, u := range g.Units {
			view.Units = append(view.Units, unitView{Code: u, Label: unitLabel(u)})
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, gin.H{"unitTypes": out})
}

// ConvertUnits handles both the query string and JSON body forms.
func (h *Handler) ConvertUnits(c *gin.Context) {
	var (
		req unitconv.Request
		err error
	)
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.unitSvc.Convert(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "conversion_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rates returns the latest exchange rates for a base currency.
func (h *Handler) Rates(c *gin.Context) {
	var req currency.RatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.currencySvc.Rates(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "rates_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConvertCurrency converts an amount through the upstream API.
func (h *Handler) ConvertCurrency(c *gin.Context) {
	var req currency.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.currencySvc.Convert(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "convert_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Currencies lists supported currency codes and names.
func (h *Handler) Currencies(c *gin.Context) {
	list, err := h.currencySvc.Currencies(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "currencies_failed"))
		return
	}
	c.JSON(http.StatusOK, list)
}

// Historical returns a daily rate series.
func (h *Handler) Historical(c *gin.Context) {
	var req currency.HistoricalRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.currencySvc.Historical(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "historical_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TestUpstream checks that the configured API key is accepted upstream.
func (h *Handler) TestUpstream(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencySvc.CheckUpstream(c.Request.Context()))
}

type unitGroupView struct {
	Type  unitconv.UnitType `json:"type"`
	Units []unitView        `json:"units"`
}

type unitView struct {
	Code  unitconv.Unit `json:"code"`
	Label string        `json:"label"`
}
