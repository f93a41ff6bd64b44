package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitemetrics/lookup_api/models"
	"github.com/sitemetrics/lookup_api/pkg/lookup/currency"
	"github.com/sitemetrics/lookup_api/pkg/normalize"
)

const lookupTimeout = 30 * time.Second

// CurrencyHandlers groups the currency conversion endpoints.
type CurrencyHandlers struct {
	svc    *currency.Service
	logger *slog.Logger
}

func NewCurrencyHandlers(svc *currency.Service, logger *slog.Logger) *CurrencyHandlers {
	return &CurrencyHandlers{svc: svc, logger: logger}
}

// ConvertHandler godoc
// @Summary      Convert between currencies
// @Description  Resolves the exchange rate for a currency pair across several rate providers and optionally converts an amount.
// @Tags         Currency
// @Produce      json
// @Param        from query string true "Source currency code (e.g. USD)"
// @Param        to query string true "Target currency code (e.g. EUR)"
// @Param        amount query number false "Amount to convert"
// @Success      200 {object} models.ConversionResponse
// @Failure      400 {object} models.ErrorResponse "Missing or empty currency code"
// @Failure      500 {object} models.ErrorResponse "All rate providers exhausted"
// @Router       /convert [get]
func (h *CurrencyHandlers) ConvertHandler(c *gin.Context) {
	from, to, err := normalize.CurrencyPair(c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	rates, err := h.svc.Rate(ctx, currency.Pair{From: from, To: to})
	if err != nil {
		respondError(c, err)
		return
	}

	response := models.ConversionResponse{
		From:        from,
		To:          to,
		Rate:        rates.Rate,
		Date:        rates.Date,
		LastUpdated: time.Now().UTC(),
	}

	// A missing or non-numeric amount leaves convertedAmount null.
	if raw := c.Query("amount"); raw != "" {
		if amount, perr := strconv.ParseFloat(raw, 64); perr == nil {
			converted := amount * rates.Rate
			response.Amount = &amount
			response.ConvertedAmount = &converted
		}
	}

	c.JSON(http.StatusOK, response)
}
