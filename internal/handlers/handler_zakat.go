package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
)

// zakatHandler handles nisab resolution and ad-hoc zakat calculations.
type zakatHandler struct {
	zakatService    portssvc.ZakatSvcFacade
	defaultCurrency string
}

func newZakatHandler(zs portssvc.ZakatSvcFacade, defaultCurrency string) *zakatHandler {
	return &zakatHandler{zakatService: zs, defaultCurrency: defaultCurrency}
}

// registerZakatRoutes registers routes related to zakat calculations.
func registerZakatRoutes(rg *gin.RouterGroup, zakatService portssvc.ZakatSvcFacade, defaultCurrency string) {
	h := newZakatHandler(zakatService, defaultCurrency)

	zakat := rg.Group("/zakat")
	{
		zakat.GET("/nisab", h.getNisab)
		zakat.POST("/calculate", h.calculateZakat)
	}
}

// getNisab godoc
// @Summary Resolve nisab thresholds
// @Description Resolves gold, silver and effective nisab for a methodology using current metal prices
// @Tags zakat
// @Produce json
// @Param methodology query string false "Methodology (STANDARD, HANAFI, SHAFII, CUSTOM)" default(STANDARD)
// @Param currency query string false "ISO currency code"
// @Success 200 {object} dto.NisabResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /zakat/nisab [get]
func (h *zakatHandler) getNisab(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	methodology := domain.Methodology(c.DefaultQuery("methodology", string(domain.MethodologyStandard)))
	if !methodology.IsValidForCalculation() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown methodology"})
		return
	}
	currency := c.DefaultQuery("currency", h.defaultCurrency)

	nisab, err := h.zakatService.CalculateNisab(c.Request.Context(), methodology, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to resolve nisab", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve nisab"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNisabResponse(*nisab, currency))
}

// calculateZakat godoc
// @Summary Calculate zakat
// @Description Runs a zakat calculation over the user's active assets without persisting anything
// @Tags zakat
// @Accept json
// @Produce json
// @Param calculation body dto.CalculateZakatRequest true "Calculation parameters"
// @Success 200 {object} dto.ZakatCalculationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /zakat/calculate [post]
func (h *zakatHandler) calculateZakat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateZakatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateZakat", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.zakatService.CalculateZakat(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error calculating zakat", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to calculate zakat", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to calculate zakat"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}
	c.JSON(http.StatusOK, dto.ToZakatCalculationResponse(result, currency))
}
