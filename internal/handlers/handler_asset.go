package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
)

// assetHandler handles HTTP requests related to assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers routes related to assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.DELETE("/:assetID", h.deactivateAsset)
	}
}

// createAsset godoc
// @Summary Register a new asset
// @Description Registers a new asset and derives its zakat classification
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create asset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create asset"})
		return
	}

	logger.Info("Asset created", slog.String("asset_id", asset.AssetID))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List assets
// @Description Retrieves the authenticated user's active assets
// @Tags assets
// @Produce json
// @Success 200 {array} dto.AssetResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assets, err := h.assetService.ListAssets(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list assets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetResponse(assets))
}

// getAsset godoc
// @Summary Get an asset
// @Description Retrieves a single asset owned by the authenticated user
// @Tags assets
// @Produce json
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{assetID} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), userID, c.Param("assetID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Asset not found"})
			return
		}
		logger.Error("Failed to get asset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve asset"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Applies changes to an asset and re-derives its classification
// @Tags assets
// @Accept json
// @Produce json
// @Param assetID path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{assetID} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), userID, c.Param("assetID"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Asset not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update asset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deactivateAsset godoc
// @Summary Deactivate an asset
// @Description Soft-deletes an asset so it no longer participates in calculations
// @Tags assets
// @Produce json
// @Param assetID path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /assets/{assetID} [delete]
func (h *assetHandler) deactivateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.assetService.DeactivateAsset(c.Request.Context(), userID, c.Param("assetID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Asset not found"})
			return
		}
		logger.Error("Failed to deactivate asset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate asset"})
		return
	}

	c.Status(http.StatusNoContent)
}
