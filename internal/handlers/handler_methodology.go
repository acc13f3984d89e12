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

// methodologyHandler handles HTTP requests for user-defined methodology configs.
type methodologyHandler struct {
	methodologyService portssvc.MethodologySvcFacade
}

func newMethodologyHandler(ms portssvc.MethodologySvcFacade) *methodologyHandler {
	return &methodologyHandler{methodologyService: ms}
}

// registerMethodologyRoutes registers routes related to methodology configs.
func registerMethodologyRoutes(rg *gin.RouterGroup, methodologyService portssvc.MethodologySvcFacade) {
	h := newMethodologyHandler(methodologyService)

	configs := rg.Group("/methodology-configs")
	{
		configs.POST("", h.createConfig)
		configs.GET("", h.listConfigs)
		configs.GET("/:configID", h.getConfig)
		configs.PUT("/:configID", h.updateConfig)
		configs.DELETE("/:configID", h.deleteConfig)
	}
}

// createConfig godoc
// @Summary Create a methodology config
// @Description Creates a user-defined ruleset for the CUSTOM methodology
// @Tags methodology-configs
// @Accept json
// @Produce json
// @Param config body dto.CreateMethodologyConfigRequest true "Config details"
// @Success 201 {object} dto.MethodologyConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /methodology-configs [post]
func (h *methodologyHandler) createConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMethodologyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	config, err := h.methodologyService.CreateMethodologyConfig(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create methodology config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create methodology config"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToMethodologyConfigResponse(config))
}

// listConfigs godoc
// @Summary List methodology configs
// @Description Retrieves the user's methodology configs
// @Tags methodology-configs
// @Produce json
// @Success 200 {array} dto.MethodologyConfigResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /methodology-configs [get]
func (h *methodologyHandler) listConfigs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	configs, err := h.methodologyService.ListMethodologyConfigs(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list methodology configs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list methodology configs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMethodologyConfigResponse(configs))
}

// getConfig godoc
// @Summary Get a methodology config
// @Description Retrieves one methodology config owned by the user
// @Tags methodology-configs
// @Produce json
// @Param configID path string true "Config ID"
// @Success 200 {object} dto.MethodologyConfigResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /methodology-configs/{configID} [get]
func (h *methodologyHandler) getConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	config, err := h.methodologyService.GetMethodologyConfig(c.Request.Context(), userID, c.Param("configID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Methodology config not found"})
			return
		}
		logger.Error("Failed to get methodology config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve methodology config"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMethodologyConfigResponse(config))
}

// updateConfig godoc
// @Summary Update a methodology config
// @Description Applies changes to a methodology config owned by the user
// @Tags methodology-configs
// @Accept json
// @Produce json
// @Param configID path string true "Config ID"
// @Param config body dto.UpdateMethodologyConfigRequest true "Fields to update"
// @Success 200 {object} dto.MethodologyConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /methodology-configs/{configID} [put]
func (h *methodologyHandler) updateConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateMethodologyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	config, err := h.methodologyService.UpdateMethodologyConfig(c.Request.Context(), userID, c.Param("configID"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Methodology config not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update methodology config", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update methodology config"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMethodologyConfigResponse(config))
}

// deleteConfig godoc
// @Summary Delete a methodology config
// @Description Removes a methodology config owned by the user
// @Tags methodology-configs
// @Produce json
// @Param configID path string true "Config ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /methodology-configs/{configID} [delete]
func (h *methodologyHandler) deleteConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.methodologyService.DeleteMethodologyConfig(c.Request.Context(), userID, c.Param("configID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Methodology config not found"})
			return
		}
		logger.Error("Failed to delete methodology config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete methodology config"})
		return
	}

	c.Status(http.StatusNoContent)
}
