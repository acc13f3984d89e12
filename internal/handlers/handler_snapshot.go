package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
)

// snapshotHandler handles the snapshot lifecycle endpoints.
type snapshotHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

func newSnapshotHandler(ss portssvc.SnapshotSvcFacade) *snapshotHandler {
	return &snapshotHandler{snapshotService: ss}
}

// registerSnapshotRoutes registers routes related to calculation snapshots.
func registerSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := newSnapshotHandler(snapshotService)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.POST("", h.createSnapshot)
		snapshots.GET("", h.listSnapshots)
		snapshots.GET("/compare", h.compareSnapshots)
		snapshots.GET("/:snapshotID", h.getSnapshot)
		snapshots.POST("/:snapshotID/unlock", h.unlockSnapshot)
		snapshots.POST("/:snapshotID/lock", h.lockSnapshot)
		snapshots.DELETE("/:snapshotID", h.deleteSnapshot)
	}
}

// createSnapshot godoc
// @Summary Create a calculation snapshot
// @Description Runs a zakat calculation over the user's active assets and persists it, locked, with per-asset captured values
// @Tags snapshots
// @Accept json
// @Produce json
// @Param snapshot body dto.CreateSnapshotRequest true "Snapshot parameters"
// @Success 201 {object} dto.SnapshotDetailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots [post]
func (h *snapshotHandler) createSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, values, err := h.snapshotService.CreateSnapshot(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating snapshot", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create snapshot"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSnapshotDetailResponse(snapshot, values))
}

// listSnapshots godoc
// @Summary List snapshots
// @Description Retrieves a page of the user's snapshots, newest first
// @Tags snapshots
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots [get]
func (h *snapshotHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	snapshots, token, err := h.snapshotService.ListSnapshots(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list snapshots"})
		return
	}

	resp := dto.ListSnapshotsResponse{
		Snapshots: make([]dto.SnapshotResponse, len(snapshots)),
		NextToken: token,
	}
	for i := range snapshots {
		resp.Snapshots[i] = dto.ToSnapshotResponse(&snapshots[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getSnapshot godoc
// @Summary Get a snapshot
// @Description Retrieves one snapshot with its captured asset values
// @Tags snapshots
// @Produce json
// @Param snapshotID path string true "Snapshot ID"
// @Success 200 {object} dto.SnapshotDetailResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/{snapshotID} [get]
func (h *snapshotHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, values, err := h.snapshotService.GetSnapshot(c.Request.Context(), userID, c.Param("snapshotID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Snapshot not found"})
			return
		}
		logger.Error("Failed to get snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDetailResponse(snapshot, values))
}

// unlockSnapshot godoc
// @Summary Unlock a snapshot
// @Description Makes a snapshot editable, recording the mandatory audit reason
// @Tags snapshots
// @Accept json
// @Produce json
// @Param snapshotID path string true "Snapshot ID"
// @Param unlock body dto.UnlockSnapshotRequest true "Unlock reason"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/{snapshotID}/unlock [post]
func (h *snapshotHandler) unlockSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UnlockSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, err := h.snapshotService.UnlockSnapshot(c.Request.Context(), userID, c.Param("snapshotID"), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Snapshot not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to unlock snapshot", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to unlock snapshot"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// lockSnapshot godoc
// @Summary Lock a snapshot
// @Description Re-freezes an unlocked snapshot; the unlock reason is kept for audit
// @Tags snapshots
// @Produce json
// @Param snapshotID path string true "Snapshot ID"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/{snapshotID}/lock [post]
func (h *snapshotHandler) lockSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshot, err := h.snapshotService.LockSnapshot(c.Request.Context(), userID, c.Param("snapshotID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Snapshot not found"})
			return
		}
		logger.Error("Failed to lock snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to lock snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// deleteSnapshot godoc
// @Summary Delete a snapshot
// @Description Permanently removes a snapshot and its captured asset values
// @Tags snapshots
// @Produce json
// @Param snapshotID path string true "Snapshot ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/{snapshotID} [delete]
func (h *snapshotHandler) deleteSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.snapshotService.DeleteSnapshot(c.Request.Context(), userID, c.Param("snapshotID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Snapshot not found"})
			return
		}
		logger.Error("Failed to delete snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete snapshot"})
		return
	}

	c.Status(http.StatusNoContent)
}

// compareSnapshots godoc
// @Summary Compare two snapshots
// @Description Compares wealth and zakat due between two snapshots owned by the user
// @Tags snapshots
// @Produce json
// @Param from query string true "From snapshot ID"
// @Param to query string true "To snapshot ID"
// @Success 200 {object} dto.SnapshotComparisonResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/compare [get]
func (h *snapshotHandler) compareSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fromID := c.Query("from")
	toID := c.Query("to")
	if fromID == "" || toID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both 'from' and 'to' snapshot IDs are required"})
		return
	}

	comparison, err := h.snapshotService.CompareSnapshots(c.Request.Context(), userID, fromID, toID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Snapshot not found"})
			return
		}
		logger.Error("Failed to compare snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compare snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotComparisonResponse(comparison))
}
