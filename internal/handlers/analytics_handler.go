package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hazina/internal/errors"
	"hazina/internal/month"
	"hazina/internal/services"
)

// AnalyticsHandler serves monthly snapshot history and trend endpoints.
type AnalyticsHandler struct {
	snapshotService services.SnapshotServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(snapshotService services.SnapshotServicer) *AnalyticsHandler {
	return &AnalyticsHandler{snapshotService: snapshotService}
}

// GetSnapshots returns recent snapshots plus month-over-month changes.
// @Summary     Get snapshot history
// @Description Get snapshots for the last n months (default 6), oldest first, with month-over-month deltas
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months (default 6, max 24)"
// @Success     200 {object} MessageResponse "Snapshots and changes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/snapshots [get]
func (h *AnalyticsHandler) GetSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := queryInt(c, "months", 6)
	if months > 24 {
		months = 24
	}

	snapshots, err := h.snapshotService.Recent(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"changes":   h.snapshotService.MonthlyChanges(snapshots),
	})
}

// GetAllSnapshots returns every stored snapshot.
// @Summary     Get all snapshots
// @Description Get the user's full snapshot history, oldest first
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "All snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/snapshots/all [get]
func (h *AnalyticsHandler) GetAllSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshots, err := h.snapshotService.GetAll(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// EnsureSnapshot materializes the snapshot for one month.
// @Summary     Ensure month snapshot
// @Description Get or create the snapshot for the given month
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month path string true "Month key (YYYY-MM)"
// @Success     200 {object} MessageResponse "Snapshot"
// @Failure     400 {object} ErrorResponse "Invalid month key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/snapshots/{month} [post]
func (h *AnalyticsHandler) EnsureSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthKey := c.Param("month")
	if !month.Valid(monthKey) {
		respondWithError(c, apperrors.ErrInvalidMonthKey)
		return
	}

	snapshot, err := h.snapshotService.Ensure(userID, monthKey)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// RefreshSnapshot recomputes the current month's snapshot.
// @Summary     Refresh current snapshot
// @Description Recompute and replace the current month's snapshot from live state
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Refreshed snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/snapshots/refresh [post]
func (h *AnalyticsHandler) RefreshSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshotService.UpdateCurrent(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// RefreshAllSnapshots refreshes the current month's snapshot for every
// user with a profile. Guarded by the maintenance API key, not user auth.
// @Summary     Refresh all snapshots
// @Description Recompute the current month's snapshot for all users; maintenance only
// @Tags        maintenance
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Maintenance API key"
// @Success     200 {object} MessageResponse "Refresh count"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /maintenance/snapshots/refresh [post]
func (h *AnalyticsHandler) RefreshAllSnapshots(c *gin.Context) {
	count, err := h.snapshotService.RefreshAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": count})
}
