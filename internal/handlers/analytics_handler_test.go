package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"hazina/internal/models"
)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/analytics/snapshots", handler.GetSnapshots)
	auth.GET("/analytics/snapshots/all", handler.GetAllSnapshots)
	auth.POST("/analytics/snapshots/refresh", handler.RefreshSnapshot)
	auth.POST("/analytics/snapshots/:month", handler.EnsureSnapshot)
	r.POST("/maintenance/snapshots/refresh", handler.RefreshAllSnapshots)
	return r
}

func TestAnalyticsHandler_GetSnapshots(t *testing.T) {
	t.Run("defaults_to_six_months", func(t *testing.T) {
		var gotMonths int
		snapSvc := &mockSnapshotService{
			recentFn: func(_ string, n int) ([]models.MonthlySnapshot, error) {
				gotMonths = n
				return make([]models.MonthlySnapshot, n), nil
			},
		}
		handler := NewAnalyticsHandler(snapSvc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/snapshots", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != 6 {
			t.Errorf("expected 6 months, got %d", gotMonths)
		}
		result := parseJSON(t, rec)
		if result["changes"] == nil {
			t.Error("expected changes alongside snapshots")
		}
	})

	t.Run("caps_months_at_24", func(t *testing.T) {
		var gotMonths int
		snapSvc := &mockSnapshotService{
			recentFn: func(_ string, n int) ([]models.MonthlySnapshot, error) {
				gotMonths = n
				return make([]models.MonthlySnapshot, n), nil
			},
		}
		handler := NewAnalyticsHandler(snapSvc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/snapshots?months=100", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonths != 24 {
			t.Errorf("expected cap of 24, got %d", gotMonths)
		}
	})
}

func TestAnalyticsHandler_EnsureSnapshot(t *testing.T) {
	t.Run("rejects_malformed_month", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockSnapshotService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "POST", "/analytics/snapshots/2026-13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_MONTH_KEY")
	})

	t.Run("ensures_valid_month", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockSnapshotService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "POST", "/analytics/snapshots/2026-07", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		snap := result["snapshot"].(map[string]interface{})
		if snap["month"] != "2026-07" {
			t.Errorf("expected month 2026-07, got %v", snap["month"])
		}
	})
}

func TestAnalyticsHandler_RefreshAllSnapshots(t *testing.T) {
	t.Run("reports_refresh_count", func(t *testing.T) {
		snapSvc := &mockSnapshotService{
			refreshAllFn: func() (int, error) { return 3, nil },
		}
		handler := NewAnalyticsHandler(snapSvc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "POST", "/maintenance/snapshots/refresh", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["refreshed"].(float64) != 3 {
			t.Errorf("expected 3 refreshed, got %v", result["refreshed"])
		}
	})
}
