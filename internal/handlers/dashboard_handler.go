package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"hazina/internal/models"
	"hazina/internal/month"
	"hazina/internal/services"
)

// DashboardHandler composes the financial overview from the aggregation
// services. The overview is derived on every request; only the monthly
// snapshot is persisted as a side effect.
type DashboardHandler struct {
	reportService   services.ReportServicer
	ippService      services.IPPServicer
	snapshotService services.SnapshotServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService services.ReportServicer, ippService services.IPPServicer, snapshotService services.SnapshotServicer) *DashboardHandler {
	return &DashboardHandler{
		reportService:   reportService,
		ippService:      ippService,
		snapshotService: snapshotService,
	}
}

// GetDashboard returns the full financial overview for the current month.
// @Summary     Get dashboard
// @Description Get net worth, budget vs actual, savings progress, IPP summary, recent transactions, and growth for the current month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Dashboard overview"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Ensure the current month has a snapshot before reading growth, so
	// the first dashboard load of a month records it. This is also where
	// a missing profile surfaces.
	if _, err := h.snapshotService.Ensure(userID, month.Current()); err != nil {
		respondWithError(c, err)
		return
	}

	var (
		netWorth       float64
		budgetVsActual *services.BudgetVsActual
		savings        *services.SavingsProgress
		ippSummary     *services.IPPSummary
		recent         []models.Transaction
		growth         *services.NetWorthGrowth
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		netWorth, err = h.reportService.NetWorth(userID)
		return err
	})
	g.Go(func() error {
		var err error
		budgetVsActual, err = h.reportService.BudgetVsActual(userID)
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = h.reportService.SavingsProgress(userID)
		return err
	})
	g.Go(func() error {
		var err error
		ippSummary, err = h.ippService.GetSummary(userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = h.reportService.RecentTransactions(userID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		growth, err = h.reportService.NetWorthGrowth(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":               month.Current(),
		"days_left":           month.DaysLeft(),
		"net_worth":           netWorth,
		"budget_vs_actual":    budgetVsActual,
		"savings_progress":    savings,
		"ipp_summary":         ippSummary,
		"recent_transactions": recent,
		"net_worth_growth":    growth,
	})
}

// GetNetWorth returns the point-in-time net worth.
// @Summary     Get net worth
// @Description Get assets minus liabilities plus all-time additional income
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Net worth"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/net-worth [get]
func (h *DashboardHandler) GetNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	netWorth, err := h.reportService.NetWorth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"net_worth": netWorth})
}

// GetBudgetVsActual returns the current month's budget performance.
// @Summary     Get budget vs actual
// @Description Get per-pool budgeted vs spent figures for the current month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Budget vs actual rollup"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/budget [get]
func (h *DashboardHandler) GetBudgetVsActual(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.reportService.BudgetVsActual(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_vs_actual": result})
}

// GetSavingsProgress returns the savings goal rollup.
// @Summary     Get savings progress
// @Description Get aggregate progress across all savings goals
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Savings progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/savings [get]
func (h *DashboardHandler) GetSavingsProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.reportService.SavingsProgress(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings_progress": progress})
}

// GetRecentTransactions returns the latest transactions.
// @Summary     Get recent transactions
// @Description Get the most recent transactions, newest first
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of transactions (default 5)"
// @Success     200 {object} MessageResponse "Recent transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/recent [get]
func (h *DashboardHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := queryInt(c, "limit", 5)
	txs, err := h.reportService.RecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
