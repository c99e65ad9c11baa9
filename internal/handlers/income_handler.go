package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hazina/internal/errors"
	"hazina/internal/month"
	"hazina/internal/services"
)

// IncomeHandler handles additional income requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents the payload for recording additional income.
type CreateIncomeRequest struct {
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Source      string  `json:"source" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=500"`
}

// CreateIncome records an additional income entry.
// @Summary     Record additional income
// @Description Record incidental income outside the base salary
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} MessageResponse "Income recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be in YYYY-MM-DD format"))
		return
	}

	entry, err := h.incomeService.CreateIncome(userID, date, req.Amount, req.Source, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income": entry})
}

// GetIncome lists income entries, by month or all.
// @Summary     List additional income
// @Description List income entries; deleted entries appear only with include_deleted
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Filter by month (YYYY-MM)"
// @Param       include_deleted query bool false "Include trashed entries"
// @Success     200 {object} MessageResponse "List of income entries"
// @Failure     400 {object} ErrorResponse "Invalid month key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if monthKey := c.Query("month"); monthKey != "" {
		if !month.Valid(monthKey) {
			respondWithError(c, apperrors.ErrInvalidMonthKey)
			return
		}
		entries, err := h.incomeService.GetIncomeByMonth(userID, monthKey)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"income": entries})
		return
	}

	includeDeleted := c.Query("include_deleted") == "true"
	entries, err := h.incomeService.GetAllIncome(userID, includeDeleted)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": entries})
}

// DeleteIncome moves an income entry to the trash.
// @Summary     Delete additional income
// @Description Soft-delete an income entry; it moves to the trash and leaves all aggregates
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}

// RestoreIncome restores a trashed income entry.
// @Summary     Restore additional income
// @Description Restore a soft-deleted income entry from the trash
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income ID"
// @Success     200 {object} MessageResponse "Restored income entry"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id}/restore [post]
func (h *IncomeHandler) RestoreIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.incomeService.RestoreIncome(userID, incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": entry})
}
