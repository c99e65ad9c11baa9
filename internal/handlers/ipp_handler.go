package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hazina/internal/errors"
	"hazina/internal/services"
)

// IPPHandler handles Individual Pension Plan requests.
type IPPHandler struct {
	ippService services.IPPServicer
}

// NewIPPHandler creates a new IPPHandler.
func NewIPPHandler(ippService services.IPPServicer) *IPPHandler {
	return &IPPHandler{ippService: ippService}
}

// CreateIPPAccountRequest represents the payload for opening an IPP account.
type CreateIPPAccountRequest struct {
	MonthlyContribution float64 `json:"monthly_contribution" binding:"gte=0"`
}

// UpdateContributionRequest represents the payload for changing the planned contribution.
type UpdateContributionRequest struct {
	MonthlyContribution float64 `json:"monthly_contribution" binding:"gte=0"`
}

// LogContributionRequest represents the payload for logging a contribution.
type LogContributionRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	RealizedGrowth float64 `json:"realized_growth" binding:"gte=0"`
}

// GetAccount returns the IPP account, or an empty object when none exists.
// @Summary     Get IPP account
// @Description Get the user's Individual Pension Plan account; absence is a valid state
// @Tags        ipp
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "IPP account, or null when not configured"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ipp [get]
func (h *IPPHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.ippService.GetAccount(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// CreateAccount opens the user's IPP account.
// @Summary     Open IPP account
// @Description Open the singleton IPP account for the authenticated user
// @Tags        ipp
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIPPAccountRequest true "Initial contribution plan"
// @Success     201 {object} MessageResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Account already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ipp [post]
func (h *IPPHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIPPAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.ippService.CreateAccount(userID, req.MonthlyContribution)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// UpdateContribution changes the planned monthly contribution.
// @Summary     Update planned contribution
// @Description Change the planned monthly IPP contribution
// @Tags        ipp
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateContributionRequest true "New planned contribution"
// @Success     200 {object} MessageResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No IPP account configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ipp/contribution [put]
func (h *IPPHandler) UpdateContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.ippService.UpdateMonthlyContribution(userID, req.MonthlyContribution)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// LogContribution records a contribution and optional realized growth.
// @Summary     Log IPP contribution
// @Description Apply a contribution and optional realized growth to the account balance
// @Tags        ipp
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LogContributionRequest true "Contribution details"
// @Success     200 {object} MessageResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No IPP account configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ipp/contributions [post]
func (h *IPPHandler) LogContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LogContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.ippService.LogContribution(userID, req.Amount, req.RealizedGrowth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// GetSummary returns the account with derived tax relief figures.
// @Summary     Get IPP summary
// @Description Get the IPP account decorated with tax relief and effective cost
// @Tags        ipp
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "IPP summary, or null when not configured"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ipp/summary [get]
func (h *IPPHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.ippService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
