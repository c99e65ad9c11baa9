package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hazina/internal/errors"
	"hazina/internal/services"
)

// ProfileHandler handles financial profile and onboarding requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// CreateProfileRequest represents the onboarding payload.
type CreateProfileRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	MonthlyIncome float64 `json:"monthly_income" binding:"required,gt=0"`
	Dependents    int     `json:"dependents" binding:"gte=0,lte=20"`
}

// UpdateProfileRequest represents the profile update payload.
type UpdateProfileRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=1,max=100"`
	MonthlyIncome *float64 `json:"monthly_income" binding:"omitempty,gt=0"`
	Dependents    *int     `json:"dependents" binding:"omitempty,gte=0,lte=20"`
}

// CreateProfile runs onboarding: it creates the financial profile, seeds
// the generated budget categories, and opens the default IPP account.
// @Summary     Create financial profile
// @Description Create the user's financial profile and seed the generated budget
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProfileRequest true "Profile details"
// @Success     201 {object} MessageResponse "Profile created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Profile already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(userID, req.Name, req.MonthlyIncome, req.Dependents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PROFILE", "profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"monthly_income": req.MonthlyIncome, "dependents": req.Dependents})

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile returns the user's financial profile.
// @Summary     Get financial profile
// @Description Get the authenticated user's financial profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile updates profile fields. Changing income or dependents
// does not touch existing categories until a regenerate is requested.
// @Summary     Update financial profile
// @Description Update the user's financial profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Updated profile details"
// @Success     200 {object} MessageResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, req.Name, req.MonthlyIncome, req.Dependents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROFILE", "profile", profile.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// RegenerateBudget replaces the generated categories with a fresh
// allocation from the current profile.
// @Summary     Regenerate budget categories
// @Description Replace the generated budget categories using the current income and dependents
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Regenerated categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No profile found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/regenerate [post]
func (h *ProfileHandler) RegenerateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.profileService.RegenerateCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REGENERATE_BUDGET", "profile", userID, c.ClientIP(),
		map[string]interface{}{"categories": len(categories)})

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
