package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/activities/internal/app/models/dto"
	"github.com/mergington/activities/internal/app/services"
	"github.com/mergington/activities/internal/middleware"
	"github.com/mergington/activities/internal/pkg/validation"
)

// RegistrationController handles registration related endpoints
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

// Register handles registering an existing user for an activity
// @Summary Register user for activity
// @Description Registers a user for an activity, enforcing capacity and the
// one-registration-per-pair rule
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param request body dto.RegisterRequest true "User to register"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration created"
// @Failure 404 {object} dto.APIResponse "Activity or user not found"
// @Failure 409 {object} dto.APIResponse "Already registered or activity full"
// @Router /activities/{id}/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	activityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())))
		return
	}

	registration, err := c.registrationService.Register(ctx, req.UserID, activityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration))
}

// Unregister handles removing a user's registration for an activity
// @Summary Unregister user from activity
// @Tags registrations
// @Produce json
// @Param id path int true "Activity ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Registration removed"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /activities/{id}/registrations/{userId} [delete]
func (c *RegistrationController) Unregister(ctx *gin.Context) {
	activityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.registrationService.Unregister(ctx, userID, activityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Registration removed successfully"}))
}

// SignUp handles signing a student up for an activity by email, creating the
// user record on first contact
// @Summary Sign up for activity by email
// @Description Signs an email address up for an activity; the user record is
// created automatically if it does not exist yet
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param request body dto.SignUpRequest true "Email to sign up"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Signed up"
// @Failure 400 {object} dto.APIResponse "Invalid email"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Failure 409 {object} dto.APIResponse "Already signed up or activity full"
// @Router /activities/{id}/signup [post]
func (c *RegistrationController) SignUp(ctx *gin.Context) {
	activityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())))
		return
	}

	registration, err := c.registrationService.SignUp(ctx, activityID, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration))
}

// Withdraw handles removing a student from an activity by email
// @Summary Withdraw from activity by email
// @Tags registrations
// @Produce json
// @Param id path int true "Activity ID"
// @Param email query string true "Email address to withdraw"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Withdrawn"
// @Failure 404 {object} dto.APIResponse "Registration not found"
// @Router /activities/{id}/signup [delete]
func (c *RegistrationController) Withdraw(ctx *gin.Context) {
	activityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	email := ctx.Query("email")
	if !validation.IsValidEmail(validation.NormalizeEmail(email)) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid email address").WithField("email")))
		return
	}

	if err := c.registrationService.Withdraw(ctx, activityID, email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Withdrawn from activity successfully"}))
}
