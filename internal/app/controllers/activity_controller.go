package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/activities/internal/app/models/dto"
	"github.com/mergington/activities/internal/app/services"
	"github.com/mergington/activities/internal/middleware"
	"github.com/mergington/activities/internal/pkg/helpers"
)

// ActivityController handles activity related endpoints
type ActivityController struct {
	activityService services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// GetAllActivities handles listing activities with participant counts
// @Summary List activities
// @Description Lists activities with their current participant counts
// @Tags activities
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse} "Activities retrieved"
// @Router /activities [get]
func (c *ActivityController) GetAllActivities(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	activities, err := c.activityService.ListActivities(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities))
}

// GetActivityByID handles retrieving an activity by id
// @Summary Get activity by ID
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse} "Activity retrieved"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id} [get]
func (c *ActivityController) GetActivityByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	activity, err := c.activityService.GetActivityByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activity))
}

// GetActivityByName handles retrieving an activity by its display name
// @Summary Get activity by name
// @Description Looks up an activity by its unique name, for clients that only
// know the human readable title
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse} "Activity retrieved"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/by-name/{name} [get]
func (c *ActivityController) GetActivityByName(ctx *gin.Context) {
	name := ctx.Param("name")

	activity, err := c.activityService.GetActivityByName(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activity))
}

// CreateActivity handles creating a new activity
// @Summary Create activity
// @Description Creates a new activity with a unique name and positive capacity
// @Tags activities
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityRequest true "Activity to create"
// @Success 201 {object} dto.APIResponse{data=dto.ActivityResponse} "Activity created"
// @Failure 400 {object} dto.APIResponse "Invalid capacity or payload"
// @Failure 409 {object} dto.APIResponse "Activity name already exists"
// @Router /activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())))
		return
	}

	activity, err := c.activityService.CreateActivity(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(activity))
}

// DeleteActivity handles deleting an activity and its registrations
// @Summary Delete activity
// @Description Deletes an activity; registrations for it are removed as well
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Activity deleted"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.activityService.DeleteActivity(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Activity deleted successfully"}))
}

// GetParticipants handles listing the users registered for an activity
// @Summary List activity participants
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantListResponse} "Participants retrieved"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id}/participants [get]
func (c *ActivityController) GetParticipants(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participants, err := c.activityService.GetParticipants(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participants))
}
