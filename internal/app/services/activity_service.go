package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/app/models/dto"
	"github.com/mergington/activities/internal/app/repositories"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/helpers"
	"github.com/mergington/activities/internal/pkg/validation"
)

// ActivityService defines the interface for activity operations
type ActivityService interface {
	CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetActivityByID(ctx context.Context, id int64) (*dto.ActivityResponse, error)
	GetActivityByName(ctx context.Context, name string) (*dto.ActivityResponse, error)
	ListActivities(ctx context.Context, page, pageSize int) (*dto.ActivityListResponse, error)
	DeleteActivity(ctx context.Context, id int64) error
	GetParticipants(ctx context.Context, activityID int64) (*dto.ParticipantListResponse, error)
}

// activityServiceImpl implements ActivityService
type activityServiceImpl struct {
	activityRepo     repositories.IActivityRepository
	registrationRepo repositories.IRegistrationRepository
	logger           zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo repositories.IActivityRepository,
	registrationRepo repositories.IRegistrationRepository,
	logger zerolog.Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo:     activityRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// CreateActivity creates a new activity
func (s *activityServiceImpl) CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if !validation.IsValidActivityName(name) {
		return nil, apperrors.NewBadRequestError("activity name length is out of range")
	}
	if req.MaxParticipants <= 0 {
		return nil, apperrors.ErrInvalidCapacity
	}

	activity := &models.Activity{
		Name:            name,
		Description:     req.Description,
		Schedule:        req.Schedule,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       req.CreatedBy,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("activityID", activity.ID).
		Str("name", activity.Name).
		Int("maxParticipants", activity.MaxParticipants).
		Msg("Activity created")

	resp := dto.NewActivityResponse(activity, 0)
	return &resp, nil
}

// GetActivityByID retrieves an activity annotated with its registration count
func (s *activityServiceImpl) GetActivityByID(ctx context.Context, id int64) (*dto.ActivityResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apperrors.ErrActivityNotFound
	}

	return s.annotate(ctx, activity)
}

// GetActivityByName retrieves an activity by its unique name, annotated with
// its registration count
func (s *activityServiceImpl) GetActivityByName(ctx context.Context, name string) (*dto.ActivityResponse, error) {
	activity, err := s.activityRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apperrors.ErrActivityNotFound
	}

	return s.annotate(ctx, activity)
}

func (s *activityServiceImpl) annotate(ctx context.Context, activity *models.Activity) (*dto.ActivityResponse, error) {
	count, err := s.registrationRepo.CountForActivity(ctx, activity.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewActivityResponse(activity, count)
	return &resp, nil
}

// ListActivities retrieves activities ordered by id, each annotated with its
// current registration count. Counts are derived from the registrations table
// in one bulk query to avoid drift.
func (s *activityServiceImpl) ListActivities(ctx context.Context, page, pageSize int) (*dto.ActivityListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	activities, total, err := s.activityRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(activities))
	for i := range activities {
		ids = append(ids, activities[i].ID)
	}

	counts, err := s.registrationRepo.CountsForActivityIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, dto.NewActivityResponse(&activities[i], counts[activities[i].ID]))
	}

	return &dto.ActivityListResponse{
		Activities:     responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// DeleteActivity removes an activity together with its registrations
func (s *activityServiceImpl) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("activityID", id).Msg("Activity deleted")
	return nil
}

// GetParticipants retrieves the users registered for an activity
func (s *activityServiceImpl) GetParticipants(ctx context.Context, activityID int64) (*dto.ParticipantListResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apperrors.ErrActivityNotFound
	}

	users, err := s.registrationRepo.ListUsersForActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	participants := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		participants = append(participants, dto.NewUserResponse(&users[i]))
	}

	return &dto.ParticipantListResponse{
		ActivityID:   activityID,
		Participants: participants,
	}, nil
}
