package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/app/models/dto"
	"github.com/mergington/activities/internal/app/repositories"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/helpers"
	"github.com/mergington/activities/internal/pkg/validation"
)

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error)
	GetUserActivities(ctx context.Context, userID int64) (*dto.UserActivitiesResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo         repositories.IUserRepository
	registrationRepo repositories.IRegistrationRepository
	logger           zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	registrationRepo repositories.IRegistrationRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// CreateUser creates a new user after normalizing and validating the email
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
	}
	if !validation.IsValidGradeLevel(req.GradeLevel) {
		return nil, apperrors.NewBadRequestError("grade level is out of range")
	}

	user := &models.User{
		Email:      email,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User created")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser applies a partial update to a user
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var email *string
	if req.Email != nil {
		normalized := validation.NormalizeEmail(*req.Email)
		if !validation.IsValidEmail(normalized) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
		}
		email = &normalized
	}
	if !validation.IsValidGradeLevel(req.GradeLevel) {
		return nil, apperrors.NewBadRequestError("grade level is out of range")
	}

	user, err := s.userRepo.Update(ctx, id, email, req.Name, req.GradeLevel)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User updated")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers retrieves users ordered by id
func (s *userServiceImpl) ListUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetUserActivities retrieves the activities a user is registered for,
// annotated with current registration counts
func (s *userServiceImpl) GetUserActivities(ctx context.Context, userID int64) (*dto.UserActivitiesResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	activities, err := s.registrationRepo.ListActivitiesForUser(ctx, userID)
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

	return &dto.UserActivitiesResponse{
		UserID:     userID,
		Activities: responses,
	}, nil
}
