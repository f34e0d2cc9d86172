package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mergington/activities/internal/app/models/dto"
	"github.com/mergington/activities/internal/app/repositories"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/validation"
)

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	Register(ctx context.Context, userID, activityID int64) (*dto.RegistrationResponse, error)
	Unregister(ctx context.Context, userID, activityID int64) error
	SignUp(ctx context.Context, activityID int64, email string) (*dto.RegistrationResponse, error)
	Withdraw(ctx context.Context, activityID int64, email string) error
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	registrationRepo repositories.IRegistrationRepository
	userRepo         repositories.IUserRepository
	activityRepo     repositories.IActivityRepository
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo repositories.IRegistrationRepository,
	userRepo repositories.IUserRepository,
	activityRepo repositories.IActivityRepository,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		activityRepo:     activityRepo,
		logger:           logger,
	}
}

// Register registers an existing user for an activity. Capacity and
// duplicate checks run atomically in the repository.
func (s *registrationServiceImpl) Register(ctx context.Context, userID, activityID int64) (*dto.RegistrationResponse, error) {
	registration, err := s.registrationRepo.Register(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("activityID", activityID).
		Msg("User registered for activity")

	resp := dto.NewRegistrationResponse(registration)
	return &resp, nil
}

// Unregister removes a user's registration for an activity
func (s *registrationServiceImpl) Unregister(ctx context.Context, userID, activityID int64) error {
	if err := s.registrationRepo.Unregister(ctx, userID, activityID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("activityID", activityID).
		Msg("User unregistered from activity")

	return nil
}

// SignUp signs a student up for an activity by email, creating the user
// record on first sign-up.
func (s *registrationServiceImpl) SignUp(ctx context.Context, activityID int64, email string) (*dto.RegistrationResponse, error) {
	normalized := validation.NormalizeEmail(email)
	if !validation.IsValidEmail(normalized) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
	}

	// The activity is checked before the user is created so that a sign-up
	// against a missing activity leaves no user row behind.
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, apperrors.ErrActivityNotFound
	}

	user, err := s.userRepo.GetOrCreateByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}

	return s.Register(ctx, user.ID, activityID)
}

// Withdraw removes a student's registration by email
func (s *registrationServiceImpl) Withdraw(ctx context.Context, activityID int64, email string) error {
	normalized := validation.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrRegistrationNotFound
	}

	return s.Unregister(ctx, user.ID, activityID)
}
