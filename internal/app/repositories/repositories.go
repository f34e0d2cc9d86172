package repositories

import (
	"context"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/db"
)

// IUserRepository defines the interface for user-related database operations.
// Lookups report absence as a nil model without error; mutations on missing
// rows return apperrors.ErrUserNotFound.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetOrCreateByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, email, name *string, gradeLevel *int) (*models.User, error)
	List(ctx context.Context, offset uint64, limit int) ([]models.User, int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// IActivityRepository defines the interface for activity-related database operations
type IActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	GetByName(ctx context.Context, name string) (*models.Activity, error)
	List(ctx context.Context, offset uint64, limit int) ([]models.Activity, int64, error)
	Delete(ctx context.Context, id int64) error
}

// IRegistrationRepository defines the interface for registration operations
type IRegistrationRepository interface {
	Register(ctx context.Context, userID, activityID int64) (*models.Registration, error)
	Unregister(ctx context.Context, userID, activityID int64) error
	ListActivitiesForUser(ctx context.Context, userID int64) ([]models.Activity, error)
	ListUsersForActivity(ctx context.Context, activityID int64) ([]models.User, error)
	CountForActivity(ctx context.Context, activityID int64) (int, error)
	CountsForActivityIDs(ctx context.Context, activityIDs []int64) (map[int64]int, error)
	IsRegistered(ctx context.Context, userID, activityID int64) (bool, error)
}

// Repositories bundles all repositories sharing one database handle
type Repositories struct {
	UserRepository         *UserRepository
	ActivityRepository     *ActivityRepository
	RegistrationRepository *RegistrationRepository
}

// NewRepositories creates all repositories over the shared database
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		ActivityRepository:     NewActivityRepository(database.Pool),
		RegistrationRepository: NewRegistrationRepository(database),
	}
}
