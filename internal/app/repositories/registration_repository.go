package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/db"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/dberrors"
)

// RegistrationRepository handles database operations for registrations. It
// holds the full database handle rather than the bare pool because Register
// needs a scoped transaction.
type RegistrationRepository struct {
	db *db.PostgresDB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(database *db.PostgresDB) *RegistrationRepository {
	return &RegistrationRepository{db: database}
}

// Register creates a registration as one atomic check-then-act unit. The
// activity row is locked for the duration of the transaction, so two
// concurrent registrations for the last open slot serialize: one inserts,
// the other observes the updated count and fails with ErrActivityFull.
// Duplicate pairs racing past the existence check are caught by the unique
// constraint and reported as ErrAlreadyRegistered.
func (r *RegistrationRepository) Register(ctx context.Context, userID, activityID int64) (*models.Registration, error) {
	registration := &models.Registration{
		UserID:     userID,
		ActivityID: activityID,
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var maxParticipants int
		err := tx.QueryRow(ctx, `
			SELECT max_participants FROM activities WHERE id = $1 FOR UPDATE`,
			activityID).Scan(&maxParticipants)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrActivityNotFound
			}
			return fmt.Errorf("error locking activity: %w", err)
		}

		var userExists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`,
			userID).Scan(&userExists)
		if err != nil {
			return fmt.Errorf("error checking user: %w", err)
		}
		if !userExists {
			return apperrors.ErrUserNotFound
		}

		var alreadyRegistered bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM registrations WHERE user_id = $1 AND activity_id = $2)`,
			userID, activityID).Scan(&alreadyRegistered)
		if err != nil {
			return fmt.Errorf("error checking registration: %w", err)
		}
		if alreadyRegistered {
			return apperrors.ErrAlreadyRegistered
		}

		var count int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM registrations WHERE activity_id = $1`,
			activityID).Scan(&count)
		if err != nil {
			return fmt.Errorf("error counting registrations: %w", err)
		}
		if count >= maxParticipants {
			return apperrors.ErrActivityFull
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO registrations (user_id, activity_id)
			VALUES ($1, $2)
			RETURNING id, registered_at`,
			userID, activityID).Scan(&registration.ID, &registration.RegisteredAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "registrations_user_id_activity_id_key") {
				return apperrors.ErrAlreadyRegistered
			}
			if dberrors.IsForeignKeyViolation(err, "registrations_user_id_fkey") {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error inserting registration: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return registration, nil
}

// Unregister deletes the registration for the given pair, failing with
// ErrRegistrationNotFound if no live registration exists.
func (r *RegistrationRepository) Unregister(ctx context.Context, userID, activityID int64) error {
	query := squirrel.Delete("registrations").
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}

	return nil
}

// ListActivitiesForUser retrieves the activities a user is registered for,
// ordered by activity id ascending
func (r *RegistrationRepository) ListActivitiesForUser(ctx context.Context, userID int64) ([]models.Activity, error) {
	query := squirrel.Select(
		"a.id", "a.name", "a.description", "a.schedule", "a.max_participants", "a.created_by", "a.created_at",
	).
		From("activities a").
		Join("registrations r ON r.activity_id = a.id").
		Where("r.user_id = ?", userID).
		OrderBy("a.id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		err := rows.Scan(
			&activity.ID,
			&activity.Name,
			&activity.Description,
			&activity.Schedule,
			&activity.MaxParticipants,
			&activity.CreatedBy,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return activities, nil
}

// ListUsersForActivity retrieves the users registered for an activity,
// ordered by user id ascending
func (r *RegistrationRepository) ListUsersForActivity(ctx context.Context, activityID int64) ([]models.User, error) {
	query := squirrel.Select("u.id", "u.email", "u.name", "u.grade_level", "u.created_at").
		From("users u").
		Join("registrations r ON r.user_id = u.id").
		Where("r.activity_id = ?", activityID).
		OrderBy("u.id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.GradeLevel, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return users, nil
}

// CountForActivity retrieves the number of live registrations for an activity
func (r *RegistrationRepository) CountForActivity(ctx context.Context, activityID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("registrations").
		Where("activity_id = ?", activityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// CountsForActivityIDs retrieves registration counts for multiple activities
// in one query. Activities with no registrations are absent from the map.
func (r *RegistrationRepository) CountsForActivityIDs(ctx context.Context, activityIDs []int64) (map[int64]int, error) {
	if len(activityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("activity_id", "COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{"activity_id": activityIDs}).
		GroupBy("activity_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var activityID int64
		var count int
		if err := rows.Scan(&activityID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[activityID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return counts, nil
}

// IsRegistered checks if a user is registered for a specific activity
func (r *RegistrationRepository) IsRegistered(ctx context.Context, userID, activityID int64) (bool, error) {
	query := squirrel.Select("1").
		From("registrations").
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}
