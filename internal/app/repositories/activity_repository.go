package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/dberrors"
)

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity and fills in the generated id and timestamp
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	query := squirrel.Insert("activities").
		Columns("name", "description", "schedule", "max_participants", "created_by").
		Values(activity.Name, activity.Description, activity.Schedule, activity.MaxParticipants, activity.CreatedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "activities_name_key") {
			return apperrors.ErrActivityAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err, "activities_created_by_fkey") {
			return apperrors.ErrUserNotFound
		}
		if dberrors.IsCheckViolation(err, "activities_max_participants_check") {
			return apperrors.ErrInvalidCapacity
		}
		return fmt.Errorf("error creating activity: %w", err)
	}

	return nil
}

// GetByID retrieves an activity by ID. A missing row is reported as (nil, nil).
func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves an activity by its unique name. A missing row is
// reported as (nil, nil).
func (r *ActivityRepository) GetByName(ctx context.Context, name string) (*models.Activity, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *ActivityRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Activity, error) {
	query := squirrel.Select("id", "name", "description", "schedule", "max_participants", "created_by", "created_at").
		From("activities").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	activity := &models.Activity{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&activity.ID,
		&activity.Name,
		&activity.Description,
		&activity.Schedule,
		&activity.MaxParticipants,
		&activity.CreatedBy,
		&activity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return activity, nil
}

// List retrieves activities ordered by id ascending, with the total row count.
// Registration counts are derived separately by the registration repository.
func (r *ActivityRepository) List(ctx context.Context, offset uint64, limit int) ([]models.Activity, int64, error) {
	query := squirrel.Select(
		"id", "name", "description", "schedule", "max_participants", "created_by", "created_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("activities").
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	var total int64
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
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading rows: %w", err)
	}

	return activities, total, nil
}

// Delete removes an activity. Its registrations are removed by the
// ON DELETE CASCADE on registrations.activity_id.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("activities").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}

	return nil
}
