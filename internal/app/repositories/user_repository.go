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

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated id and timestamp.
// Callers must pass an already-normalized email.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, grade_level)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		user.Email, user.Name, user.GradeLevel).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID. A missing row is reported as (nil, nil).
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, email, name, grade_level, created_at
		FROM users
		WHERE id = $1`,
		id))
}

// GetByEmail retrieves a user by normalized email. A missing row is reported
// as (nil, nil).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, email, name, grade_level, created_at
		FROM users
		WHERE email = $1`,
		email))
}

// GetOrCreateByEmail returns the user with the given normalized email,
// creating a bare record if none exists. Safe against concurrent creation:
// the insert ignores a duplicate and the follow-up read observes the winner.
func (r *UserRepository) GetOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = r.scanOne(r.db.QueryRow(ctx, `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT ON CONSTRAINT users_email_key DO NOTHING
		RETURNING id, email, name, grade_level, created_at`,
		email))
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// Lost the race; the row exists now
	user, err = r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q disappeared during get-or-create", email)
	}
	return user, nil
}

// Update applies a partial update; nil fields are left unchanged. Returns the
// updated user, apperrors.ErrUserNotFound if the id is absent, or
// apperrors.ErrEmailAlreadyExists if the new email collides with another user.
func (r *UserRepository) Update(ctx context.Context, id int64, email, name *string, gradeLevel *int) (*models.User, error) {
	builder := squirrel.Update("users").
		Where("id = ?", id).
		Suffix("RETURNING id, email, name, grade_level, created_at").
		PlaceholderFormat(squirrel.Dollar)

	changed := false
	if email != nil {
		builder = builder.Set("email", *email)
		changed = true
	}
	if name != nil {
		builder = builder.Set("name", *name)
		changed = true
	}
	if gradeLevel != nil {
		builder = builder.Set("grade_level", *gradeLevel)
		changed = true
	}

	if !changed {
		// Nothing to update; still surface NotFound for absent ids
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.ErrUserNotFound
		}
		return user, nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := r.scanOne(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return user, nil
}

// List retrieves users ordered by id ascending, with the total row count.
func (r *UserRepository) List(ctx context.Context, offset uint64, limit int) ([]models.User, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, name, grade_level, created_at, COUNT(*) OVER() AS total_count
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.GradeLevel, &user.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading rows: %w", err)
	}

	return users, total, nil
}

// EmailExists checks if a normalized email is already taken
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.GradeLevel, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
