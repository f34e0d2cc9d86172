package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError("23505", "users_email_key")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgError("23505", ""))))
	assert.False(t, IsUniqueViolation(pgError("23503", "registrations_user_id_fkey")))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := pgError("23505", "activities_name_key")

	assert.True(t, IsDuplicateConstraintError(err, "activities_name_key"))
	assert.False(t, IsDuplicateConstraintError(err, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(pgError("23503", "activities_name_key"), "activities_name_key"))
}

func TestIsCheckViolation(t *testing.T) {
	err := pgError("23514", "activities_max_participants_check")

	assert.True(t, IsCheckViolation(err, "activities_max_participants_check"))
	assert.False(t, IsCheckViolation(err, "other_check"))
	assert.False(t, IsCheckViolation(pgError("23505", "activities_max_participants_check"), "activities_max_participants_check"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := pgError("23503", "registrations_activity_id_fkey")

	assert.True(t, IsForeignKeyViolation(err, "registrations_activity_id_fkey"))
	assert.True(t, IsForeignKeyViolation(err, ""), "empty constraint matches any FK violation")
	assert.False(t, IsForeignKeyViolation(err, "registrations_user_id_fkey"))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "x"), ""))
	assert.False(t, IsForeignKeyViolation(errors.New("plain error"), ""))
}
