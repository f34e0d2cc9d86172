package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mergington/activities/internal/pkg/logger"
)

// schemaStatements define the three tables and their constraints. Constraint
// names are load-bearing: the repositories translate unique and foreign key
// violations into domain errors by constraint name.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		grade_level INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		schedule VARCHAR(255),
		max_participants INTEGER NOT NULL,
		created_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT activities_name_key UNIQUE (name),
		CONSTRAINT activities_max_participants_check CHECK (max_participants > 0),
		CONSTRAINT activities_created_by_fkey FOREIGN KEY (created_by)
			REFERENCES users (id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL,
		activity_id BIGINT NOT NULL,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT registrations_user_id_activity_id_key UNIQUE (user_id, activity_id),
		CONSTRAINT registrations_user_id_fkey FOREIGN KEY (user_id)
			REFERENCES users (id),
		CONSTRAINT registrations_activity_id_fkey FOREIGN KEY (activity_id)
			REFERENCES activities (id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS registrations_activity_id_idx ON registrations (activity_id)`,
	`CREATE INDEX IF NOT EXISTS registrations_user_id_idx ON registrations (user_id)`,
}

// EnsureSchema creates the tables, constraints and indexes if they are not
// already present. The statements are idempotent, so calling this on an
// already-initialized store is a no-op.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	err := db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug().Msg("Database schema ensured")
	return nil
}
