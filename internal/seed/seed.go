package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/mergington/activities/internal/db"
	"github.com/mergington/activities/internal/pkg/apperrors"
	"github.com/mergington/activities/internal/pkg/validation"
)

// seedActivity is one entry of the fixed seed set carried over from the
// school's original in-memory activity list.
type seedActivity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

var defaultActivities = []seedActivity{
	{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		Name:            "Gym Class",
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		Name:            "Soccer Team",
		Description:     "Join the school soccer team and compete in matches",
		Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 22,
		Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		Name:            "Basketball Team",
		Description:     "Practice and play basketball with the school team",
		Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 15,
		Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	{
		Name:            "Art Club",
		Description:     "Explore your creativity through painting and drawing",
		Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 15,
		Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		Name:            "Drama Club",
		Description:     "Act, direct, and produce plays and performances",
		Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		Name:            "Math Club",
		Description:     "Solve challenging problems and participate in math competitions",
		Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 10,
		Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		Name:            "Debate Team",
		Description:     "Develop public speaking and argumentation skills",
		Schedule:        "Fridays, 4:00 PM - 5:30 PM",
		MaxParticipants: 12,
		Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

// RunOnce populates an empty store with the default activity catalog and its
// participants. The whole step runs in one transaction gated on both the
// users and activities tables being empty; a store with any existing rows is
// left untouched, which makes the step safe to invoke on every process start.
// Any failure rolls the seed back wholesale and must abort startup.
func RunOnce(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var userCount, activityCount int64
		err := tx.QueryRow(ctx, `
			SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM activities)`).
			Scan(&userCount, &activityCount)
		if err != nil {
			return fmt.Errorf("failed to check store emptiness: %w", err)
		}

		if userCount != 0 || activityCount != 0 {
			lgr.Debug().
				Int64("users", userCount).
				Int64("activities", activityCount).
				Msg("Store already populated, skipping seed")
			return nil
		}

		lgr.Info().Int("activities", len(defaultActivities)).Msg("Seeding empty store with default activities...")

		for _, seed := range defaultActivities {
			var activityID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO activities (name, description, schedule, max_participants)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				seed.Name, seed.Description, seed.Schedule, seed.MaxParticipants).Scan(&activityID)
			if err != nil {
				return apperrors.NewCustomError(apperrors.ErrSchemaViolation,
					fmt.Sprintf("failed to seed activity %q: %v", seed.Name, err))
			}

			for _, participant := range seed.Participants {
				email := validation.NormalizeEmail(participant)

				var userID int64
				err := tx.QueryRow(ctx, `
					INSERT INTO users (email)
					VALUES ($1)
					ON CONFLICT ON CONSTRAINT users_email_key DO NOTHING
					RETURNING id`,
					email).Scan(&userID)
				if err != nil {
					// Participant already seeded through another activity
					if err == pgx.ErrNoRows {
						if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID); err != nil {
							return apperrors.NewCustomError(apperrors.ErrSchemaViolation,
								fmt.Sprintf("failed to resolve seeded user %q: %v", email, err))
						}
					} else {
						return apperrors.NewCustomError(apperrors.ErrSchemaViolation,
							fmt.Sprintf("failed to seed user %q: %v", email, err))
					}
				}

				_, err = tx.Exec(ctx, `
					INSERT INTO registrations (user_id, activity_id)
					VALUES ($1, $2)`,
					userID, activityID)
				if err != nil {
					return apperrors.NewCustomError(apperrors.ErrSchemaViolation,
						fmt.Sprintf("failed to seed registration %q -> %q: %v", email, seed.Name, err))
				}
			}
		}

		lgr.Info().Msg("Seed completed")
		return nil
	})
}
