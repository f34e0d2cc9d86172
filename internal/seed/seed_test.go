package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mergington/activities/internal/pkg/validation"
)

// The seed catalog is fixed data; these tests pin down the invariants the
// rest of the system assumes about it.

func TestDefaultActivitiesCatalog(t *testing.T) {
	assert.Len(t, defaultActivities, 9)

	names := make(map[string]bool, len(defaultActivities))
	for _, activity := range defaultActivities {
		assert.True(t, validation.IsValidActivityName(activity.Name),
			"activity name %q must be valid", activity.Name)
		assert.False(t, names[activity.Name], "duplicate activity name %q", activity.Name)
		names[activity.Name] = true

		assert.Positive(t, activity.MaxParticipants,
			"activity %q must have positive capacity", activity.Name)
		assert.LessOrEqual(t, len(activity.Participants), activity.MaxParticipants,
			"activity %q seeds more participants than its capacity", activity.Name)
		assert.NotEmpty(t, activity.Description)
		assert.NotEmpty(t, activity.Schedule)
	}
}

func TestDefaultActivitiesParticipants(t *testing.T) {
	for _, activity := range defaultActivities {
		assert.Len(t, activity.Participants, 2,
			"activity %q should seed exactly two participants", activity.Name)
		for _, email := range activity.Participants {
			assert.True(t, validation.IsValidEmail(email),
				"participant email %q in %q must be valid", email, activity.Name)
			assert.Equal(t, validation.NormalizeEmail(email), email,
				"seed emails must already be normalized")
		}
	}
}

func TestDefaultActivitiesKnownCapacities(t *testing.T) {
	capacities := map[string]int{}
	for _, activity := range defaultActivities {
		capacities[activity.Name] = activity.MaxParticipants
	}

	assert.Equal(t, 12, capacities["Chess Club"])
	assert.Equal(t, 20, capacities["Programming Class"])
	assert.Equal(t, 30, capacities["Gym Class"])
	assert.Equal(t, 10, capacities["Math Club"])
}
