package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/pkg/apperrors"
)

func newRegistrationService(users *fakeUserRepo, acts *fakeActivityRepo, regs *fakeRegistrationRepo) RegistrationService {
	return NewRegistrationService(regs, users, acts, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	student := &models.User{Email: "james@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), student))
	activity := &models.Activity{Name: "Math Club", MaxParticipants: 10}
	require.NoError(t, acts.Create(context.Background(), activity))

	resp, err := svc.Register(context.Background(), student.ID, activity.ID)
	require.NoError(t, err)

	assert.Equal(t, student.ID, resp.UserID)
	assert.Equal(t, activity.ID, resp.ActivityID)
	assert.NotZero(t, resp.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	student := &models.User{Email: "ella@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), student))
	activity := &models.Activity{Name: "Drama Club", MaxParticipants: 20}
	require.NoError(t, acts.Create(context.Background(), activity))

	_, err := svc.Register(context.Background(), student.ID, activity.ID)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), student.ID, activity.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
}

func TestRegisterEnforcesCapacity(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	activity := &models.Activity{Name: "Tiny Club", MaxParticipants: 2}
	require.NoError(t, acts.Create(context.Background(), activity))

	for i := 0; i < 2; i++ {
		student := &models.User{Email: fmt.Sprintf("student%d@mergington.edu", i)}
		require.NoError(t, users.Create(context.Background(), student))
		_, err := svc.Register(context.Background(), student.ID, activity.ID)
		require.NoError(t, err)
	}

	extra := &models.User{Email: "late@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), extra))

	_, err := svc.Register(context.Background(), extra.ID, activity.ID)
	assert.ErrorIs(t, err, apperrors.ErrActivityFull)
}

func TestRegisterUnknownReferences(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	student := &models.User{Email: "amelia@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), student))
	activity := &models.Activity{Name: "Art Club", MaxParticipants: 15}
	require.NoError(t, acts.Create(context.Background(), activity))

	_, err := svc.Register(context.Background(), student.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)

	_, err = svc.Register(context.Background(), 999, activity.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUnregister(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	student := &models.User{Email: "harper@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), student))
	activity := &models.Activity{Name: "Art Club", MaxParticipants: 15}
	require.NoError(t, acts.Create(context.Background(), activity))

	_, err := svc.Register(context.Background(), student.ID, activity.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unregister(context.Background(), student.ID, activity.ID))

	// The spot opens up again.
	_, err = svc.Register(context.Background(), student.ID, activity.ID)
	require.NoError(t, err)
}

func TestUnregisterMissingRegistration(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	err := svc.Unregister(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}

func TestSignUpCreatesUserOnFirstContact(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	activity := &models.Activity{Name: "Chess Club", MaxParticipants: 12}
	require.NoError(t, acts.Create(context.Background(), activity))

	resp, err := svc.SignUp(context.Background(), activity.ID, " NewStudent@Mergington.EDU ")
	require.NoError(t, err)

	user, lookupErr := users.GetByEmail(context.Background(), "newstudent@mergington.edu")
	require.NoError(t, lookupErr)
	require.NotNil(t, user, "sign-up must create the user record")
	assert.Equal(t, user.ID, resp.UserID)
}

func TestSignUpReusesExistingUser(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	student := &models.User{Email: "michael@mergington.edu"}
	require.NoError(t, users.Create(context.Background(), student))

	chess := &models.Activity{Name: "Chess Club", MaxParticipants: 12}
	math := &models.Activity{Name: "Math Club", MaxParticipants: 10}
	require.NoError(t, acts.Create(context.Background(), chess))
	require.NoError(t, acts.Create(context.Background(), math))

	first, err := svc.SignUp(context.Background(), chess.ID, "michael@mergington.edu")
	require.NoError(t, err)
	second, err := svc.SignUp(context.Background(), math.ID, "MICHAEL@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t, student.ID, first.UserID)
	assert.Equal(t, student.ID, second.UserID, "case variants resolve to the same user")
}

func TestSignUpUnknownActivityLeavesNoUserBehind(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	_, err := svc.SignUp(context.Background(), 404, "ghost@mergington.edu")
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)

	user, lookupErr := users.GetByEmail(context.Background(), "ghost@mergington.edu")
	require.NoError(t, lookupErr)
	assert.Nil(t, user, "no user row may be created for a failed sign-up")
}

func TestSignUpInvalidEmail(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	_, err := svc.SignUp(context.Background(), 1, "not an email")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
}

func TestWithdraw(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	activity := &models.Activity{Name: "Debate Team", MaxParticipants: 12}
	require.NoError(t, acts.Create(context.Background(), activity))

	_, err := svc.SignUp(context.Background(), activity.ID, "charlotte@mergington.edu")
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(context.Background(), activity.ID, "Charlotte@Mergington.edu"))

	count, err := regs.CountForActivity(context.Background(), activity.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithdrawUnknownEmail(t *testing.T) {
	users, acts, regs := newTestRepos()
	svc := newRegistrationService(users, acts, regs)

	activity := &models.Activity{Name: "Debate Team", MaxParticipants: 12}
	require.NoError(t, acts.Create(context.Background(), activity))

	err := svc.Withdraw(context.Background(), activity.ID, "stranger@mergington.edu")
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}
