package services

import (
	"context"
	"sort"
	"time"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/pkg/apperrors"
)

// In-memory repository fakes mirroring the contracts of the real
// repositories: lookups report absence as (nil, nil), mutations on missing
// rows return the matching sentinel.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) findByEmail(email string) *models.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.findByEmail(user.Email) != nil {
		return apperrors.ErrEmailAlreadyExists
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u := r.findByEmail(email)
	if u == nil {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	if u := r.findByEmail(email); u != nil {
		copied := *u
		return &copied, nil
	}
	user := &models.User{Email: email}
	if err := r.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id int64, email, name *string, gradeLevel *int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if email != nil {
		if existing := r.findByEmail(*email); existing != nil && existing.ID != id {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		u.Email = *email
	}
	if name != nil {
		u.Name = name
	}
	if gradeLevel != nil {
		u.GradeLevel = gradeLevel
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context, offset uint64, limit int) ([]models.User, int64, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.User
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *r.users[id])
	}
	return out, int64(len(r.users)), nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	return r.findByEmail(email) != nil, nil
}

type fakeActivityRepo struct {
	activities map[int64]*models.Activity
	nextID     int64
	regs       *fakeRegistrationRepo
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: map[int64]*models.Activity{}}
}

func (r *fakeActivityRepo) findByName(name string) *models.Activity {
	for _, a := range r.activities {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	if r.findByName(activity.Name) != nil {
		return apperrors.ErrActivityAlreadyExists
	}
	r.nextID++
	activity.ID = r.nextID
	activity.CreatedAt = time.Now()
	stored := *activity
	r.activities[activity.ID] = &stored
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id int64) (*models.Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeActivityRepo) GetByName(_ context.Context, name string) (*models.Activity, error) {
	a := r.findByName(name)
	if a == nil {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeActivityRepo) List(_ context.Context, offset uint64, limit int) ([]models.Activity, int64, error) {
	ids := make([]int64, 0, len(r.activities))
	for id := range r.activities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Activity
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *r.activities[id])
	}
	return out, int64(len(r.activities)), nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.activities[id]; !ok {
		return apperrors.ErrActivityNotFound
	}
	delete(r.activities, id)
	if r.regs != nil {
		r.regs.dropActivity(id)
	}
	return nil
}

type regKey struct {
	userID     int64
	activityID int64
}

type fakeRegistrationRepo struct {
	regs   map[regKey]*models.Registration
	nextID int64
	users  *fakeUserRepo
	acts   *fakeActivityRepo
}

func newFakeRegistrationRepo(users *fakeUserRepo, acts *fakeActivityRepo) *fakeRegistrationRepo {
	r := &fakeRegistrationRepo{
		regs:  map[regKey]*models.Registration{},
		users: users,
		acts:  acts,
	}
	acts.regs = r
	return r
}

func (r *fakeRegistrationRepo) dropActivity(activityID int64) {
	for key := range r.regs {
		if key.activityID == activityID {
			delete(r.regs, key)
		}
	}
}

func (r *fakeRegistrationRepo) Register(_ context.Context, userID, activityID int64) (*models.Registration, error) {
	activity, ok := r.acts.activities[activityID]
	if !ok {
		return nil, apperrors.ErrActivityNotFound
	}
	if _, ok := r.users.users[userID]; !ok {
		return nil, apperrors.ErrUserNotFound
	}
	key := regKey{userID: userID, activityID: activityID}
	if _, ok := r.regs[key]; ok {
		return nil, apperrors.ErrAlreadyRegistered
	}

	count := 0
	for k := range r.regs {
		if k.activityID == activityID {
			count++
		}
	}
	if count >= activity.MaxParticipants {
		return nil, apperrors.ErrActivityFull
	}

	r.nextID++
	reg := &models.Registration{
		ID:           r.nextID,
		UserID:       userID,
		ActivityID:   activityID,
		RegisteredAt: time.Now(),
	}
	r.regs[key] = reg
	copied := *reg
	return &copied, nil
}

func (r *fakeRegistrationRepo) Unregister(_ context.Context, userID, activityID int64) error {
	key := regKey{userID: userID, activityID: activityID}
	if _, ok := r.regs[key]; !ok {
		return apperrors.ErrRegistrationNotFound
	}
	delete(r.regs, key)
	return nil
}

func (r *fakeRegistrationRepo) ListActivitiesForUser(_ context.Context, userID int64) ([]models.Activity, error) {
	var ids []int64
	for key := range r.regs {
		if key.userID == userID {
			ids = append(ids, key.activityID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Activity, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.acts.activities[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListUsersForActivity(_ context.Context, activityID int64) ([]models.User, error) {
	var ids []int64
	for key := range r.regs {
		if key.activityID == activityID {
			ids = append(ids, key.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) CountForActivity(_ context.Context, activityID int64) (int, error) {
	count := 0
	for key := range r.regs {
		if key.activityID == activityID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) CountsForActivityIDs(ctx context.Context, activityIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(activityIDs))
	for _, id := range activityIDs {
		c, _ := r.CountForActivity(ctx, id)
		if c > 0 {
			counts[id] = c
		}
	}
	return counts, nil
}

func (r *fakeRegistrationRepo) IsRegistered(_ context.Context, userID, activityID int64) (bool, error) {
	_, ok := r.regs[regKey{userID: userID, activityID: activityID}]
	return ok, nil
}
