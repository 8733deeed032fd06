package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

type fakeUserRepo struct {
	users  map[string]models.User
	logins []models.LoginEvent
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user models.User) error {
	if _, ok := f.users[user.Username]; ok {
		return models.ErrUsernameTaken
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, username, email string, profile models.Profile) error {
	user, ok := f.users[username]
	if !ok {
		return models.ErrNotFound
	}
	user.Email = email
	user.Profile = profile
	user.UpdatedAt = time.Now()
	f.users[username] = user
	return nil
}

func (f *fakeUserRepo) ListUsernames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.users))
	for name := range f.users {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeUserRepo) RecordLogin(_ context.Context, event models.LoginEvent) error {
	f.logins = append(f.logins, event)
	return nil
}

func (f *fakeUserRepo) LoginHistory(_ context.Context, username string, limit int64) ([]models.LoginEvent, error) {
	out := make([]models.LoginEvent, 0)
	for i := len(f.logins) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.logins[i].Username == username {
			out = append(out, f.logins[i])
		}
	}
	return out, nil
}

func newTestAuth(repo *fakeUserRepo) *Service {
	return NewService(repo, []byte("test-secret"), time.Hour, nil)
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuth(repo)

	user, err := svc.Register(context.Background(), "asha", "asha@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
	assert.Equal(t, 1, user.Profile.HouseholdSize)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuth(repo)

	_, err := svc.Register(context.Background(), "asha", "a@example.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "asha", "b@example.com", "pw2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUsernameTaken))
}

func TestLogin_SuccessRecordsEvent(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuth(repo)

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "asha", "hunter22", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "asha", user.Username)

	username, err := UsernameFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "asha", username)

	require.Len(t, repo.logins, 1)
	event := repo.logins[0]
	assert.Equal(t, "asha", event.Username)
	assert.NotEmpty(t, event.SessionID)
	assert.Equal(t, "127.0.0.1", event.IPAddress)
	assert.Equal(t, event.LoginTime.Format(models.DateLayout), event.LoginDate)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuth(repo)

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha", "wrong", "", "")
	assert.True(t, errors.Is(err, models.ErrInvalidCredentials))
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuth(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), "nobody", "pw", "", "")
	assert.True(t, errors.Is(err, models.ErrInvalidCredentials))
}

func TestLoginHistory_NewestFirstCapped(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuth(repo)

	_, err := svc.Register(context.Background(), "asha", "asha@example.com", "pw")
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, _, err := svc.Login(context.Background(), "asha", "pw", "", "")
		require.NoError(t, err)
	}

	events, err := svc.LoginHistory(context.Background(), "asha")
	require.NoError(t, err)
	assert.Len(t, events, 10)
}
