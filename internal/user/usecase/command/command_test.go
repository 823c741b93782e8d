package command

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bookbank/internal/user/domain"
	"github.com/tair/bookbank/pkg/auth"
)

// fakeUserRepository keeps users in memory keyed by id and username
type fakeUserRepository struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	byName map[string]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:   make(map[string]*domain.User),
		byName: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepository) Create(user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := *user
	f.byID[user.ID] = &stored
	f.byName[user.Username] = &stored
	return nil
}

func (f *fakeUserRepository) FindByID(id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByUsername(username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepository()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	// the stored password is a hash, never the plaintext
	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "hunter22"))
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Username: "alice", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, err := handler.Handle(RegisterUserCommand{Username: "alice", Email: "b@example.com", Password: "hunter23"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Nil(t, user)
}

func TestRegisterUser_Validation(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepository())

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{name: "missing username", cmd: RegisterUserCommand{Email: "a@example.com", Password: "hunter22"}},
		{name: "missing email", cmd: RegisterUserCommand{Username: "alice", Password: "hunter22"}},
		{name: "missing password", cmd: RegisterUserCommand{Username: "alice", Email: "a@example.com"}},
		{name: "short password", cmd: RegisterUserCommand{Username: "alice", Email: "a@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := handler.Handle(tt.cmd)
			assert.Error(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepository()
	registered, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, registered.ID, resp.User.ID)

	claims, err := auth.ValidateAccessToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLoginUser_UnknownUser(t *testing.T) {
	handler := NewLoginUserHandler(newFakeUserRepository())

	resp, err := handler.Handle(LoginUserCommand{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, resp)
}
