package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byEmail map[string]user.User
	err     error
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]user.User{}} }

func (m *memUsers) Create(_ context.Context, u user.User) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return user.User{}, user.ErrEmailTaken
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func newTestService(users user.Repository) *Service {
	s := NewService(users)
	s.cost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	s := newTestService(users)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Email: " Jane@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "jane", u.FullName)
	assert.Empty(t, u.PasswordHash)
	assert.NotEmpty(t, users.byEmail["jane@example.com"].PasswordHash)

	got, err := s.Login(ctx, LoginInput{Email: "JANE@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(newMemUsers())
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Register(ctx, RegisterInput{Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_DuplicateAndStoreErrors(t *testing.T) {
	users := newMemUsers()
	s := newTestService(users)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Email: "a@b.co", Password: "long-enough", FullName: "A B"})
	require.NoError(t, err)
	_, err = s.Register(ctx, RegisterInput{Email: "a@b.co", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	users.err = errors.New("connection reset")
	_, err = s.Register(ctx, RegisterInput{Email: "c@d.co", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRegister_RejectsOverlongPasswordAndDisplayNameEmail(t *testing.T) {
	s := newTestService(newMemUsers())
	ctx := context.Background()

	long := make([]byte, maxPasswordBytes+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err := s.Register(ctx, RegisterInput{Email: "a@b.co", Password: string(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Register(ctx, RegisterInput{Email: "Jane <jane@example.com>", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_UnknownEmailStillHashes(t *testing.T) {
	s := newTestService(newMemUsers())

	_, err := s.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotEmpty(t, s.dummyHash)
}
