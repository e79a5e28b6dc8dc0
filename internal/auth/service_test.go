package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tai160903/viet-coffee-server/internal/auth"
)

type mockUserRepository struct {
	createFunc     func(ctx context.Context, user *auth.User) error
	getByEmailFunc func(ctx context.Context, email string) (*auth.User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	listFunc       func(ctx context.Context) ([]auth.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *auth.User) error {
	return m.createFunc(ctx, user)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepository) List(ctx context.Context) ([]auth.User, error) {
	return m.listFunc(ctx)
}

// memoryTokenStore mirrors the redis allow-list in a map.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]uuid.UUID)}
}

func (s *memoryTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

var testSecret = []byte("test-secret")

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func demoUser(t *testing.T) *auth.User {
	return &auth.User{
		ID:           uuid.Must(uuid.NewV4()),
		FullName:     "Anh Nguyen",
		Email:        "anh.nguyen@example.com",
		PasswordHash: hashOf(t, "password123"),
		Role:         auth.RoleCustomer,
	}
}

func TestService_Register(t *testing.T) {
	var created *auth.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *auth.User) error {
			created = user
			return nil
		},
	}
	svc := auth.NewService(repo, newMemoryTokenStore(), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Anh Nguyen", "anh.nguyen@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, auth.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *auth.User) error {
			return auth.ErrEmailExists
		},
	}
	svc := auth.NewService(repo, newMemoryTokenStore(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Anh Nguyen", "anh.nguyen@example.com", "password123")
	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestService_Login(t *testing.T) {
	user := demoUser(t)
	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*auth.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, auth.ErrUserNotFound
		},
	}
	store := newMemoryTokenStore()
	svc := auth.NewService(repo, store, testSecret, time.Hour)

	token, loggedIn, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	live, err := store.Exists(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, live)
}

func TestService_Login_BadCredentials(t *testing.T) {
	user := demoUser(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown_email", email: "nobody@example.com", password: "password123"},
		{name: "wrong_password", email: user.Email, password: "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				getByEmailFunc: func(ctx context.Context, email string) (*auth.User, error) {
					if email == user.Email {
						return user, nil
					}
					return nil, auth.ErrUserNotFound
				},
			}
			svc := auth.NewService(repo, newMemoryTokenStore(), testSecret, time.Hour)

			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestService_AuthenticateAfterLoginAndLogout(t *testing.T) {
	user := demoUser(t)
	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}
	svc := auth.NewService(repo, newMemoryTokenStore(), testSecret, time.Hour)

	token, _, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	claims, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, auth.RoleCustomer, claims.Role)

	require.NoError(t, svc.Logout(context.Background(), token))

	// The JWT is still cryptographically valid, but the session is gone.
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestService_Authenticate_GarbageToken(t *testing.T) {
	svc := auth.NewService(&mockUserRepository{}, newMemoryTokenStore(), testSecret, time.Hour)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestService_Authenticate_WrongSecret(t *testing.T) {
	user := demoUser(t)
	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
	}
	store := newMemoryTokenStore()

	issuer := auth.NewService(repo, store, []byte("other-secret"), time.Hour)
	token, _, err := issuer.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	verifier := auth.NewService(repo, store, testSecret, time.Hour)
	_, err = verifier.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestUnauthenticatedBroadcast(t *testing.T) {
	b := auth.NewUnauthenticatedBroadcast()

	first := b.Subscribe()
	second := b.Subscribe()

	b.Notify()

	select {
	case <-first:
	default:
		t.Fatal("first subscriber did not receive the signal")
	}
	select {
	case <-second:
	default:
		t.Fatal("second subscriber did not receive the signal")
	}

	// A publisher never blocks on an undrained subscriber.
	b.Notify()
	b.Notify()
}
