package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type Service interface {
	Register(ctx context.Context, fullName, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	Logout(ctx context.Context, token string) error
	// Authenticate verifies a bearer token against both the JWT signature and
	// the live-session store, returning the session claims.
	Authenticate(ctx context.Context, token string) (Claims, error)
	ListStaff(ctx context.Context) ([]User, error)
}

type service struct {
	repo     Repository
	tokens   TokenStore
	secret   []byte
	tokenTTL time.Duration
}

func NewService(repo Repository, tokens TokenStore, secret []byte, tokenTTL time.Duration) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, fullName, email, password string) (*User, error) {
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("auth: failed to hash password")
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := &User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}

		log.Error().Err(err).Msg("auth: failed to create user")
		return nil, fmt.Errorf("auth: failed to create user: %w", err)
	}

	log.Info().Stringer("user_id", user.ID).Msg("auth: user registered")

	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}

		log.Error().Err(err).Msg("auth: failed to fetch user for login")
		return "", nil, fmt.Errorf("auth: failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("auth: password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := signToken(s.secret, Claims{UserID: user.ID, Role: user.Role}, s.tokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("auth: failed to sign session token")
		return "", nil, fmt.Errorf("auth: failed to sign session token: %w", err)
	}

	if err := s.tokens.Save(ctx, token, user.ID, s.tokenTTL); err != nil {
		log.Error().Err(err).Msg("auth: failed to store session token")
		return "", nil, fmt.Errorf("auth: failed to store session token: %w", err)
	}

	log.Info().Stringer("user_id", user.ID).Msg("auth: user logged in")

	return token, user, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		log.Error().Err(err).Msg("auth: failed to revoke session token")
		return fmt.Errorf("auth: failed to revoke session token: %w", err)
	}

	return nil
}

func (s *service) Authenticate(ctx context.Context, token string) (Claims, error) {
	claims, err := parseToken(s.secret, token)
	if err != nil {
		return Claims{}, ErrUnauthenticated
	}

	live, err := s.tokens.Exists(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("auth: failed to check session store")
		return Claims{}, fmt.Errorf("auth: failed to check session store: %w", err)
	}
	if !live {
		return Claims{}, ErrUnauthenticated
	}

	return claims, nil
}

func (s *service) ListStaff(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("auth: failed to list users")
		return nil, fmt.Errorf("auth: failed to list users: %w", err)
	}

	return users, nil
}
