package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of live session tokens. A verified JWT whose
// token is absent from the store has been revoked (logout or a 401 teardown).
type TokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func tokenKey(token string) string {
	return "session:" + token
}

func (s *redisTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, tokenKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("token store: failed to save session: %w", err)
	}

	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("token store: failed to check session: %w", err)
	}

	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("token store: failed to revoke session: %w", err)
	}

	return nil
}

// Claims carried inside a session JWT.
type Claims struct {
	UserID uuid.UUID
	Role   Role
}

func signToken(secret []byte, claims Claims, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID": claims.UserID.String(),
		"role":   string(claims.Role),
		"exp":    time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func parseToken(secret []byte, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenSignatureInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	rawID, _ := mapClaims["userID"].(string)
	userID, err := uuid.FromString(rawID)
	if err != nil {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	role, _ := mapClaims["role"].(string)

	return Claims{UserID: userID, Role: Role(role)}, nil
}
