package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tai160903/viet-coffee-server/internal/auth"
	coffeeHttp "github.com/tai160903/viet-coffee-server/internal/handler/http"
	"github.com/tai160903/viet-coffee-server/internal/transport"
)

type mockAuthService struct {
	authenticateFunc func(ctx context.Context, token string) (auth.Claims, error)
}

func (m *mockAuthService) Register(ctx context.Context, fullName, email, password string) (*auth.User, error) {
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *auth.User, error) {
	return "", nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (auth.Claims, error) {
	return m.authenticateFunc(ctx, token)
}

func (m *mockAuthService) ListStaff(ctx context.Context) ([]auth.User, error) {
	return nil, nil
}

func sessionRouter(svc auth.Service, broadcast *auth.UnauthenticatedBroadcast) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(transport.RequireSession(svc, broadcast))
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			claims, _ := coffeeHttp.ClaimsFromContext(r.Context())
			w.Write([]byte(claims.UserID.String()))
		})
		r.Group(func(r chi.Router) {
			r.Use(transport.RequireManager)
			r.Get("/manager-only", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("OK"))
			})
		})
	})
	return router
}

func TestRequireSession(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	svc := &mockAuthService{
		authenticateFunc: func(ctx context.Context, token string) (auth.Claims, error) {
			if token == "good-token" {
				return auth.Claims{UserID: userID, Role: auth.RoleCustomer}, nil
			}
			return auth.Claims{}, auth.ErrUnauthenticated
		},
	}

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
		wantSignal bool
	}{
		{
			name:       "valid_token",
			authHeader: "Bearer good-token",
			wantCode:   http.StatusOK,
		},
		{
			name:       "missing_header",
			authHeader: "",
			wantCode:   http.StatusUnauthorized,
			wantSignal: true,
		},
		{
			name:       "malformed_header",
			authHeader: "good-token",
			wantCode:   http.StatusUnauthorized,
			wantSignal: true,
		},
		{
			name:       "rejected_token",
			authHeader: "Bearer stale-token",
			wantCode:   http.StatusUnauthorized,
			wantSignal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broadcast := auth.NewUnauthenticatedBroadcast()
			signal := broadcast.Subscribe()
			router := sessionRouter(svc, broadcast)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)
			require.Equal(t, tt.wantCode, rr.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, userID.String(), rr.Body.String())
			}

			gotSignal := false
			select {
			case <-signal:
				gotSignal = true
			default:
			}
			assert.Equal(t, tt.wantSignal, gotSignal)
		})
	}
}

func TestRequireManager(t *testing.T) {
	tests := []struct {
		name     string
		role     auth.Role
		wantCode int
	}{
		{name: "manager_allowed", role: auth.RoleManager, wantCode: http.StatusOK},
		{name: "customer_forbidden", role: auth.RoleCustomer, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				authenticateFunc: func(ctx context.Context, token string) (auth.Claims, error) {
					return auth.Claims{UserID: uuid.Must(uuid.NewV4()), Role: tt.role}, nil
				},
			}
			router := sessionRouter(svc, auth.NewUnauthenticatedBroadcast())

			req := httptest.NewRequest(http.MethodGet, "/manager-only", nil)
			req.Header.Set("Authorization", "Bearer any-token")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}
