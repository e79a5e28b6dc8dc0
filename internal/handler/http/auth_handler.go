package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/auth"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AuthHandler struct {
	svc      auth.Service
	validate *validator.Validate
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.handleRegister)
	router.Post("/login", h.handleLogin)
}

// RegisterAuthenticatedRoutes wires the routes that require a live session.
func (h *AuthHandler) RegisterAuthenticatedRoutes(router chi.Router) {
	router.Post("/logout", h.handleLogout)
}

// RegisterManagerRoutes wires the staff listing under the manager group.
func (h *AuthHandler) RegisterManagerRoutes(router chi.Router) {
	router.Get("/staffs", h.handleListStaff)
}

func userResponse(user *auth.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var requestPayload RegisterRequest
	if !decodeStrict(w, r, &requestPayload) {
		return
	}
	if !validateStruct(w, h.validate, requestPayload) {
		return
	}

	user, err := h.svc.Register(r.Context(), requestPayload.FullName, requestPayload.Email, requestPayload.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user")

		clientMessage := "Failed to register"
		if errors.Is(err, auth.ErrEmailExists) {
			clientMessage = "Email already exists"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, userResponse(user))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var requestPayload LoginRequest
	if !decodeStrict(w, r, &requestPayload) {
		return
	}
	if !validateStruct(w, h.validate, requestPayload) {
		return
	}

	token, user, err := h.svc.Login(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		log.Warn().Err(err).Msg("Failed login attempt")

		clientMessage := "Failed to log in"
		if errors.Is(err, auth.ErrInvalidCredentials) {
			clientMessage = "Invalid email or password"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: userResponse(user)})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("Failed to log out")
		respondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) handleListStaff(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListStaff(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list staff")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list staff")
		return
	}

	responsePayload := make([]UserResponse, 0, len(users))
	for i := range users {
		responsePayload = append(responsePayload, userResponse(&users[i]))
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}
