package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// UserStore is the slice of the repository the user handler needs.
type UserStore interface {
	UpsertUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	SetUserRole(ctx context.Context, id string, role model.Role) error
	DeleteUser(ctx context.Context, id string) error
}

// AdminChecker answers the self-service "am I admin" question.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RoleInvalidator drops cached role lookups after a role mutation.
type RoleInvalidator interface {
	InvalidateRole(ctx context.Context, email string) error
}

// UserHandler handles principal administration.
type UserHandler struct {
	store  UserStore
	admin  AdminChecker
	roles  RoleInvalidator
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore, admin AdminChecker, roles RoleInvalidator, logger *slog.Logger) *UserHandler {
	return &UserHandler{store: store, admin: admin, roles: roles, logger: logger}
}

// Create handles POST /users. Called on first sign-in; if a record
// with the same email already exists the call is a no-op.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "email is required")
		return
	}

	user := &model.User{Email: email, Name: req.Name, Role: model.RoleDefault}
	if err := h.store.UpsertUser(r.Context(), user); err != nil {
		h.logger.Error("user upsert failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not store user")
		return
	}

	h.logger.Info("user registered", slog.String("email", email))
	writeJSON(w, http.StatusCreated, user)
}

// List handles GET /users (admin only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("user list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// IsAdmin handles GET /users/admin/{email}. Guarded by authentication
// plus an identity self-match; not a full authorization check.
func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	isAdmin, err := h.admin.IsAdmin(r.Context(), email)
	if err != nil {
		h.logger.Error("admin check failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not check role")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

// Promote handles PATCH /users/admin/{id} (admin only).
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.SetUserRole(r.Context(), id, model.RoleAdmin); err != nil {
		h.handleStoreError(w, err, "Could not update role")
		return
	}

	// Drop the cached role so the guard chain sees the new one.
	if user, err := h.store.GetUserByID(r.Context(), id); err == nil {
		_ = h.roles.InvalidateRole(r.Context(), user.Email)
	}

	h.logger.Info("user promoted", slog.String("user_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /users/{id} (admin only).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "Could not delete user")
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.handleStoreError(w, err, "Could not delete user")
		return
	}
	_ = h.roles.InvalidateRole(r.Context(), user.Email)

	h.logger.Info("user deleted", slog.String("user_id", id), slog.String("email", user.Email))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleStoreError maps repository errors to HTTP responses.
func (h *UserHandler) handleStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Invalid user ID")
	default:
		h.logger.Error("user store error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", fallback)
	}
}
