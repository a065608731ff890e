package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"users-api/internal/dto/request"
	"users-api/internal/dto/response"
	"users-api/internal/usecase"
	"users-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserIDParam is the chi URL parameter holding the user id
const UserIDParam = "user_id"

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		return err
	}

	utils.ResponseOK(w, users)
	return nil
}

// GetUser handles GET /users/{user_id}. The single row is wrapped in an array.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, UserIDParam))
	if err != nil {
		return err
	}

	utils.ResponseOK(w, []response.UserResponse{*user})
	return nil
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		return err
	}

	utils.ResponseOK(w, user)
	return nil
}

// UpdateUser handles PUT /users/{user_id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) error {
	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, UserIDParam), &req)
	if err != nil {
		return err
	}

	utils.ResponseOK(w, user)
	return nil
}

// DeleteUser handles DELETE /users/{user_id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.service.DeleteUser(r.Context(), chi.URLParam(r, UserIDParam))
	if err != nil {
		return err
	}

	utils.ResponseOK(w, response.DeleteUserResponse{
		Message: "User deleted successfully",
		User:    *user,
	})
	return nil
}
