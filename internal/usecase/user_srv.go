package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"users-api/internal/data/entity"
	"users-api/internal/data/repository"
	"users-api/internal/dto/request"
	"users-api/internal/dto/response"
	"users-api/pkg/utils"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_srv.go -destination=mocks/mock_user_srv.go -package=mocks

type UserService interface {
	ListUsers(ctx context.Context) ([]response.UserResponse, error)
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) (*response.UserResponse, error)
}

type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, bcryptCost int, log *zap.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (us *userService) ListUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	us.log.Debug("Users retrieved", zap.Int("count", len(users)))
	return response.UsersToResponse(users), nil
}

func (us *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password, us.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	// 3. Save user
	user, err := us.userRepo.Create(ctx, &entity.NewUser{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.UserRole(req.Role),
		IsActive:     req.IsActive,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	us.log.Info("User created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	// 1. Required fields, then the rest of the schema
	if req.MissingRequired() {
		us.log.Warn("Update user missing required fields", zap.Int64("user_id", id))
		return nil, ErrMissingFields
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	changes := &entity.UserChanges{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.UserRole(req.Role),
		IsActive:  req.IsActive,
	}

	// 2. Only a supplied password replaces the stored hash
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password, us.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to process password: %w", err)
		}
		changes.PasswordHash = &hashedPassword
	}

	// 3. Save
	user, err := us.userRepo.Update(ctx, id, changes)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	us.log.Info("User updated",
		zap.Int64("user_id", user.ID),
		zap.Bool("password_changed", changes.PasswordHash != nil),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func parseUserID(userID string) (int64, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}
