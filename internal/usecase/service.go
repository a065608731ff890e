package usecase

import (
	"users-api/internal/data/repository"
	"users-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User UserService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		User: NewUserService(repo.User, config.Security.BcryptCost, log),
	}
}
