package service

import (
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	files        port.FileStore
	carriers     domain.CarrierDirectory
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	files port.FileStore, carriers domain.CarrierDirectory, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		files:        files,
		carriers:     carriers,
		logger:       logger,
	}, nil
}
