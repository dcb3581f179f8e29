package database

import (
	"github.com/coopmed/coopmed/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	member       *service.MemberService
	compensation *service.CompensationService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	memberModel := repository.Member()
	compensationModel := repository.Compensation()
	cascadeModel := repository.Cascade()

	return &Service{
		member:       service.NewMember(db, memberModel, compensationModel, cascadeModel, logger),
		compensation: service.NewCompensation(db, compensationModel, memberModel, logger),
	}
}

// Member returns the member service.
func (s *Service) Member() *service.MemberService {
	return s.member
}

// Compensation returns the compensation service.
func (s *Service) Compensation() *service.CompensationService {
	return s.compensation
}
