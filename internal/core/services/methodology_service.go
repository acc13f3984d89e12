package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// methodologyService manages user-defined CUSTOM methodology configs.
type methodologyService struct {
	methodologyRepo portsrepo.MethodologyConfigRepository
}

// NewMethodologyService creates a new methodology config service.
func NewMethodologyService(methodologyRepo portsrepo.MethodologyConfigRepository) portssvc.MethodologySvcFacade {
	return &methodologyService{methodologyRepo: methodologyRepo}
}

var _ portssvc.MethodologySvcFacade = (*methodologyService)(nil)

// CreateMethodologyConfig persists a new config for the user.
func (s *methodologyService) CreateMethodologyConfig(ctx context.Context, userID string, req dto.CreateMethodologyConfigRequest) (*domain.MethodologyConfig, error) {
	now := time.Now()

	config := domain.MethodologyConfig{
		ConfigID:      uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		NisabBasis:    domain.NisabBasis(req.NisabBasis),
		ZakatRate:     domain.StandardZakatRate,
		JewelryExempt: req.JewelryExempt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.ZakatRate != nil {
		config.ZakatRate = *req.ZakatRate
	}

	if err := s.methodologyRepo.SaveMethodologyConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to create methodology config: %w", err)
	}
	return &config, nil
}

// GetMethodologyConfig retrieves a config owned by the user.
func (s *methodologyService) GetMethodologyConfig(ctx context.Context, userID, configID string) (*domain.MethodologyConfig, error) {
	config, err := s.methodologyRepo.FindMethodologyConfigByID(ctx, userID, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to get methodology config: %w", err)
	}
	return config, nil
}

// ListMethodologyConfigs retrieves all configs owned by the user.
func (s *methodologyService) ListMethodologyConfigs(ctx context.Context, userID string) ([]domain.MethodologyConfig, error) {
	configs, err := s.methodologyRepo.ListMethodologyConfigsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list methodology configs: %w", err)
	}
	if configs == nil {
		return []domain.MethodologyConfig{}, nil
	}
	return configs, nil
}

// UpdateMethodologyConfig applies changes to a config owned by the user.
func (s *methodologyService) UpdateMethodologyConfig(ctx context.Context, userID, configID string, req dto.UpdateMethodologyConfigRequest) (*domain.MethodologyConfig, error) {
	config, err := s.methodologyRepo.FindMethodologyConfigByID(ctx, userID, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to load methodology config for update: %w", err)
	}

	if req.Name != nil {
		config.Name = *req.Name
	}
	if req.NisabBasis != nil {
		config.NisabBasis = domain.NisabBasis(*req.NisabBasis)
	}
	if req.ZakatRate != nil {
		config.ZakatRate = *req.ZakatRate
	}
	if req.JewelryExempt != nil {
		config.JewelryExempt = *req.JewelryExempt
	}
	config.LastUpdatedAt = time.Now()
	config.LastUpdatedBy = userID

	if err := s.methodologyRepo.UpdateMethodologyConfig(ctx, *config); err != nil {
		return nil, fmt.Errorf("failed to update methodology config: %w", err)
	}
	return config, nil
}

// DeleteMethodologyConfig removes a config owned by the user.
func (s *methodologyService) DeleteMethodologyConfig(ctx context.Context, userID, configID string) error {
	if err := s.methodologyRepo.DeleteMethodologyConfig(ctx, userID, configID); err != nil {
		return fmt.Errorf("failed to delete methodology config: %w", err)
	}
	return nil
}
