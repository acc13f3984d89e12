package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/core/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// MockMethodologyConfigRepository is a mock implementation of ports.MethodologyConfigRepository
type MockMethodologyConfigRepository struct {
	mock.Mock
}

func (m *MockMethodologyConfigRepository) SaveMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockMethodologyConfigRepository) FindMethodologyConfigByID(ctx context.Context, userID, configID string) (*domain.MethodologyConfig, error) {
	args := m.Called(ctx, userID, configID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MethodologyConfig), args.Error(1)
}

func (m *MockMethodologyConfigRepository) ListMethodologyConfigsByUser(ctx context.Context, userID string) ([]domain.MethodologyConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MethodologyConfig), args.Error(1)
}

func (m *MockMethodologyConfigRepository) UpdateMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockMethodologyConfigRepository) DeleteMethodologyConfig(ctx context.Context, userID, configID string) error {
	args := m.Called(ctx, userID, configID)
	return args.Error(0)
}

// MethodologyServiceTestSuite defines the test suite for MethodologyService
type MethodologyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMethodologyConfigRepository
	service  portssvc.MethodologySvcFacade
	ctx      context.Context
	userID   string
}

func (s *MethodologyServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockMethodologyConfigRepository)
	s.service = services.NewMethodologyService(s.mockRepo)
	s.ctx = context.Background()
	s.userID = "user-123"
}

func TestMethodologyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MethodologyServiceTestSuite))
}

func (s *MethodologyServiceTestSuite) TestCreateMethodologyConfig_DefaultRate() {
	req := dto.CreateMethodologyConfigRequest{
		Name:          "My ruleset",
		NisabBasis:    "gold",
		JewelryExempt: true,
	}

	s.mockRepo.On("SaveMethodologyConfig", s.ctx, mock.MatchedBy(func(c domain.MethodologyConfig) bool {
		return c.UserID == s.userID &&
			c.NisabBasis == domain.NisabBasisGold &&
			c.JewelryExempt &&
			c.ZakatRate.Equal(domain.StandardZakatRate)
	})).Return(nil).Once()

	config, err := s.service.CreateMethodologyConfig(s.ctx, s.userID, req)

	s.Require().NoError(err)
	s.NotEmpty(config.ConfigID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *MethodologyServiceTestSuite) TestCreateMethodologyConfig_ExplicitRate() {
	rate := decimal.NewFromFloat(0.03)
	req := dto.CreateMethodologyConfigRequest{
		Name:       "Three percent",
		NisabBasis: "silver",
		ZakatRate:  &rate,
	}

	s.mockRepo.On("SaveMethodologyConfig", s.ctx, mock.MatchedBy(func(c domain.MethodologyConfig) bool {
		return c.ZakatRate.Equal(rate)
	})).Return(nil).Once()

	config, err := s.service.CreateMethodologyConfig(s.ctx, s.userID, req)

	s.Require().NoError(err)
	s.True(config.ZakatRate.Equal(rate))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *MethodologyServiceTestSuite) TestUpdateMethodologyConfig_PartialPatch() {
	existing := &domain.MethodologyConfig{
		ConfigID:   "config-1",
		UserID:     s.userID,
		Name:       "Old name",
		NisabBasis: domain.NisabBasisGold,
		ZakatRate:  domain.StandardZakatRate,
	}
	s.mockRepo.On("FindMethodologyConfigByID", s.ctx, s.userID, "config-1").Return(existing, nil).Once()

	newName := "New name"
	s.mockRepo.On("UpdateMethodologyConfig", s.ctx, mock.MatchedBy(func(c domain.MethodologyConfig) bool {
		return c.Name == "New name" &&
			c.NisabBasis == domain.NisabBasisGold &&
			c.LastUpdatedBy == s.userID
	})).Return(nil).Once()

	config, err := s.service.UpdateMethodologyConfig(s.ctx, s.userID, "config-1", dto.UpdateMethodologyConfigRequest{Name: &newName})

	s.Require().NoError(err)
	s.Equal("New name", config.Name)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *MethodologyServiceTestSuite) TestUpdateMethodologyConfig_NotFound() {
	s.mockRepo.On("FindMethodologyConfigByID", s.ctx, s.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.UpdateMethodologyConfig(s.ctx, s.userID, "missing", dto.UpdateMethodologyConfigRequest{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *MethodologyServiceTestSuite) TestListMethodologyConfigs_NilBecomesEmptySlice() {
	s.mockRepo.On("ListMethodologyConfigsByUser", s.ctx, s.userID).Return(nil, nil).Once()

	configs, err := s.service.ListMethodologyConfigs(s.ctx, s.userID)

	s.Require().NoError(err)
	s.NotNil(configs)
	s.Empty(configs)
}

func (s *MethodologyServiceTestSuite) TestDeleteMethodologyConfig() {
	s.mockRepo.On("DeleteMethodologyConfig", s.ctx, s.userID, "config-1").Return(nil).Once()

	err := s.service.DeleteMethodologyConfig(s.ctx, s.userID, "config-1")

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}
