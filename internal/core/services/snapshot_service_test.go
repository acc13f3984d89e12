package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/core/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// MockSnapshotRepository is a mock implementation of ports.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshotWithValues(ctx context.Context, snapshot domain.CalculationSnapshot, values []domain.SnapshotAssetValue) error {
	args := m.Called(ctx, snapshot, values)
	return args.Error(0)
}

func (m *MockSnapshotRepository) FindSnapshotByID(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, error) {
	args := m.Called(ctx, userID, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshotsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CalculationSnapshot, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var snapshots []domain.CalculationSnapshot
	if args.Get(0) != nil {
		snapshots = args.Get(0).([]domain.CalculationSnapshot)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return snapshots, token, args.Error(2)
}

func (m *MockSnapshotRepository) FindSnapshotAssetValues(ctx context.Context, userID, snapshotID string) ([]domain.SnapshotAssetValue, error) {
	args := m.Called(ctx, userID, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SnapshotAssetValue), args.Error(1)
}

func (m *MockSnapshotRepository) UpdateSnapshotLockState(ctx context.Context, userID, snapshotID string, isLocked bool, unlockReason *string, unlockedAt *time.Time, updaterUserID string) error {
	args := m.Called(ctx, userID, snapshotID, isLocked, unlockReason, unlockedAt, updaterUserID)
	return args.Error(0)
}

func (m *MockSnapshotRepository) DeleteSnapshot(ctx context.Context, userID, snapshotID string) error {
	args := m.Called(ctx, userID, snapshotID)
	return args.Error(0)
}

// MockZakatService is a mock implementation of ports.ZakatSvcFacade
type MockZakatService struct {
	mock.Mock
}

func (m *MockZakatService) CalculateNisab(ctx context.Context, methodology domain.Methodology, currency string) (*domain.NisabInfo, error) {
	args := m.Called(ctx, methodology, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NisabInfo), args.Error(1)
}

func (m *MockZakatService) CalculateZakat(ctx context.Context, userID string, req dto.CalculateZakatRequest) (*domain.ZakatCalculationResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ZakatCalculationResult), args.Error(1)
}

// SnapshotServiceTestSuite defines the test suite for SnapshotService
type SnapshotServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo    *MockSnapshotRepository
	mockAssetRepo       *MockAssetRepository
	mockMethodologyRepo *MockMethodologyConfigRepository
	mockZakatSvc        *MockZakatService
	service             portssvc.SnapshotSvcFacade
	ctx                 context.Context
	userID              string
}

func (s *SnapshotServiceTestSuite) SetupTest() {
	s.mockSnapshotRepo = new(MockSnapshotRepository)
	s.mockAssetRepo = new(MockAssetRepository)
	s.mockMethodologyRepo = new(MockMethodologyConfigRepository)
	s.mockZakatSvc = new(MockZakatService)
	s.service = services.NewSnapshotService(s.mockSnapshotRepo, s.mockAssetRepo, s.mockMethodologyRepo, s.mockZakatSvc)
	s.ctx = context.Background()
	s.userID = "user-123"
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}

func (s *SnapshotServiceTestSuite) standardNisab() *domain.NisabInfo {
	return &domain.NisabInfo{
		GoldNisab:         decimal.NewFromFloat(5861.16),
		SilverNisab:       decimal.NewFromFloat(520.506),
		EffectiveNisab:    decimal.NewFromFloat(520.506),
		NisabBasis:        domain.NisabBasisDualMinimumSilver,
		CalculationMethod: domain.MethodologyStandard,
	}
}

func (s *SnapshotServiceTestSuite) TestCreateSnapshot_BornLocked() {
	assets := []domain.Asset{
		{
			AssetID:       "a1",
			UserID:        s.userID,
			Name:          "Savings",
			Category:      domain.CategoryCash,
			Value:         decimal.NewFromInt(10000),
			ZakatEligible: true,
			Treatment:     domain.FullTreatment(),
			IsActive:      true,
		},
	}
	s.mockAssetRepo.On("ListActiveAssetsByUser", s.ctx, s.userID).Return(assets, nil).Once()
	s.mockZakatSvc.On("CalculateNisab", s.ctx, domain.MethodologyStandard, "USD").Return(s.standardNisab(), nil).Once()

	s.mockSnapshotRepo.On("SaveSnapshotWithValues", s.ctx,
		mock.MatchedBy(func(snap domain.CalculationSnapshot) bool {
			return snap.IsLocked &&
				snap.UserID == s.userID &&
				snap.TotalWealth.Equal(decimal.NewFromInt(10000)) &&
				snap.ZakatDue.Equal(decimal.NewFromInt(250)) &&
				snap.CalendarType == domain.CalendarGregorian
		}),
		mock.MatchedBy(func(values []domain.SnapshotAssetValue) bool {
			return len(values) == 1 && values[0].AssetID == "a1" && values[0].IsZakatable
		}),
	).Return(nil).Once()

	snapshot, values, err := s.service.CreateSnapshot(s.ctx, s.userID, dto.CreateSnapshotRequest{
		Methodology: "STANDARD",
		Currency:    "USD",
	})

	s.Require().NoError(err)
	s.True(snapshot.IsLocked)
	s.Len(values, 1)
	s.mockSnapshotRepo.AssertExpectations(s.T())
}

func (s *SnapshotServiceTestSuite) TestCreateSnapshot_NoAssetsRejected() {
	s.mockAssetRepo.On("ListActiveAssetsByUser", s.ctx, s.userID).Return([]domain.Asset{}, nil).Once()

	_, _, err := s.service.CreateSnapshot(s.ctx, s.userID, dto.CreateSnapshotRequest{Methodology: "STANDARD"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockSnapshotRepo.AssertNotCalled(s.T(), "SaveSnapshotWithValues")
}

func (s *SnapshotServiceTestSuite) TestCreateSnapshot_HijriYearBounds() {
	referenceDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assets := []domain.Asset{
		{
			AssetID:       "a1",
			UserID:        s.userID,
			Category:      domain.CategoryCash,
			Value:         decimal.NewFromInt(1000),
			ZakatEligible: true,
			Treatment:     domain.FullTreatment(),
			IsActive:      true,
		},
	}
	s.mockAssetRepo.On("ListActiveAssetsByUser", s.ctx, s.userID).Return(assets, nil).Once()
	s.mockZakatSvc.On("CalculateNisab", s.ctx, domain.MethodologyStandard, "").Return(s.standardNisab(), nil).Once()

	s.mockSnapshotRepo.On("SaveSnapshotWithValues", s.ctx,
		mock.MatchedBy(func(snap domain.CalculationSnapshot) bool {
			return snap.CalendarType == domain.CalendarHijri &&
				snap.ZakatYearStart.Equal(referenceDate) &&
				snap.ZakatYearEnd.Equal(referenceDate.AddDate(0, 0, 354))
		}),
		mock.Anything,
	).Return(nil).Once()

	_, _, err := s.service.CreateSnapshot(s.ctx, s.userID, dto.CreateSnapshotRequest{
		Methodology:   "STANDARD",
		CalendarType:  "HIJRI",
		ReferenceDate: &referenceDate,
	})

	s.Require().NoError(err)
	s.mockSnapshotRepo.AssertExpectations(s.T())
}

func (s *SnapshotServiceTestSuite) TestCreateSnapshot_InvalidMethodology() {
	_, _, err := s.service.CreateSnapshot(s.ctx, s.userID, dto.CreateSnapshotRequest{Methodology: "MALIKI"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAssetRepo.AssertNotCalled(s.T(), "ListActiveAssetsByUser")
}

func (s *SnapshotServiceTestSuite) TestUnlockSnapshot_Success() {
	snapshot := &domain.CalculationSnapshot{
		SnapshotID: "snap-1",
		UserID:     s.userID,
		IsLocked:   true,
	}
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-1").Return(snapshot, nil).Once()
	s.mockSnapshotRepo.On("UpdateSnapshotLockState", s.ctx, s.userID, "snap-1", false,
		mock.MatchedBy(func(reason *string) bool { return reason != nil && *reason == "correcting a mistyped value" }),
		mock.AnythingOfType("*time.Time"), s.userID).Return(nil).Once()

	unlocked, err := s.service.UnlockSnapshot(s.ctx, s.userID, "snap-1", "  correcting a mistyped value  ")

	s.Require().NoError(err)
	s.False(unlocked.IsLocked)
	s.Require().NotNil(unlocked.UnlockReason)
	s.Equal("correcting a mistyped value", *unlocked.UnlockReason)
	s.NotNil(unlocked.UnlockedAt)
	s.mockSnapshotRepo.AssertExpectations(s.T())
}

func (s *SnapshotServiceTestSuite) TestUnlockSnapshot_EmptyReasonRejected() {
	_, err := s.service.UnlockSnapshot(s.ctx, s.userID, "snap-1", "   ")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockSnapshotRepo.AssertNotCalled(s.T(), "FindSnapshotByID")
}

func (s *SnapshotServiceTestSuite) TestUnlockSnapshot_ReasonTooLong() {
	_, err := s.service.UnlockSnapshot(s.ctx, s.userID, "snap-1", strings.Repeat("x", 501))

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SnapshotServiceTestSuite) TestUnlockSnapshot_AlreadyUnlockedIsNoOp() {
	reason := "earlier reason"
	snapshot := &domain.CalculationSnapshot{
		SnapshotID:   "snap-1",
		UserID:       s.userID,
		IsLocked:     false,
		UnlockReason: &reason,
	}
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-1").Return(snapshot, nil).Once()

	unlocked, err := s.service.UnlockSnapshot(s.ctx, s.userID, "snap-1", "new reason")

	s.Require().NoError(err)
	s.False(unlocked.IsLocked)
	// The original reason stands; no state transition happened.
	s.Equal("earlier reason", *unlocked.UnlockReason)
	s.mockSnapshotRepo.AssertNotCalled(s.T(), "UpdateSnapshotLockState")
}

func (s *SnapshotServiceTestSuite) TestLockSnapshot_KeepsUnlockReason() {
	reason := "correcting a value"
	unlockedAt := time.Now().Add(-time.Hour)
	snapshot := &domain.CalculationSnapshot{
		SnapshotID:   "snap-1",
		UserID:       s.userID,
		IsLocked:     false,
		UnlockReason: &reason,
		UnlockedAt:   &unlockedAt,
	}
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-1").Return(snapshot, nil).Once()
	s.mockSnapshotRepo.On("UpdateSnapshotLockState", s.ctx, s.userID, "snap-1", true, &reason, &unlockedAt, s.userID).Return(nil).Once()

	locked, err := s.service.LockSnapshot(s.ctx, s.userID, "snap-1")

	s.Require().NoError(err)
	s.True(locked.IsLocked)
	s.Equal("correcting a value", *locked.UnlockReason)
	s.mockSnapshotRepo.AssertExpectations(s.T())
}

func (s *SnapshotServiceTestSuite) TestLockSnapshot_AlreadyLockedIsNoOp() {
	snapshot := &domain.CalculationSnapshot{
		SnapshotID: "snap-1",
		UserID:     s.userID,
		IsLocked:   true,
	}
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-1").Return(snapshot, nil).Once()

	locked, err := s.service.LockSnapshot(s.ctx, s.userID, "snap-1")

	s.Require().NoError(err)
	s.True(locked.IsLocked)
	s.mockSnapshotRepo.AssertNotCalled(s.T(), "UpdateSnapshotLockState")
}

func (s *SnapshotServiceTestSuite) TestGetSnapshot_NotFound() {
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.GetSnapshot(s.ctx, s.userID, "missing")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SnapshotServiceTestSuite) TestListSnapshots_NilBecomesEmptySlice() {
	s.mockSnapshotRepo.On("ListSnapshotsByUser", s.ctx, s.userID, 20, (*string)(nil)).Return(nil, nil, nil).Once()

	snapshots, token, err := s.service.ListSnapshots(s.ctx, s.userID, 20, nil)

	s.Require().NoError(err)
	s.NotNil(snapshots)
	s.Empty(snapshots)
	s.Nil(token)
}

func (s *SnapshotServiceTestSuite) compareFixture() (*domain.CalculationSnapshot, *domain.CalculationSnapshot) {
	from := &domain.CalculationSnapshot{
		SnapshotID:      "snap-from",
		UserID:          s.userID,
		CalculationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Methodology:     domain.MethodologyStandard,
		TotalWealth:     decimal.NewFromInt(10000),
		ZakatDue:        decimal.NewFromInt(250),
	}
	to := &domain.CalculationSnapshot{
		SnapshotID:      "snap-to",
		UserID:          s.userID,
		CalculationDate: time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),
		Methodology:     domain.MethodologyHanafi,
		TotalWealth:     decimal.NewFromInt(12000),
		ZakatDue:        decimal.NewFromInt(300),
	}
	return from, to
}

func (s *SnapshotServiceTestSuite) TestCompareSnapshots() {
	from, to := s.compareFixture()
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-from").Return(from, nil).Once()
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-to").Return(to, nil).Once()

	comparison, err := s.service.CompareSnapshots(s.ctx, s.userID, "snap-from", "snap-to")

	s.Require().NoError(err)
	s.True(comparison.WealthChange.Absolute.Equal(decimal.NewFromInt(2000)))
	s.True(comparison.WealthChange.Percentage.Equal(decimal.NewFromInt(20)))
	s.True(comparison.ZakatDueChange.Absolute.Equal(decimal.NewFromInt(50)))
	s.True(comparison.MethodologyChange)
	// 365 days and 12 hours elapsed, floored.
	s.Equal(365, comparison.DaysElapsed)
}

func (s *SnapshotServiceTestSuite) TestCompareSnapshots_ReversedOrderNegates() {
	from, to := s.compareFixture()
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-to").Return(to, nil).Once()
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-from").Return(from, nil).Once()

	comparison, err := s.service.CompareSnapshots(s.ctx, s.userID, "snap-to", "snap-from")

	s.Require().NoError(err)
	s.True(comparison.WealthChange.Absolute.Equal(decimal.NewFromInt(-2000)))
	s.Equal(-366, comparison.DaysElapsed)
}

func (s *SnapshotServiceTestSuite) TestCompareSnapshots_ZeroBaseStaysDefined() {
	from, to := s.compareFixture()
	from.TotalWealth = decimal.Zero
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-from").Return(from, nil).Once()
	s.mockSnapshotRepo.On("FindSnapshotByID", s.ctx, s.userID, "snap-to").Return(to, nil).Once()

	comparison, err := s.service.CompareSnapshots(s.ctx, s.userID, "snap-from", "snap-to")

	s.Require().NoError(err)
	s.True(comparison.WealthChange.Absolute.Equal(decimal.NewFromInt(12000)))
	// Zero base divides by one instead.
	s.True(comparison.WealthChange.Percentage.Equal(decimal.NewFromInt(1200000)))
}

func (s *SnapshotServiceTestSuite) TestDeleteSnapshot() {
	s.mockSnapshotRepo.On("DeleteSnapshot", s.ctx, s.userID, "snap-1").Return(nil).Once()

	err := s.service.DeleteSnapshot(s.ctx, s.userID, "snap-1")

	s.Require().NoError(err)
	s.mockSnapshotRepo.AssertExpectations(s.T())
}
