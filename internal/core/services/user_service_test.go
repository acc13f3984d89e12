package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/core/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/utils"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo, "USD")
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegisterUser_Success() {
	req := dto.RegisterUserRequest{
		Username: "amina",
		Password: "correct horse battery",
		Name:     "Amina",
	}

	s.mockRepo.On("FindUserByUsername", s.ctx, "amina").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "amina" &&
			u.DefaultCurrency == "USD" &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := s.service.RegisterUser(s.ctx, req)

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.Equal(user.UserID, user.CreatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterUser_ExplicitCurrency() {
	req := dto.RegisterUserRequest{
		Username:        "karim",
		Password:        "correct horse battery",
		Name:            "Karim",
		DefaultCurrency: "EUR",
	}

	s.mockRepo.On("FindUserByUsername", s.ctx, "karim").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.DefaultCurrency == "EUR"
	})).Return(nil).Once()

	_, err := s.service.RegisterUser(s.ctx, req)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterUser_UsernameTaken() {
	existing := &domain.User{UserID: "user-1", Username: "amina"}
	s.mockRepo.On("FindUserByUsername", s.ctx, "amina").Return(existing, nil).Once()

	_, err := s.service.RegisterUser(s.ctx, dto.RegisterUserRequest{
		Username: "amina",
		Password: "correct horse battery",
		Name:     "Amina",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser")
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct horse battery")
	s.Require().NoError(err)

	user := &domain.User{UserID: "user-1", Username: "amina", PasswordHash: hash}
	s.mockRepo.On("FindUserByUsername", s.ctx, "amina").Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(s.ctx, "amina", "correct horse battery")

	s.Require().NoError(err)
	s.Equal("user-1", got.UserID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("correct horse battery")
	s.Require().NoError(err)

	user := &domain.User{UserID: "user-1", Username: "amina", PasswordHash: hash}
	s.mockRepo.On("FindUserByUsername", s.ctx, "amina").Return(user, nil).Once()

	_, err = s.service.AuthenticateUser(s.ctx, "amina", "wrong password")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.AuthenticateUser(s.ctx, "ghost", "whatever")

	s.Require().Error(err)
	// Unknown username and wrong password are indistinguishable to the caller.
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestGetUserByID_NotFound() {
	s.mockRepo.On("FindUserByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetUserByID(s.ctx, "missing")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
