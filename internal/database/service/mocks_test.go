package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	if len(args) > 1 && args.Get(0) != nil {
		user.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateFields(id uint, fields map[string]any) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

// ==================== MOCK LISTING REPOSITORY ====================

// MockListingRepository implements repository.ListingRepository for testing
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(listing *models.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(id string) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAll(filter repository.ListingFilter) ([]models.Listing, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(listing *models.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) RecordLike(like *models.ListingLike) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockListingRepository) HasLiked(listingID string, userID uint) (bool, error) {
	args := m.Called(listingID, userID)
	return args.Bool(0), args.Error(1)
}

// ==================== MOCK REVEAL STORE ====================

// MockRevealStore implements database.RevealStore for testing
type MockRevealStore struct {
	mock.Mock
}

func (m *MockRevealStore) MarkRevealed(ctx context.Context, listingID string, userID uint) error {
	args := m.Called(listingID, userID)
	return args.Error(0)
}

func (m *MockRevealStore) IsRevealed(ctx context.Context, listingID string, userID uint) (bool, error) {
	args := m.Called(listingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevealStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
