package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
)

const listingID = "6a1f0c3e-9a3b-4c89-9a9e-0f1d2c3b4a59"

func testOwner() *models.User {
	return &models.User{ID: 1, Email: "alice@example.com", DisplayName: "Alice"}
}

func testViewer() *models.User {
	return &models.User{ID: 2, Email: "bob@example.com", DisplayName: "Bob"}
}

func testListing() *models.Listing {
	return &models.Listing{
		ID:           listingID,
		Title:        "Room in NYC",
		Location:     "New York",
		RentAmount:   950,
		RoomType:     "Single Room",
		ContactInfo:  "call 555-0100",
		Availability: models.AvailabilityAvailable,
		OwnerID:      1,
		UserEmail:    "alice@example.com",
		UserName:     "Alice",
	}
}

func TestListingService_Create(t *testing.T) {
	t.Run("denormalizes owner and defaults availability", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("Create", mock.AnythingOfType("*models.Listing")).Return(nil).Once()

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		listing, err := svc.Create(testOwner(), service.ListingCreate{
			Title:       "Room in NYC",
			Location:    "New York",
			RentAmount:  950,
			RoomType:    "Single Room",
			ContactInfo: "call 555-0100",
		})

		require.NoError(t, err)
		assert.Equal(t, models.AvailabilityAvailable, listing.Availability)
		assert.Equal(t, uint(1), listing.OwnerID)
		assert.Equal(t, "alice@example.com", listing.UserEmail)
		assert.Equal(t, "Alice", listing.UserName)
		assert.Equal(t, int64(0), listing.Likes)
		listingRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown availability", func(t *testing.T) {
		svc := service.NewListingService(new(MockListingRepository), new(MockRevealStore), testLogger())
		_, err := svc.Create(testOwner(), service.ListingCreate{
			Title:        "Room in NYC",
			Location:     "New York",
			RentAmount:   950,
			RoomType:     "Single Room",
			ContactInfo:  "call 555-0100",
			Availability: "Maybe",
		})
		assert.ErrorIs(t, err, service.ErrInvalidAvailability)
	})
}

func TestListingService_Update(t *testing.T) {
	t.Run("owner merges present fields only", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		listingRepo.On("Update", mock.AnythingOfType("*models.Listing")).Return(nil).Once()

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		rent := 1100.0
		updated, err := svc.Update(listingID, testOwner(), service.ListingUpdate{
			RentAmount:  &rent,
			Description: strPtr(""),
		})

		require.NoError(t, err)
		assert.Equal(t, 1100.0, updated.RentAmount)
		assert.Equal(t, "", updated.Description)
		// Absent fields keep prior values
		assert.Equal(t, "Room in NYC", updated.Title)
		assert.Equal(t, "New York", updated.Location)
		listingRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		// No Update expectation: the record must stay unchanged

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		_, err := svc.Update(listingID, testViewer(), service.ListingUpdate{Title: strPtr("Hijacked")})

		assert.ErrorIs(t, err, service.ErrNotListingOwner)
		listingRepo.AssertExpectations(t)
	})

	t.Run("unknown listing", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(nil, repository.ErrListingNotFound).Once()

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		_, err := svc.Update(listingID, testOwner(), service.ListingUpdate{})

		assert.ErrorIs(t, err, repository.ErrListingNotFound)
	})
}

func TestListingService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		listingRepo.On("Delete", listingID).Return(nil).Once()

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		assert.NoError(t, svc.Delete(listingID, testOwner()))
		listingRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		assert.ErrorIs(t, svc.Delete(listingID, testViewer()), service.ErrNotListingOwner)
		listingRepo.AssertExpectations(t)
	})
}

func TestListingService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("first like increments exactly once and reveals", func(t *testing.T) {
		liked := testListing()
		liked.Likes = 1

		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		listingRepo.On("RecordLike", mock.AnythingOfType("*models.ListingLike")).Return(nil).Once()
		listingRepo.On("FindByID", listingID).Return(liked, nil).Once()

		reveals := new(MockRevealStore)
		reveals.On("MarkRevealed", listingID, uint(2)).Return(nil).Once()

		svc := service.NewListingService(listingRepo, reveals, testLogger())
		listing, err := svc.Like(ctx, listingID, testViewer())

		require.NoError(t, err)
		assert.Equal(t, int64(1), listing.Likes)
		listingRepo.AssertExpectations(t)
		reveals.AssertExpectations(t)
	})

	t.Run("failed attempt leaves the retry able to count", func(t *testing.T) {
		liked := testListing()
		liked.Likes = 1

		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Twice()
		listingRepo.On("RecordLike", mock.AnythingOfType("*models.ListingLike")).Return(assert.AnError).Once()
		listingRepo.On("RecordLike", mock.AnythingOfType("*models.ListingLike")).Return(nil).Once()
		listingRepo.On("FindByID", listingID).Return(liked, nil).Once()

		reveals := new(MockRevealStore)
		reveals.On("MarkRevealed", listingID, uint(2)).Return(nil).Once()

		svc := service.NewListingService(listingRepo, reveals, testLogger())

		_, err := svc.Like(ctx, listingID, testViewer())
		require.ErrorIs(t, err, assert.AnError)

		// The failed write rolled back wholesale, so the retry is a first
		// like again and the counter still moves by exactly one
		listing, err := svc.Like(ctx, listingID, testViewer())
		require.NoError(t, err)
		assert.Equal(t, int64(1), listing.Likes)
		listingRepo.AssertExpectations(t)
		reveals.AssertExpectations(t)
	})

	t.Run("replay does not touch the counter", func(t *testing.T) {
		liked := testListing()
		liked.Likes = 1

		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(liked, nil).Twice()
		listingRepo.On("RecordLike", mock.AnythingOfType("*models.ListingLike")).Return(repository.ErrAlreadyLiked).Once()

		reveals := new(MockRevealStore)
		reveals.On("MarkRevealed", listingID, uint(2)).Return(nil).Once()

		svc := service.NewListingService(listingRepo, reveals, testLogger())
		listing, err := svc.Like(ctx, listingID, testViewer())

		require.NoError(t, err)
		assert.Equal(t, int64(1), listing.Likes)
		listingRepo.AssertExpectations(t)
	})

	t.Run("owner cannot like own listing", func(t *testing.T) {
		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		// RecordLike must never run

		svc := service.NewListingService(listingRepo, new(MockRevealStore), testLogger())
		_, err := svc.Like(ctx, listingID, testOwner())

		assert.ErrorIs(t, err, service.ErrOwnListingLike)
		listingRepo.AssertExpectations(t)
	})

	t.Run("redis failure does not fail the like", func(t *testing.T) {
		liked := testListing()
		liked.Likes = 1

		listingRepo := new(MockListingRepository)
		listingRepo.On("FindByID", listingID).Return(testListing(), nil).Once()
		listingRepo.On("RecordLike", mock.AnythingOfType("*models.ListingLike")).Return(nil).Once()
		listingRepo.On("FindByID", listingID).Return(liked, nil).Once()

		reveals := new(MockRevealStore)
		reveals.On("MarkRevealed", listingID, uint(2)).Return(assert.AnError).Once()

		svc := service.NewListingService(listingRepo, reveals, testLogger())
		listing, err := svc.Like(ctx, listingID, testViewer())

		require.NoError(t, err)
		assert.Equal(t, int64(1), listing.Likes)
	})
}

func TestListingService_CanViewContact(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer *models.User
		setup  func(*MockListingRepository, *MockRevealStore)
		want   bool
	}{
		{
			name:   "anonymous viewer",
			viewer: nil,
			setup:  func(_ *MockListingRepository, _ *MockRevealStore) {},
			want:   false,
		},
		{
			name:   "owner always sees contact",
			viewer: testOwner(),
			setup:  func(_ *MockListingRepository, _ *MockRevealStore) {},
			want:   true,
		},
		{
			name:   "cached reveal",
			viewer: testViewer(),
			setup: func(_ *MockListingRepository, reveals *MockRevealStore) {
				reveals.On("IsRevealed", listingID, uint(2)).Return(true, nil).Once()
			},
			want: true,
		},
		{
			name:   "durable like backfills the cache",
			viewer: testViewer(),
			setup: func(listingRepo *MockListingRepository, reveals *MockRevealStore) {
				reveals.On("IsRevealed", listingID, uint(2)).Return(false, nil).Once()
				listingRepo.On("HasLiked", listingID, uint(2)).Return(true, nil).Once()
				reveals.On("MarkRevealed", listingID, uint(2)).Return(nil).Once()
			},
			want: true,
		},
		{
			name:   "never liked",
			viewer: testViewer(),
			setup: func(listingRepo *MockListingRepository, reveals *MockRevealStore) {
				reveals.On("IsRevealed", listingID, uint(2)).Return(false, nil).Once()
				listingRepo.On("HasLiked", listingID, uint(2)).Return(false, nil).Once()
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listingRepo := new(MockListingRepository)
			reveals := new(MockRevealStore)
			tt.setup(listingRepo, reveals)

			svc := service.NewListingService(listingRepo, reveals, testLogger())
			got := svc.CanViewContact(ctx, testListing(), tt.viewer)

			assert.Equal(t, tt.want, got)
			listingRepo.AssertExpectations(t)
			reveals.AssertExpectations(t)
		})
	}
}
