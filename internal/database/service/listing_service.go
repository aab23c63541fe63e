package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
)

// ListingCreate carries the fields for a new listing
type ListingCreate struct {
	Title                string
	Location             string
	RentAmount           float64
	RoomType             string
	Description          string
	LifestylePreferences []string
	ContactInfo          string
	Availability         string
}

// ListingUpdate carries a partial listing edit with pointer-presence
// semantics, matching ProfileUpdate
type ListingUpdate struct {
	Title                *string
	Location             *string
	RentAmount           *float64
	RoomType             *string
	Description          *string
	LifestylePreferences *[]string
	ContactInfo          *string
	Availability         *string
}

// ListingService defines the interface for listing business logic
type ListingService interface {
	Create(owner *models.User, input ListingCreate) (*models.Listing, error)
	Get(id string) (*models.Listing, error)
	List(filter repository.ListingFilter) ([]models.Listing, error)
	Update(id string, actor *models.User, input ListingUpdate) (*models.Listing, error)
	Delete(id string, actor *models.User) error

	// Like records the viewer's like exactly once, increments the counter on
	// the first like only, and marks the pair revealed. Replays return the
	// listing unchanged.
	Like(ctx context.Context, id string, viewer *models.User) (*models.Listing, error)

	// CanViewContact reports whether the viewer may see the listing's
	// contact information: the owner always, other viewers after a like.
	CanViewContact(ctx context.Context, listing *models.Listing, viewer *models.User) bool
}

type listingService struct {
	listingRepo repository.ListingRepository
	reveals     database.RevealStore
	logger      *slog.Logger
}

// NewListingService creates a new listing service instance
func NewListingService(
	listingRepo repository.ListingRepository,
	reveals database.RevealStore,
	logger *slog.Logger,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		reveals:     reveals,
		logger:      logger,
	}
}

func (s *listingService) Create(owner *models.User, input ListingCreate) (*models.Listing, error) {
	availability := input.Availability
	if availability == "" {
		availability = models.AvailabilityAvailable
	}
	if availability != models.AvailabilityAvailable && availability != models.AvailabilityNotAvailable {
		return nil, ErrInvalidAvailability
	}

	listing := &models.Listing{
		Title:                input.Title,
		Location:             input.Location,
		RentAmount:           input.RentAmount,
		RoomType:             input.RoomType,
		Description:          input.Description,
		LifestylePreferences: input.LifestylePreferences,
		ContactInfo:          input.ContactInfo,
		Availability:         availability,
		OwnerID:              owner.ID,
		UserEmail:            owner.Email,
		UserName:             owner.DisplayName,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		s.logger.Error("❌ [ListingService] Failed to create listing", "owner_id", owner.ID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing created", "listing_id", listing.ID, "owner_id", owner.ID)
	return listing, nil
}

func (s *listingService) Get(id string) (*models.Listing, error) {
	return s.listingRepo.FindByID(id)
}

func (s *listingService) List(filter repository.ListingFilter) ([]models.Listing, error) {
	return s.listingRepo.FindAll(filter)
}

func (s *listingService) Update(id string, actor *models.User, input ListingUpdate) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// Ownership is decided by the stored owner id against the session user,
	// never by a client-supplied email
	if listing.OwnerID != actor.ID {
		s.logger.Warn("⚠️ [ListingService] Update rejected, not the owner",
			"listing_id", id,
			"owner_id", listing.OwnerID,
			"actor_id", actor.ID,
		)
		return nil, ErrNotListingOwner
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Location != nil {
		listing.Location = *input.Location
	}
	if input.RentAmount != nil {
		listing.RentAmount = *input.RentAmount
	}
	if input.RoomType != nil {
		listing.RoomType = *input.RoomType
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.LifestylePreferences != nil {
		listing.LifestylePreferences = *input.LifestylePreferences
	}
	if input.ContactInfo != nil {
		listing.ContactInfo = *input.ContactInfo
	}
	if input.Availability != nil {
		if *input.Availability != models.AvailabilityAvailable && *input.Availability != models.AvailabilityNotAvailable {
			return nil, ErrInvalidAvailability
		}
		listing.Availability = *input.Availability
	}

	if err := s.listingRepo.Update(listing); err != nil {
		s.logger.Error("❌ [ListingService] Failed to update listing", "listing_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing updated", "listing_id", id)
	return listing, nil
}

func (s *listingService) Delete(id string, actor *models.User) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return err
	}

	if listing.OwnerID != actor.ID {
		s.logger.Warn("⚠️ [ListingService] Delete rejected, not the owner",
			"listing_id", id,
			"owner_id", listing.OwnerID,
			"actor_id", actor.ID,
		)
		return ErrNotListingOwner
	}

	if err := s.listingRepo.Delete(id); err != nil {
		s.logger.Error("❌ [ListingService] Failed to delete listing", "listing_id", id, "error", err)
		return err
	}

	s.logger.Info("✅ [ListingService] Listing deleted", "listing_id", id)
	return nil
}

func (s *listingService) Like(ctx context.Context, id string, viewer *models.User) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID == viewer.ID {
		s.logger.Warn("⚠️ [ListingService] Owner tried to like own listing",
			"listing_id", id,
			"user_id", viewer.ID,
		)
		return nil, ErrOwnListingLike
	}

	like := &models.ListingLike{
		ListingID: listing.ID,
		UserID:    viewer.ID,
	}

	// The like row and the counter increment are one transaction; a failed
	// attempt leaves no record behind, so the viewer's retry starts clean
	err = s.listingRepo.RecordLike(like)
	switch {
	case err == nil:
		s.logger.Info("❤️ [ListingService] Listing liked", "listing_id", id, "user_id", viewer.ID)
	case errors.Is(err, repository.ErrAlreadyLiked):
		s.logger.Debug("🔁 [ListingService] Repeat like, counter unchanged", "listing_id", id, "user_id", viewer.ID)
	default:
		s.logger.Error("❌ [ListingService] Failed to record like", "listing_id", id, "error", err)
		return nil, err
	}

	// Reveal state is a cache over the durable like record; a Redis failure
	// is not fatal to the like itself
	if err := s.reveals.MarkRevealed(ctx, listing.ID, viewer.ID); err != nil {
		s.logger.Warn("⚠️ [ListingService] Failed to cache reveal state", "listing_id", id, "error", err)
	}

	return s.listingRepo.FindByID(id)
}

func (s *listingService) CanViewContact(ctx context.Context, listing *models.Listing, viewer *models.User) bool {
	if viewer == nil {
		return false
	}
	if listing.OwnerID == viewer.ID {
		return true
	}

	revealed, err := s.reveals.IsRevealed(ctx, listing.ID, viewer.ID)
	if err == nil && revealed {
		return true
	}

	liked, err := s.listingRepo.HasLiked(listing.ID, viewer.ID)
	if err != nil {
		s.logger.Warn("⚠️ [ListingService] Failed to check like record", "listing_id", listing.ID, "error", err)
		return false
	}
	if liked {
		// Backfill the cache so the next check skips the database
		if err := s.reveals.MarkRevealed(ctx, listing.ID, viewer.ID); err != nil {
			s.logger.Debug("🔁 [ListingService] Reveal cache backfill failed", "listing_id", listing.ID, "error", err)
		}
	}
	return liked
}

// Service errors
var (
	ErrNotListingOwner     = errors.New("only the listing owner may modify it")
	ErrOwnListingLike      = errors.New("cannot like your own listing")
	ErrInvalidAvailability = errors.New("availability must be Available or Not Available")
)
