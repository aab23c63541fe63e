package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
)

// ListingFilter narrows FindAll results
type ListingFilter struct {
	OwnerEmail   string
	Availability string
	Search       string
	Limit        int
}

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(listing *models.Listing) error
	FindByID(id string) (*models.Listing, error)
	FindAll(filter ListingFilter) ([]models.Listing, error)
	Update(listing *models.Listing) error
	Delete(id string) error
	RecordLike(like *models.ListingLike) error
	HasLiked(listingID string, userID uint) (bool, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository instance
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *listingRepository) FindByID(id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindAll(filter ListingFilter) ([]models.Listing, error) {
	query := r.db.Model(&models.Listing{}).Order("created_at DESC")

	if filter.OwnerEmail != "" {
		query = query.Where("user_email = ?", filter.OwnerEmail)
	}
	if filter.Availability != "" {
		query = query.Where("availability = ?", filter.Availability)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR location LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

func (r *listingRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// RecordLike inserts the like row and bumps the counter in one transaction,
// so neither write can survive without the other. The increment is a single
// DB-side UPDATE so concurrent likes cannot lose updates, and the unique
// (listing_id, user_id) index rolls the whole transaction back on a repeat
// like.
func (r *listingRepository) RecordLike(like *models.ListingLike) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Listing{}).
			Where("id = ?", like.ListingID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListingNotFound
		}
		return tx.Create(like).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyLiked
	}
	return err
}

func (r *listingRepository) HasLiked(listingID string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ListingLike{}).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Repository errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrAlreadyLiked    = errors.New("listing already liked by this user")
)
