package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Availability states for a listing
const (
	AvailabilityAvailable    = "Available"
	AvailabilityNotAvailable = "Not Available"
)

// Listing represents a roommate-seeking post. OwnerID is the authoritative
// authorization field; UserEmail and UserName are display copies denormalized
// at creation time and never consulted for ownership checks.
type Listing struct {
	ID                   string         `gorm:"type:uuid;primarykey" json:"id"`
	Title                string         `gorm:"not null" json:"title"`
	Location             string         `gorm:"not null" json:"location"`
	RentAmount           float64        `gorm:"not null" json:"rentAmount"`
	RoomType             string         `gorm:"not null" json:"roomType"`
	Description          string         `json:"description"`
	LifestylePreferences pq.StringArray `gorm:"type:text[]" json:"lifestylePreferences"`
	ContactInfo          string         `gorm:"not null" json:"contactInfo,omitempty"`
	Availability         string         `gorm:"not null;default:'Available'" json:"availability"`
	OwnerID              uint           `gorm:"not null;index" json:"-"`
	UserEmail            string         `gorm:"not null;index" json:"userEmail"`
	UserName             string         `gorm:"not null" json:"userName"`
	Likes                int64          `gorm:"not null;default:0" json:"likes"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// TableName overrides the table name
func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns the opaque listing id
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ListingLike records that a viewer liked a listing. The unique pair index
// makes a like at-most-once per viewer.
type ListingLike struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	ListingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_listing_liker" json:"listingId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_listing_liker" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name
func (ListingLike) TableName() string {
	return "listing_likes"
}
