package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/config"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/middleware"
)

// ListingHandler handles listing API requests
type ListingHandler struct {
	listingService service.ListingService
	cfg            *config.Config
	logger         *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService service.ListingService, cfg *config.Config, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		cfg:            cfg,
		logger:         logger,
	}
}

type createListingRequest struct {
	Title                string   `json:"title" binding:"required"`
	Location             string   `json:"location" binding:"required"`
	RentAmount           float64  `json:"rentAmount" binding:"required,gt=0"`
	RoomType             string   `json:"roomType" binding:"required"`
	Description          string   `json:"description"`
	LifestylePreferences []string `json:"lifestylePreferences"`
	ContactInfo          string   `json:"contactInfo" binding:"required"`
	Availability         string   `json:"availability"`
}

type updateListingRequest struct {
	Title                *string   `json:"title"`
	Location             *string   `json:"location"`
	RentAmount           *float64  `json:"rentAmount"`
	RoomType             *string   `json:"roomType"`
	Description          *string   `json:"description"`
	LifestylePreferences *[]string `json:"lifestylePreferences"`
	ContactInfo          *string   `json:"contactInfo"`
	Availability         *string   `json:"availability"`
}

// Create handles POST /posts
func (h *ListingHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [ListingHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, location, rent amount, room type and contact info are required"})
		return
	}

	listing, err := h.listingService.Create(user, service.ListingCreate{
		Title:                req.Title,
		Location:             req.Location,
		RentAmount:           req.RentAmount,
		RoomType:             req.RoomType,
		Description:          req.Description,
		LifestylePreferences: req.LifestylePreferences,
		ContactInfo:          req.ContactInfo,
		Availability:         req.Availability,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidAvailability) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("❌ [ListingHandler] Failed to create listing", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// List handles GET /posts - public, contact info never included
func (h *ListingHandler) List(c *gin.Context) {
	filter := repository.ListingFilter{
		OwnerEmail:   c.Query("userId"),
		Availability: c.Query("availability"),
		Search:       c.Query("search"),
		Limit:        int(h.cfg.ListingListLimit),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}

	listings, err := h.listingService.List(filter)
	if err != nil {
		h.logger.Error("❌ [ListingHandler] Failed to list listings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	for i := range listings {
		listings[i].ContactInfo = ""
	}

	c.JSON(http.StatusOK, listings)
}

// Get handles GET /posts/:id - public; contact info only for the owner or
// a viewer who already liked the listing
func (h *ListingHandler) Get(c *gin.Context) {
	id := c.Param("id")

	listing, err := h.listingService.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("❌ [ListingHandler] Failed to get listing", "listing_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	revealed := h.listingService.CanViewContact(c.Request.Context(), listing, viewer)

	c.JSON(http.StatusOK, listingResponse(listing, revealed))
}

// Update handles PUT /posts/:id
func (h *ListingHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [ListingHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	listing, err := h.listingService.Update(id, user, service.ListingUpdate{
		Title:                req.Title,
		Location:             req.Location,
		RentAmount:           req.RentAmount,
		RoomType:             req.RoomType,
		Description:          req.Description,
		LifestylePreferences: req.LifestylePreferences,
		ContactInfo:          req.ContactInfo,
		Availability:         req.Availability,
	})
	if err != nil {
		h.respondListingError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /posts/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [ListingHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	if err := h.listingService.Delete(id, user); err != nil {
		h.respondListingError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// Like handles PUT /posts/:id/like - increments the counter once per viewer
// and reveals the contact information
func (h *ListingHandler) Like(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [ListingHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	listing, err := h.listingService.Like(c.Request.Context(), id, user)
	if err != nil {
		if errors.Is(err, service.ErrOwnListingLike) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can't like your own post"})
			return
		}
		h.respondListingError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, listingResponse(listing, true))
}

func (h *ListingHandler) respondListingError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, repository.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, service.ErrNotListingOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can modify this post"})
	case errors.Is(err, service.ErrInvalidAvailability):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("❌ [ListingHandler] Unexpected error", "listing_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// listingResponse strips the contact info unless revealed and reports the
// viewer's reveal state alongside the listing
func listingResponse(listing *models.Listing, revealed bool) gin.H {
	shown := *listing
	if !revealed {
		shown.ContactInfo = ""
	}
	return gin.H{
		"post":     shown,
		"revealed": revealed,
	}
}
