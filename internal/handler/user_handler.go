package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/middleware"
)

// UserHandler handles user API requests for profiles and preferences
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

type preferencesPayload struct {
	Notifications *bool `json:"notifications"`
	EmailUpdates  *bool `json:"emailUpdates"`
}

type profilePayload struct {
	DisplayName *string             `json:"displayName"`
	PhotoURL    *string             `json:"photoURL"`
	PhoneNumber *string             `json:"phoneNumber"`
	Bio         *string             `json:"bio"`
	Preferences *preferencesPayload `json:"preferences"`
}

func (p *profilePayload) toUpdate() service.ProfileUpdate {
	update := service.ProfileUpdate{
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		PhoneNumber: p.PhoneNumber,
		Bio:         p.Bio,
	}
	if p.Preferences != nil {
		update.Notifications = p.Preferences.Notifications
		update.EmailUpdates = p.Preferences.EmailUpdates
	}
	return update
}

// Upsert handles POST /users - applies optional profile fields over the
// session user; 201 when the session sync created the record this request
func (h *UserHandler) Upsert(c *gin.Context) {
	sessionUser, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [UserHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(sessionUser.ID, payload.toUpdate())
	if err != nil {
		h.logger.Error("❌ [UserHandler] Failed to upsert user", "user_id", sessionUser.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	status := http.StatusOK
	if middleware.UserWasCreated(c) {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// Get handles GET /users/:email
func (h *UserHandler) Get(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("❌ [UserHandler] Failed to get user", "email", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:email - a user may only edit their own profile
func (h *UserHandler) Update(c *gin.Context) {
	sessionUser, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("❌ [UserHandler] User not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	email := c.Param("email")
	if email != sessionUser.Email {
		h.logger.Warn("⚠️ [UserHandler] Profile update rejected",
			"session_email", sessionUser.Email,
			"target_email", email,
		)
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update other user's profile"})
		return
	}

	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(sessionUser.ID, payload.toUpdate())
	if err != nil {
		h.logger.Error("❌ [UserHandler] Failed to update profile", "user_id", sessionUser.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
