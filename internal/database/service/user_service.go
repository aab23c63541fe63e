package service

import (
	"errors"
	"log/slog"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/identity"
)

// ProfileUpdate carries a partial profile edit. A nil field means "leave
// unchanged"; a non-nil pointer to the zero value means "set it", so a bio
// can be cleared to an empty string.
type ProfileUpdate struct {
	DisplayName   *string
	PhotoURL      *string
	PhoneNumber   *string
	Bio           *string
	Notifications *bool
	EmailUpdates  *bool
}

// UserService defines the interface for user business logic
type UserService interface {
	// SyncFromClaims finds or creates the user for a verified identity and
	// refreshes provider-supplied profile fields. The bool reports whether
	// the user was created by this call.
	SyncFromClaims(claims *identity.Claims) (*models.User, bool, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) SyncFromClaims(claims *identity.Claims) (*models.User, bool, error) {
	user, err := s.userRepo.FindByEmail(claims.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [UserService] Database error", "email", claims.Email, "error", err)
			return nil, false, err
		}

		created, err := s.createFromClaims(claims)
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	// Refresh stored fields the provider reports differently, touching only
	// the columns that actually changed
	fields := map[string]any{}
	if claims.Name != "" && claims.Name != user.DisplayName {
		fields["display_name"] = claims.Name
	}
	if claims.Picture != "" && (user.PhotoURL == nil || *user.PhotoURL != claims.Picture) {
		fields["photo_url"] = claims.Picture
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(user.ID, fields); err != nil {
			s.logger.Error("❌ [UserService] Failed to refresh user", "email", claims.Email, "error", err)
			return nil, false, err
		}
		// Return the freshest stored copy
		user, err = s.userRepo.FindByEmail(claims.Email)
		if err != nil {
			return nil, false, err
		}
		s.logger.Debug("🔄 [UserService] Refreshed profile from identity claims", "email", claims.Email)
	}

	return user, false, nil
}

func (s *userService) createFromClaims(claims *identity.Claims) (*models.User, error) {
	s.logger.Info("📝 [UserService] First sign-in, creating user", "email", claims.Email)

	user := &models.User{
		Email:       claims.Email,
		DisplayName: "Anonymous",
		Preferences: models.DefaultPreferences(),
	}
	if claims.Name != "" {
		user.DisplayName = claims.Name
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.PhotoURL = &picture
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			// Lost the find-or-create race; the unique email index kept the
			// other insert, so read that one back.
			s.logger.Warn("⚠️ [UserService] Concurrent first sign-in, reusing existing record", "email", claims.Email)
			return s.userRepo.FindByEmail(claims.Email)
		}
		s.logger.Error("❌ [UserService] Failed to create user", "email", claims.Email, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] User created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

func (s *userService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to find user", "user_id", userID, "error", err)
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		user.PhotoURL = update.PhotoURL
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.Notifications != nil {
		user.Preferences.Notifications = *update.Notifications
	}
	if update.EmailUpdates != nil {
		user.Preferences.EmailUpdates = *update.EmailUpdates
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Error("❌ [UserService] Failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] Profile updated", "user_id", userID)
	return user, nil
}
