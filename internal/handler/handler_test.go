package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/api"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/config"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/repository"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/handler"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/identity"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/middleware"
)

// stubVerifier maps known token strings to claims
type stubVerifier struct {
	tokens map[string]*identity.Claims
}

func (s *stubVerifier) Verify(tokenString string) (*identity.Claims, error) {
	claims, ok := s.tokens[tokenString]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return claims, nil
}

type testApp struct {
	router      *gin.Engine
	listingRepo repository.ListingRepository
	verifier    *stubVerifier
}

// setupTestApp wires the full router over in-memory sqlite and miniredis
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.ListingLike{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := &config.Config{
		RevealTTL:        60,
		ListingListLimit: 50,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	reveals := database.NewRedisRevealStoreForTesting(client, cfg, logger)
	t.Cleanup(func() {
		reveals.Close()
		mr.Close()
	})

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	userService := service.NewUserService(userRepo, logger)
	listingService := service.NewListingService(listingRepo, reveals, logger)

	verifier := &stubVerifier{tokens: map[string]*identity.Claims{
		"token-alice": {Email: "a@x.com", Name: "Alice"},
		"token-bob":   {Email: "b@x.com", Name: "Bob"},
	}}

	userHandler := handler.NewUserHandler(userService, logger)
	listingHandler := handler.NewListingHandler(listingService, cfg, logger)
	authMiddleware := middleware.NewAuthMiddleware(verifier, userService, logger)

	router := api.SetupRouter(userHandler, listingHandler, authMiddleware)

	return &testApp{router: router, listingRepo: listingRepo, verifier: verifier}
}

func (app *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createListing posts a valid listing as the given token's user and returns it
func (app *testApp) createListing(t *testing.T, token string) models.Listing {
	t.Helper()

	w := app.request(t, http.MethodPost, "/posts", token, gin.H{
		"title":                "Room in NYC",
		"location":             "New York",
		"rentAmount":           950,
		"roomType":             "Single Room",
		"description":          "Sunny room near the park",
		"lifestylePreferences": []string{"pets", "quiet"},
		"contactInfo":          "call 555-0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var listing models.Listing
	decodeJSON(t, w, &listing)
	return listing
}
