package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/config"
)

// RedisRevealStore implements RevealStore on Redis with a TTL per entry
type RedisRevealStore struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewRedisRevealStore creates a new Redis-backed reveal store
func NewRedisRevealStore(cfg *config.Config, logger *slog.Logger) (*RedisRevealStore, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisRevealStore{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewRedisRevealStoreForTesting creates a reveal store with a provided redis.Client (for testing)
func NewRedisRevealStoreForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RedisRevealStore {
	return &RedisRevealStore{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *RedisRevealStore) Close() error {
	return r.client.Close()
}

// revealKey generates the Redis key for a (listing, viewer) reveal entry
func revealKey(listingID string, userID uint) string {
	return fmt.Sprintf("reveal:%s:%d", listingID, userID)
}

// MarkRevealed records that the viewer has revealed the listing's contact info
func (r *RedisRevealStore) MarkRevealed(ctx context.Context, listingID string, userID uint) error {
	key := revealKey(listingID, userID)
	ttl := time.Duration(r.cfg.RevealTTL) * time.Second

	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to mark reveal",
			"listing_id", listingID,
			"user_id", userID,
			"error", err,
		)
		return err
	}

	r.logger.Debug("💾 [Redis] Marked contact revealed",
		"listing_id", listingID,
		"user_id", userID,
		"ttl", ttl,
	)

	return nil
}

// IsRevealed reports whether the viewer has revealed the listing's contact info
func (r *RedisRevealStore) IsRevealed(ctx context.Context, listingID string, userID uint) (bool, error) {
	key := revealKey(listingID, userID)

	_, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		r.logger.Error("❌ [Redis] Failed to check reveal",
			"listing_id", listingID,
			"user_id", userID,
			"error", err,
		)
		return false, err
	}

	return true, nil
}

// NoOpRevealStore is used when Redis is unavailable; reveal state then falls
// back entirely to the durable like records.
type NoOpRevealStore struct {
	logger *slog.Logger
}

// NewNoOpRevealStore creates a reveal store that records nothing
func NewNoOpRevealStore(logger *slog.Logger) *NoOpRevealStore {
	return &NoOpRevealStore{logger: logger}
}

func (n *NoOpRevealStore) MarkRevealed(ctx context.Context, listingID string, userID uint) error {
	return nil
}

func (n *NoOpRevealStore) IsRevealed(ctx context.Context, listingID string, userID uint) (bool, error) {
	return false, nil
}

func (n *NoOpRevealStore) Close() error {
	return nil
}
