package identity

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/config"
)

// Claims carries the identity fields extracted from a verified ID token
type Claims struct {
	Email   string
	Name    string
	Picture string
}

// Verifier exchanges a bearer ID token for verified identity claims
type Verifier interface {
	Verify(tokenString string) (*Claims, error)
}

type jwtVerifier struct {
	secret string
	issuer string
	logger *slog.Logger
}

// NewVerifier creates a verifier for HS256 ID tokens signed with the
// shared secret configured for the identity provider
func NewVerifier(cfg *config.Config, logger *slog.Logger) Verifier {
	return &jwtVerifier{
		secret: cfg.IDTokenSecret,
		issuer: cfg.IDTokenIssuer,
		logger: logger,
	}
}

func (v *jwtVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(v.secret), nil
	}, jwt.WithIssuer(v.issuer))

	if err != nil || !token.Valid {
		v.logger.Debug("🔎 [Identity] Token verification failed", "error", err)
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, ok := mapClaims["email"].(string)
	if !ok || email == "" {
		return nil, ErrMissingEmailClaim
	}

	claims := &Claims{Email: email}

	// Name and picture are optional provider-supplied profile claims
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if picture, ok := mapClaims["picture"].(string); ok {
		claims.Picture = picture
	}

	return claims, nil
}

// Verifier errors
var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrMissingEmailClaim = errors.New("token has no email claim")
)
