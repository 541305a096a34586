package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey   string
	TokenExpiry time.Duration
	TokenIssuer string
}

// JWTService issues and verifies administrator bearer tokens.
// Tokens are stateless: there is no revocation list, a token stays valid until it expires.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service. The secret has no fallback.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt: secret key is required")
	}
	if config.TokenExpiry <= 0 {
		return nil, errors.New("jwt: token expiry must be positive")
	}
	return &JWTService{config: config, now: time.Now}, nil
}

// Claims defines JWT token content
type Claims struct {
	AdminID string `json:"id"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given administrator id.
func (s *JWTService) Issue(adminID string) (string, time.Time, error) {
	if adminID == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty subject", apperrors.ErrTokenInvalid)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TokenExpiry)

	claims := &Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   adminID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates a token and returns the administrator id it was issued for.
func (s *JWTService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", apperrors.ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return "", apperrors.ErrTokenInvalid
	}

	return claims.AdminID, nil
}

// ExtractBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.ErrTokenInvalid
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ErrTokenInvalid
	}
	return token, nil
}
