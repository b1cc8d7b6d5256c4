package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/config"
	"storefront/internal/domain"
)

const accessAudience = "access"

// Claims represents the JWT claims of a back-office operator.
type Claims struct {
	jwt.RegisteredClaims
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
}

// AuthService verifies operator tokens. Tokens are minted by the identity
// provider; IssueToken exists for operational tooling.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
	IssueToken(userID, email string, role domain.UserRole, ttl time.Duration) (string, error)
}

type authService struct {
	cfg config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(accessAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) IssueToken(userID, email string, role domain.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  jwt.ClaimStrings{accessAudience},
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
