package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// Issue returns a signed token for the given identity.
func (s *TokenService) Issue(subjectID, username string, role domain.Role) (string, error) {
	if subjectID == "" || !role.Valid() {
		return "", fmt.Errorf("issue token: %w", domain.ErrValidation)
	}
	now := s.now()
	claims := sessionClaims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, structure and expiry of token and returns the
// identity it carries. Every failure is reported as domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Actor, error) {
	var claims sessionClaims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
		}
		return domain.Actor{}, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.Actor{}, domain.ErrInvalidToken
	}

	return domain.Actor{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     role,
	}, nil
}
