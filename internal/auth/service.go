// Package auth exchanges operator credentials for short-lived JWTs whose
// subject is the caller's registry address. It authenticates only; every
// capability check stays inside the registry.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/secrets"
)

// Claims are the JWT claims on access tokens.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// Service issues and validates access tokens against a static operator
// credential set supplied at boot.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	operators  map[domain.Address]string
}

func New(signingKey, issuer string, ttl time.Duration, operators map[domain.Address]string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		operators:  operators,
	}
}

// IssueToken verifies the operator credential and mints a signed token.
func (s *Service) IssueToken(_ context.Context, address domain.Address, secret string) (string, time.Time, error) {
	if address.IsZero() || secret == "" {
		return "", time.Time{}, dErrors.New(dErrors.CodeInvalidArgument, "address and secret are required")
	}
	hash, ok := s.operators[address]
	if !ok {
		return "", time.Time{}, dErrors.New(dErrors.CodeUnauthenticated, "unknown operator")
	}
	if err := secrets.Verify(secret, hash); err != nil {
		return "", time.Time{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid credentials")
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Address: address.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns the caller address it carries.
func (s *Service) ValidateToken(tokenString string) (domain.Address, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ZeroAddress, dErrors.New(dErrors.CodeUnauthenticated, "token has expired")
		}
		return domain.ZeroAddress, dErrors.New(dErrors.CodeUnauthenticated, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.ZeroAddress, dErrors.New(dErrors.CodeUnauthenticated, "invalid token claims")
	}

	addr := domain.Address(claims.Address)
	if addr.IsZero() {
		addr = domain.Address(claims.Subject)
	}
	if addr.IsZero() {
		return domain.ZeroAddress, dErrors.New(dErrors.CodeUnauthenticated, "token carries no address")
	}
	return addr, nil
}
