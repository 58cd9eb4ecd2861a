package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/secrets"
)

type AuthServiceSuite struct {
	suite.Suite
	svc *Service
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupSuite() {
	hash, err := secrets.Hash("operator-secret")
	s.Require().NoError(err)
	s.svc = New("test-signing-key", "certledger-test", time.Hour, map[domain.Address]string{
		"0xinstitution": hash,
	})
}

func (s *AuthServiceSuite) TestIssueAndValidateRoundTrip() {
	token, expiresAt, err := s.svc.IssueToken(context.Background(), "0xinstitution", "operator-secret")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))

	addr, err := s.svc.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(domain.Address("0xinstitution"), addr)
}

func (s *AuthServiceSuite) TestIssueToken() {
	ctx := context.Background()

	s.Run("unknown operator rejected", func() {
		_, _, err := s.svc.IssueToken(ctx, "0xstranger", "operator-secret")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("wrong secret rejected", func() {
		_, _, err := s.svc.IssueToken(ctx, "0xinstitution", "wrong")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("zero address rejected", func() {
		_, _, err := s.svc.IssueToken(ctx, domain.ZeroAddress, "operator-secret")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("empty secret rejected", func() {
		_, _, err := s.svc.IssueToken(ctx, "0xinstitution", "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})
}

func (s *AuthServiceSuite) TestValidateToken() {
	s.Run("garbage token rejected", func() {
		_, err := s.svc.ValidateToken("not-a-jwt")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("expired token rejected", func() {
		hash, err := secrets.Hash("s")
		s.Require().NoError(err)
		expired := New("test-signing-key", "certledger-test", -time.Minute, map[domain.Address]string{"0xa": hash})
		token, _, err := expired.IssueToken(context.Background(), "0xa", "s")
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("token signed with another key rejected", func() {
		hash, err := secrets.Hash("s")
		s.Require().NoError(err)
		other := New("other-key", "certledger-test", time.Hour, map[domain.Address]string{"0xa": hash})
		token, _, err := other.IssueToken(context.Background(), "0xa", "s")
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})
}
