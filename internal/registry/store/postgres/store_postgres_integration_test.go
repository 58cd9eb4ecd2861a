//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	pg "certledger/internal/platform/postgres"
	"certledger/internal/registry/models"
	"certledger/internal/registry/store/postgres"
	"certledger/pkg/domain"
	"certledger/pkg/platform/sentinel"
	"certledger/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()
	container := containers.NewPostgresContainer(s.T())

	pool, err := pg.Connect(ctx, container.URL)
	s.Require().NoError(err)
	s.T().Cleanup(pool.Close)

	s.store = postgres.New(pool)
	s.Require().NoError(s.store.EnsureSchema(ctx))
	s.Require().NoError(s.store.Bootstrap(ctx, "0xadmin"))
}

func (s *PostgresStoreSuite) TestBootstrapIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Bootstrap(ctx, "0xsomeone-else"))

	admin, err := s.store.Admin(ctx)
	s.Require().NoError(err)
	s.Equal(domain.Address("0xadmin"), admin)

	granted, err := s.store.IsInstitution(ctx, "0xadmin")
	s.Require().NoError(err)
	s.True(granted)
}

func (s *PostgresStoreSuite) TestCertificateIDAllocation() {
	ctx := context.Background()
	first, err := s.store.NextCertificateID(ctx)
	s.Require().NoError(err)
	second, err := s.store.NextCertificateID(ctx)
	s.Require().NoError(err)
	s.Equal(first+1, second)
}

func (s *PostgresStoreSuite) TestCertificateRoundTrip() {
	ctx := context.Background()
	id, err := s.store.NextCertificateID(ctx)
	s.Require().NoError(err)

	issued := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	cert := &models.Certificate{
		ID:             id,
		Owner:          "0xstudent",
		Issuer:         "0xuni",
		CourseID:       7,
		CompletionDate: issued,
		Grade:          85,
		ArtifactRef:    "ipfs://artifact",
		Version:        1,
		LastUpdateDate: issued,
		UpdateReason:   "Initial issuance",
		Transferable:   true,
	}
	s.Require().NoError(s.store.SaveCertificate(ctx, cert))

	found, err := s.store.FindCertificate(ctx, id)
	s.Require().NoError(err)
	s.Equal(cert.Owner, found.Owner)
	s.Equal(cert.Grade, found.Grade)
	s.True(found.CompletionDate.Equal(issued))

	s.Run("upsert replaces mutable fields", func() {
		cert.Grade = 90
		cert.Version = 2
		cert.UpdateReason = "regrade"
		s.Require().NoError(s.store.SaveCertificate(ctx, cert))

		found, err := s.store.FindCertificate(ctx, id)
		s.Require().NoError(err)
		s.Equal(uint64(90), found.Grade)
		s.Equal(uint64(2), found.Version)
		s.Equal("regrade", found.UpdateReason)
	})
}

func (s *PostgresStoreSuite) TestFindCertificateMissing() {
	_, err := s.store.FindCertificate(context.Background(), 999999)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCourseNames() {
	ctx := context.Background()
	s.Require().NoError(s.store.SetCourseName(ctx, 1, "Distributed Systems"))
	s.Require().NoError(s.store.SetCourseName(ctx, 1, "Advanced Distributed Systems"))

	name, err := s.store.CourseName(ctx, 1)
	s.Require().NoError(err)
	s.Equal("Advanced Distributed Systems", name)

	name, err = s.store.CourseName(ctx, 424242)
	s.Require().NoError(err)
	s.Empty(name)
}

func (s *PostgresStoreSuite) TestInstitutionRoles() {
	ctx := context.Background()
	granted, err := s.store.IsInstitution(ctx, "0xnew-uni")
	s.Require().NoError(err)
	s.False(granted)

	s.Require().NoError(s.store.SetInstitution(ctx, "0xnew-uni", true))
	granted, err = s.store.IsInstitution(ctx, "0xnew-uni")
	s.Require().NoError(err)
	s.True(granted)

	s.Require().NoError(s.store.SetInstitution(ctx, "0xnew-uni", false))
	granted, err = s.store.IsInstitution(ctx, "0xnew-uni")
	s.Require().NoError(err)
	s.False(granted)
}

func (s *PostgresStoreSuite) TestTransferPolicy() {
	ctx := context.Background()
	enabled, err := s.store.TransferEnabled(ctx)
	s.Require().NoError(err)
	s.True(enabled)

	s.Require().NoError(s.store.SetTransferEnabled(ctx, false))
	enabled, err = s.store.TransferEnabled(ctx)
	s.Require().NoError(err)
	s.False(enabled)

	s.Require().NoError(s.store.SetTransferEnabled(ctx, true))
}
