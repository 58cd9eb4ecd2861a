package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"certledger/internal/registry/models"
	"certledger/pkg/domain"
	"certledger/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
	s.Require().NoError(s.store.Bootstrap(s.ctx, "0xadmin"))
}

func (s *MemoryStoreSuite) TestBootstrap() {
	s.Run("seeds admin as institution with transfers enabled", func() {
		admin, err := s.store.Admin(s.ctx)
		s.Require().NoError(err)
		s.Equal(domain.Address("0xadmin"), admin)

		granted, err := s.store.IsInstitution(s.ctx, "0xadmin")
		s.Require().NoError(err)
		s.True(granted)

		enabled, err := s.store.TransferEnabled(s.ctx)
		s.Require().NoError(err)
		s.True(enabled)
	})

	s.Run("second bootstrap is a no-op", func() {
		s.Require().NoError(s.store.SetTransferEnabled(s.ctx, false))
		s.Require().NoError(s.store.Bootstrap(s.ctx, "0xother"))

		admin, err := s.store.Admin(s.ctx)
		s.Require().NoError(err)
		s.Equal(domain.Address("0xadmin"), admin)

		enabled, err := s.store.TransferEnabled(s.ctx)
		s.Require().NoError(err)
		s.False(enabled)
	})
}

func (s *MemoryStoreSuite) TestNextCertificateIDIsSequential() {
	for want := uint64(1); want <= 5; want++ {
		id, err := s.store.NextCertificateID(s.ctx)
		s.Require().NoError(err)
		s.Equal(domain.CertificateID(want), id)
	}
}

func (s *MemoryStoreSuite) TestSaveAndFindCertificate() {
	cert := &models.Certificate{ID: 1, Owner: "0xstudent", Issuer: "0xadmin", CourseID: 7, Grade: 88, Version: 1, Transferable: true}
	s.Require().NoError(s.store.SaveCertificate(s.ctx, cert))

	found, err := s.store.FindCertificate(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(*cert, *found)

	// Mutating the returned copy must not touch stored state.
	found.Grade = 11
	again, err := s.store.FindCertificate(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(uint64(88), again.Grade)
}

func (s *MemoryStoreSuite) TestFindMissingCertificate() {
	_, err := s.store.FindCertificate(s.ctx, 404)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestCourseNames() {
	name, err := s.store.CourseName(s.ctx, 999)
	s.Require().NoError(err)
	s.Empty(name, "unknown course resolves to empty string")

	s.Require().NoError(s.store.SetCourseName(s.ctx, 1, "Distributed Systems"))
	s.Require().NoError(s.store.SetCourseName(s.ctx, 1, "Distributed Systems II"))

	name, err = s.store.CourseName(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Distributed Systems II", name)
}

func (s *MemoryStoreSuite) TestInstitutionSet() {
	granted, err := s.store.IsInstitution(s.ctx, "0xuni")
	s.Require().NoError(err)
	s.False(granted)

	s.Require().NoError(s.store.SetInstitution(s.ctx, "0xuni", true))
	granted, err = s.store.IsInstitution(s.ctx, "0xuni")
	s.Require().NoError(err)
	s.True(granted)

	s.Require().NoError(s.store.SetInstitution(s.ctx, "0xuni", false))
	granted, err = s.store.IsInstitution(s.ctx, "0xuni")
	s.Require().NoError(err)
	s.False(granted)
}
