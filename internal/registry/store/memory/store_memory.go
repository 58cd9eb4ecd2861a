// Package memory provides the in-memory registry store. It favors clarity
// over performance and backs unit tests and single-node deployments.
package memory

import (
	"context"
	"sync"

	"certledger/internal/registry/models"
	"certledger/pkg/domain"
	"certledger/pkg/platform/sentinel"
)

type Store struct {
	mu           sync.RWMutex
	certificates map[domain.CertificateID]models.Certificate
	courses      map[domain.CourseID]string
	institutions map[domain.Address]bool

	admin           domain.Address
	transferEnabled bool
	nextID          uint64
	bootstrapped    bool
}

func New() *Store {
	return &Store{
		certificates: make(map[domain.CertificateID]models.Certificate),
		courses:      make(map[domain.CourseID]string),
		institutions: make(map[domain.Address]bool),
	}
}

func (s *Store) Bootstrap(_ context.Context, admin domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bootstrapped {
		return nil
	}
	s.admin = admin
	s.institutions[admin] = true
	s.transferEnabled = true
	s.nextID = 0
	s.bootstrapped = true
	return nil
}

func (s *Store) NextCertificateID(_ context.Context) (domain.CertificateID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return domain.CertificateID(s.nextID), nil
}

func (s *Store) SaveCertificate(_ context.Context, cert *models.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certificates[cert.ID] = *cert
	return nil
}

func (s *Store) FindCertificate(_ context.Context, id domain.CertificateID) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cert, ok := s.certificates[id]; ok {
		// Copy out so callers can mutate freely before saving.
		return &cert, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) SetCourseName(_ context.Context, id domain.CourseID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[id] = name
	return nil
}

func (s *Store) CourseName(_ context.Context, id domain.CourseID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses[id], nil
}

func (s *Store) Admin(_ context.Context) (domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin, nil
}

func (s *Store) IsInstitution(_ context.Context, addr domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.institutions[addr], nil
}

func (s *Store) SetInstitution(_ context.Context, addr domain.Address, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if granted {
		s.institutions[addr] = true
	} else {
		delete(s.institutions, addr)
	}
	return nil
}

func (s *Store) TransferEnabled(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transferEnabled, nil
}

func (s *Store) SetTransferEnabled(_ context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transferEnabled = enabled
	return nil
}
