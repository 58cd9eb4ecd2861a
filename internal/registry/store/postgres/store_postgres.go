// Package postgres implements the registry store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"certledger/internal/registry/models"
	"certledger/pkg/domain"
	"certledger/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS registry_state (
	singleton           BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	admin_address       TEXT    NOT NULL,
	transfers_enabled   BOOLEAN NOT NULL DEFAULT TRUE,
	next_certificate_id BIGINT  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS certificates (
	id                BIGINT PRIMARY KEY,
	owner_address     TEXT        NOT NULL,
	issuer_address    TEXT        NOT NULL,
	course_id         BIGINT      NOT NULL,
	completion_date   TIMESTAMPTZ NOT NULL,
	grade             BIGINT      NOT NULL,
	is_verified       BOOLEAN     NOT NULL DEFAULT FALSE,
	is_revoked        BOOLEAN     NOT NULL DEFAULT FALSE,
	artifact_ref      TEXT        NOT NULL,
	revocation_reason TEXT        NOT NULL DEFAULT '',
	version           BIGINT      NOT NULL,
	last_update_date  TIMESTAMPTZ NOT NULL,
	update_reason     TEXT        NOT NULL,
	transferable      BOOLEAN     NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_certificates_owner ON certificates (owner_address);

CREATE TABLE IF NOT EXISTS courses (
	id   BIGINT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS registry_roles (
	address    TEXT PRIMARY KEY,
	granted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store persists registry state in PostgreSQL. The service serializes
// mutations, so statements here only need per-call atomicity.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a PostgreSQL-backed registry store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the registry tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure registry schema: %w", err)
	}
	return nil
}

func (s *Store) Bootstrap(ctx context.Context, admin domain.Address) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO registry_state (singleton, admin_address)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO NOTHING`, string(admin))
	if err != nil {
		return fmt.Errorf("bootstrap registry state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO registry_roles (address) VALUES ($1)
		ON CONFLICT (address) DO NOTHING`, string(admin))
	if err != nil {
		return fmt.Errorf("bootstrap admin role: %w", err)
	}
	return nil
}

func (s *Store) NextCertificateID(ctx context.Context) (domain.CertificateID, error) {
	var next int64
	err := s.pool.QueryRow(ctx, `
		UPDATE registry_state
		SET next_certificate_id = next_certificate_id + 1
		RETURNING next_certificate_id`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate certificate id: %w", err)
	}
	return domain.CertificateID(next), nil
}

func (s *Store) SaveCertificate(ctx context.Context, cert *models.Certificate) error {
	if cert == nil {
		return fmt.Errorf("certificate is required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO certificates (
			id, owner_address, issuer_address, course_id, completion_date,
			grade, is_verified, is_revoked, artifact_ref, revocation_reason,
			version, last_update_date, update_reason, transferable
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			owner_address     = EXCLUDED.owner_address,
			grade             = EXCLUDED.grade,
			is_verified       = EXCLUDED.is_verified,
			is_revoked        = EXCLUDED.is_revoked,
			revocation_reason = EXCLUDED.revocation_reason,
			version           = EXCLUDED.version,
			last_update_date  = EXCLUDED.last_update_date,
			update_reason     = EXCLUDED.update_reason,
			transferable      = EXCLUDED.transferable`,
		int64(cert.ID), string(cert.Owner), string(cert.Issuer), int64(cert.CourseID),
		cert.CompletionDate, int64(cert.Grade), cert.IsVerified, cert.IsRevoked,
		cert.ArtifactRef, cert.RevocationReason, int64(cert.Version),
		cert.LastUpdateDate, cert.UpdateReason, cert.Transferable)
	if err != nil {
		return fmt.Errorf("save certificate %d: %w", cert.ID, err)
	}
	return nil
}

func (s *Store) FindCertificate(ctx context.Context, id domain.CertificateID) (*models.Certificate, error) {
	var (
		cert    models.Certificate
		certID  int64
		owner   string
		issuer  string
		course  int64
		grade   int64
		version int64
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_address, issuer_address, course_id, completion_date,
			grade, is_verified, is_revoked, artifact_ref, revocation_reason,
			version, last_update_date, update_reason, transferable
		FROM certificates WHERE id = $1`, int64(id)).Scan(
		&certID, &owner, &issuer, &course, &cert.CompletionDate,
		&grade, &cert.IsVerified, &cert.IsRevoked, &cert.ArtifactRef,
		&cert.RevocationReason, &version, &cert.LastUpdateDate,
		&cert.UpdateReason, &cert.Transferable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate %d: %w", id, err)
	}
	cert.ID = domain.CertificateID(certID)
	cert.Owner = domain.Address(owner)
	cert.Issuer = domain.Address(issuer)
	cert.CourseID = domain.CourseID(course)
	cert.Grade = uint64(grade)
	cert.Version = uint64(version)
	return &cert, nil
}

func (s *Store) SetCourseName(ctx context.Context, id domain.CourseID, name string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO courses (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, int64(id), name)
	if err != nil {
		return fmt.Errorf("set course name %d: %w", id, err)
	}
	return nil
}

func (s *Store) CourseName(ctx context.Context, id domain.CourseID) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, `SELECT name FROM courses WHERE id = $1`, int64(id)).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find course name %d: %w", id, err)
	}
	return name, nil
}

func (s *Store) Admin(ctx context.Context) (domain.Address, error) {
	var admin string
	err := s.pool.QueryRow(ctx, `SELECT admin_address FROM registry_state`).Scan(&admin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ZeroAddress, sentinel.ErrInvalidState
		}
		return domain.ZeroAddress, fmt.Errorf("find admin: %w", err)
	}
	return domain.Address(admin), nil
}

func (s *Store) IsInstitution(ctx context.Context, addr domain.Address) (bool, error) {
	var granted bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM registry_roles WHERE address = $1)`,
		string(addr)).Scan(&granted)
	if err != nil {
		return false, fmt.Errorf("check institution role: %w", err)
	}
	return granted, nil
}

func (s *Store) SetInstitution(ctx context.Context, addr domain.Address, granted bool) error {
	var err error
	if granted {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO registry_roles (address) VALUES ($1)
			ON CONFLICT (address) DO NOTHING`, string(addr))
	} else {
		_, err = s.pool.Exec(ctx, `DELETE FROM registry_roles WHERE address = $1`, string(addr))
	}
	if err != nil {
		return fmt.Errorf("set institution role: %w", err)
	}
	return nil
}

func (s *Store) TransferEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := s.pool.QueryRow(ctx, `SELECT transfers_enabled FROM registry_state`).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, sentinel.ErrInvalidState
		}
		return false, fmt.Errorf("find transfer policy: %w", err)
	}
	return enabled, nil
}

func (s *Store) SetTransferEnabled(ctx context.Context, enabled bool) error {
	_, err := s.pool.Exec(ctx, `UPDATE registry_state SET transfers_enabled = $1`, enabled)
	if err != nil {
		return fmt.Errorf("set transfer policy: %w", err)
	}
	return nil
}
