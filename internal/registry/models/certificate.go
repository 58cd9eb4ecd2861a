// Package models holds the certificate registry's record types.
package models

import (
	"time"

	"certledger/pkg/domain"
)

// Certificate is one academic-record entry. ID, Issuer, CompletionDate and
// ArtifactRef never change after issuance; IsVerified and IsRevoked are
// one-way false→true; Version increases by exactly 1 per accepted grade
// update or revocation and never moves on verification or transfer.
type Certificate struct {
	ID             domain.CertificateID
	Owner          domain.Address
	Issuer         domain.Address
	CourseID       domain.CourseID
	CompletionDate time.Time
	// Grade is intentionally unbounded: display bucketing into letter
	// grades is a consumer concern.
	Grade            uint64
	IsVerified       bool
	IsRevoked        bool
	ArtifactRef      string
	RevocationReason string
	Version          uint64
	LastUpdateDate   time.Time
	UpdateReason     string
	Transferable     bool
}

// Active reports whether lifecycle mutations (verify, grade update) are
// still permitted.
func (c Certificate) Active() bool {
	return !c.IsRevoked
}

// Course maps a caller-chosen positive ID to a display name. Courses have no
// versioning: setting a name overwrites the previous one.
type Course struct {
	ID   domain.CourseID
	Name string
}
