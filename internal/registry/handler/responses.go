package handler

import (
	"time"

	"certledger/internal/registry/models"
)

// IssueResponse is the HTTP response for POST /certificates.
type IssueResponse struct {
	CertificateID uint64 `json:"certificate_id"`
}

// StatusResponse acknowledges a lifecycle mutation.
type StatusResponse struct {
	Status string `json:"status"`
}

// CertificateResponse is the HTTP representation of a certificate record.
type CertificateResponse struct {
	ID               uint64    `json:"id"`
	Owner            string    `json:"owner"`
	Issuer           string    `json:"issuer"`
	CourseID         int64     `json:"course_id"`
	CompletionDate   time.Time `json:"completion_date"`
	Grade            uint64    `json:"grade"`
	IsVerified       bool      `json:"is_verified"`
	IsRevoked        bool      `json:"is_revoked"`
	ArtifactRef      string    `json:"artifact_ref"`
	RevocationReason string    `json:"revocation_reason,omitempty"`
	Version          uint64    `json:"version"`
	LastUpdateDate   time.Time `json:"last_update_date"`
	UpdateReason     string    `json:"update_reason"`
	Transferable     bool      `json:"transferable"`
}

// FromCertificate converts a certificate record to its HTTP representation.
func FromCertificate(cert *models.Certificate) *CertificateResponse {
	return &CertificateResponse{
		ID:               uint64(cert.ID),
		Owner:            string(cert.Owner),
		Issuer:           string(cert.Issuer),
		CourseID:         int64(cert.CourseID),
		CompletionDate:   cert.CompletionDate,
		Grade:            cert.Grade,
		IsVerified:       cert.IsVerified,
		IsRevoked:        cert.IsRevoked,
		ArtifactRef:      cert.ArtifactRef,
		RevocationReason: cert.RevocationReason,
		Version:          cert.Version,
		LastUpdateDate:   cert.LastUpdateDate,
		UpdateReason:     cert.UpdateReason,
		Transferable:     cert.Transferable,
	}
}

// TransferableResponse is the HTTP response for PUT /certificates/{id}/transferable.
type TransferableResponse struct {
	Transferable bool `json:"transferable"`
}

// TransferPolicyResponse is the HTTP response for the transfer policy endpoints.
type TransferPolicyResponse struct {
	Enabled bool `json:"enabled"`
}

// InstitutionResponse is the HTTP response for the institution endpoints.
type InstitutionResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}

// CourseResponse is the HTTP response for the course endpoints.
type CourseResponse struct {
	CourseID int64  `json:"course_id"`
	Name     string `json:"name"`
}
