// Package events defines the registry's notification model.
//
// The registry's contract is "one event is appended to the log exactly once
// per accepted mutation, synchronous with the commit". Delivery beyond the
// log (subscriber channels, Kafka) is a consumer concern and best-effort.
package events

import (
	"context"
	"time"

	"certledger/pkg/domain"
)

// Action names the registry mutation that produced an event.
type Action string

const (
	ActionCertificateIssued      Action = "certificate_issued"
	ActionCertificateVerified    Action = "certificate_verified"
	ActionCertificateUpdated     Action = "certificate_updated"
	ActionCertificateRevoked     Action = "certificate_revoked"
	ActionOwnershipTransferred   Action = "ownership_transferred"
	ActionTransferabilityChanged Action = "certificate_transferability_changed"
	ActionTransferStatusChanged  Action = "transfer_status_changed"
	ActionInstitutionAuthorized  Action = "institution_authorized"
	ActionInstitutionRevoked     Action = "institution_revoked"
	ActionCourseNameSet          Action = "course_name_set"
)

// Category classifies events by their primary purpose. Compliance events
// need long retention; operations events can be sampled.
type Category string

const (
	CategoryCompliance Category = "compliance"
	CategoryOperations Category = "operations"
)

var actionCategories = map[Action]Category{
	ActionCertificateIssued:      CategoryCompliance,
	ActionCertificateVerified:    CategoryCompliance,
	ActionCertificateUpdated:     CategoryCompliance,
	ActionCertificateRevoked:     CategoryCompliance,
	ActionOwnershipTransferred:   CategoryCompliance,
	ActionInstitutionAuthorized:  CategoryCompliance,
	ActionInstitutionRevoked:     CategoryCompliance,
	ActionTransferabilityChanged: CategoryOperations,
	ActionTransferStatusChanged:  CategoryOperations,
	ActionCourseNameSet:          CategoryOperations,
}

// Category returns the retention category for the action. Unknown actions
// default to operations.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is emitted from registry logic to capture an accepted mutation.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	// Actor is the caller that performed the operation.
	Actor domain.Address `json:"actor"`
	// Subject is the identity affected by the operation: the student on
	// issuance, the new holder on transfer, the institution on role changes.
	Subject domain.Address `json:"subject,omitempty"`

	CertificateID  domain.CertificateID `json:"certificate_id,omitempty"`
	CourseID       domain.CourseID      `json:"course_id,omitempty"`
	Grade          uint64               `json:"grade,omitempty"`
	CompletionDate time.Time            `json:"completion_date,omitzero"`
	Reason         string               `json:"reason,omitempty"`
	// Enabled carries the new flag state for transferability and global
	// transfer policy events.
	Enabled    bool   `json:"enabled,omitempty"`
	CourseName string `json:"course_name,omitempty"`

	// Request metadata for audit consumers.
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Device    string `json:"device,omitempty"`
}

// Store is an append-only event log.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCertificate(ctx context.Context, id domain.CertificateID) ([]Event, error)
	List(ctx context.Context) ([]Event, error)
}
