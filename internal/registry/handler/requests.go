package handler

import (
	"strings"

	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
)

// IssueRequest is the HTTP request body for POST /certificates.
type IssueRequest struct {
	Student     string `json:"student"`
	CourseID    int64  `json:"course_id"`
	Grade       uint64 `json:"grade"`
	ArtifactRef string `json:"artifact_ref"`
}

// Validate normalizes and checks the issuance request. Capability and
// counter checks stay in the service; this only rejects structurally
// unusable input.
func (r *IssueRequest) Validate() error {
	r.Student = strings.TrimSpace(r.Student)
	if domain.Address(r.Student).IsZero() {
		return dErrors.New(dErrors.CodeInvalidArgument, "student address is required")
	}
	r.ArtifactRef = strings.TrimSpace(r.ArtifactRef)
	if r.ArtifactRef == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "artifact_ref is required")
	}
	if !domain.CourseID(r.CourseID).IsValid() {
		return dErrors.New(dErrors.CodeInvalidArgument, "course_id must be positive")
	}
	return nil
}

// UpdateRequest is the HTTP request body for POST /certificates/{id}/update.
type UpdateRequest struct {
	Grade  uint64 `json:"grade"`
	Reason string `json:"reason"`
}

func (r *UpdateRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}

// RevokeRequest is the HTTP request body for POST /certificates/{id}/revoke.
type RevokeRequest struct {
	Reason string `json:"reason"`
}

func (r *RevokeRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}

// TransferRequest is the HTTP request body for POST /certificates/{id}/transfer.
type TransferRequest struct {
	NewOwner string `json:"new_owner"`
}

func (r *TransferRequest) Validate() error {
	r.NewOwner = strings.TrimSpace(r.NewOwner)
	if domain.Address(r.NewOwner).IsZero() {
		return dErrors.New(dErrors.CodeInvalidArgument, "new_owner address is required")
	}
	return nil
}

// TransferableRequest is the HTTP request body for
// PUT /certificates/{id}/transferable. The flag is a pointer so an omitted
// field is distinguishable from an explicit false.
type TransferableRequest struct {
	Transferable *bool `json:"transferable"`
}

func (r *TransferableRequest) Validate() error {
	if r.Transferable == nil {
		return dErrors.New(dErrors.CodeBadRequest, "transferable is required")
	}
	return nil
}

// TransferPolicyRequest is the HTTP request body for PUT /policy/transfers.
type TransferPolicyRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r *TransferPolicyRequest) Validate() error {
	if r.Enabled == nil {
		return dErrors.New(dErrors.CodeBadRequest, "enabled is required")
	}
	return nil
}

// InstitutionRequest is the HTTP request body for POST /institutions.
type InstitutionRequest struct {
	Address string `json:"address"`
}

func (r *InstitutionRequest) Validate() error {
	r.Address = strings.TrimSpace(r.Address)
	if domain.Address(r.Address).IsZero() {
		return dErrors.New(dErrors.CodeInvalidArgument, "institution address is required")
	}
	return nil
}

// CourseRequest is the HTTP request body for PUT /courses/{id}.
type CourseRequest struct {
	Name string `json:"name"`
}

func (r *CourseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "course name is required")
	}
	return nil
}
