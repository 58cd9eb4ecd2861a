// Package handler wires the certificate registry to HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/platform/httputil"
	"certledger/pkg/requestcontext"
)

// Service defines the registry operations the handler exposes.
type Service interface {
	IssueCertificate(ctx context.Context, caller, student domain.Address, courseID domain.CourseID, grade uint64, artifactRef string) (domain.CertificateID, error)
	VerifyCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID) error
	UpdateCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID, newGrade uint64, reason string) error
	RevokeCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID, reason string) error
	TransferOwnership(ctx context.Context, caller domain.Address, id domain.CertificateID, newOwner domain.Address) error
	SetCertificateTransferable(ctx context.Context, caller domain.Address, id domain.CertificateID, transferable bool) error
	SetTransferEnabled(ctx context.Context, caller domain.Address, enabled bool) error
	AuthorizeInstitution(ctx context.Context, caller, institution domain.Address) error
	RevokeInstitution(ctx context.Context, caller, institution domain.Address) error
	SetCourseName(ctx context.Context, caller domain.Address, courseID domain.CourseID, name string) error
	GetCertificate(ctx context.Context, id domain.CertificateID) (*models.Certificate, error)
	GetCourseName(ctx context.Context, courseID domain.CourseID) (string, error)
	TransferEnabled(ctx context.Context) (bool, error)
	IsInstitution(ctx context.Context, addr domain.Address) (bool, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router. The router group must
// already enforce authentication: every handler reads the caller identity
// from the request context.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certificates", h.HandleIssue)
	r.Get("/certificates/{id}", h.HandleGet)
	r.Post("/certificates/{id}/verify", h.HandleVerify)
	r.Post("/certificates/{id}/update", h.HandleUpdate)
	r.Post("/certificates/{id}/revoke", h.HandleRevoke)
	r.Post("/certificates/{id}/transfer", h.HandleTransfer)
	r.Put("/certificates/{id}/transferable", h.HandleSetTransferable)

	r.Get("/policy/transfers", h.HandleGetTransferPolicy)
	r.Put("/policy/transfers", h.HandleSetTransferPolicy)

	r.Post("/institutions", h.HandleAuthorizeInstitution)
	r.Delete("/institutions/{address}", h.HandleRevokeInstitution)
	r.Get("/institutions/{address}", h.HandleGetInstitution)

	r.Put("/courses/{id}", h.HandleSetCourseName)
	r.Get("/courses/{id}", h.HandleGetCourseName)
}

// HandleIssue handles POST /certificates requests.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	var req IssueRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	start := time.Now()
	id, err := h.service.IssueCertificate(ctx, caller, domain.Address(req.Student), domain.CourseID(req.CourseID), req.Grade, req.ArtifactRef)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "certificate issued",
		"request_id", requestcontext.RequestID(ctx),
		"certificate_id", uint64(id),
		"issuer", string(caller),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{CertificateID: uint64(id)})
}

// HandleGet handles GET /certificates/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	cert, err := h.service.GetCertificate(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCertificate(cert))
}

// HandleVerify handles POST /certificates/{id}/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	if err := h.service.VerifyCertificate(ctx, caller, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{Status: "verified"})
}

// HandleUpdate handles POST /certificates/{id}/update requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateCertificate(ctx, caller, id, req.Grade, req.Reason); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// HandleRevoke handles POST /certificates/{id}/revoke requests.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	var req RevokeRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.RevokeCertificate(ctx, caller, id, req.Reason); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{Status: "revoked"})
}

// HandleTransfer handles POST /certificates/{id}/transfer requests.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	var req TransferRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.TransferOwnership(ctx, caller, id, domain.Address(req.NewOwner)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{Status: "transferred"})
}

// HandleSetTransferable handles PUT /certificates/{id}/transferable requests.
func (h *Handler) HandleSetTransferable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	var req TransferableRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetCertificateTransferable(ctx, caller, id, *req.Transferable); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferableResponse{Transferable: *req.Transferable})
}

// HandleGetTransferPolicy handles GET /policy/transfers requests.
func (h *Handler) HandleGetTransferPolicy(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.service.TransferEnabled(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferPolicyResponse{Enabled: enabled})
}

// HandleSetTransferPolicy handles PUT /policy/transfers requests.
func (h *Handler) HandleSetTransferPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	var req TransferPolicyRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetTransferEnabled(ctx, caller, *req.Enabled); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferPolicyResponse{Enabled: *req.Enabled})
}

// HandleAuthorizeInstitution handles POST /institutions requests.
func (h *Handler) HandleAuthorizeInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	var req InstitutionRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.AuthorizeInstitution(ctx, caller, domain.Address(req.Address)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, InstitutionResponse{Address: req.Address, Authorized: true})
}

// HandleRevokeInstitution handles DELETE /institutions/{address} requests.
func (h *Handler) HandleRevokeInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}

	addr := domain.Address(chi.URLParam(r, "address"))
	if err := h.service.RevokeInstitution(ctx, caller, addr); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, InstitutionResponse{Address: string(addr), Authorized: false})
}

// HandleGetInstitution handles GET /institutions/{address} requests.
func (h *Handler) HandleGetInstitution(w http.ResponseWriter, r *http.Request) {
	addr := domain.Address(chi.URLParam(r, "address"))
	authorized, err := h.service.IsInstitution(r.Context(), addr)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, InstitutionResponse{Address: string(addr), Authorized: authorized})
}

// HandleSetCourseName handles PUT /courses/{id} requests.
func (h *Handler) HandleSetCourseName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.courseID(w, r)
	if !ok {
		return
	}

	var req CourseRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetCourseName(ctx, caller, id, req.Name); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CourseResponse{CourseID: int64(id), Name: req.Name})
}

// HandleGetCourseName handles GET /courses/{id} requests. An unknown course
// returns an empty name rather than 404, matching the registry contract.
func (h *Handler) HandleGetCourseName(w http.ResponseWriter, r *http.Request) {
	id, ok := h.courseID(w, r)
	if !ok {
		return
	}

	name, err := h.service.GetCourseName(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CourseResponse{CourseID: int64(id), Name: name})
}

func (h *Handler) requireCaller(w http.ResponseWriter, ctx context.Context) (domain.Address, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthenticated, "authentication required"))
		return domain.ZeroAddress, false
	}
	return caller, true
}

func (h *Handler) certificateID(w http.ResponseWriter, r *http.Request) (domain.CertificateID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "certificate id must be a positive integer"))
		return 0, false
	}
	return domain.CertificateID(id), true
}

func (h *Handler) courseID(w http.ResponseWriter, r *http.Request) (domain.CourseID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "course id must be an integer"))
		return 0, false
	}
	return domain.CourseID(id), true
}
