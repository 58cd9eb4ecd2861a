// Package service implements the certificate registry: the single source of
// truth for certificate records, course names, role assignments and
// transfer policy.
//
// Every mutation is atomic: all preconditions are checked before any state
// changes, a rejected call leaves state untouched, and accepted mutations
// are serialized by a single mutation lock so the registry observes a total
// order. One event is appended to the log per accepted mutation.
//
// Trust model: the Institution capability is deliberately not scoped to
// self-issued certificates. Any institution may verify, update or revoke a
// certificate issued by another institution.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"certledger/internal/registry/metrics"
	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/platform/events"
	"certledger/pkg/platform/sentinel"
	"certledger/pkg/requestcontext"
)

// Store persists registry state. Implementations return sentinel errors
// (pkg/platform/sentinel); the service translates them into coded domain
// errors. The service holds the mutation lock, so stores only need to be
// individually thread-safe, not transactional across calls.
type Store interface {
	// Bootstrap seeds the registry exactly once: admin set, admin granted
	// the institution capability, transfers enabled, ID counter at zero.
	// Subsequent calls are no-ops.
	Bootstrap(ctx context.Context, admin domain.Address) error

	// NextCertificateID allocates the next sequential ID, starting at 1.
	// Allocated IDs are never reused.
	NextCertificateID(ctx context.Context) (domain.CertificateID, error)
	SaveCertificate(ctx context.Context, cert *models.Certificate) error
	FindCertificate(ctx context.Context, id domain.CertificateID) (*models.Certificate, error)

	SetCourseName(ctx context.Context, id domain.CourseID, name string) error
	// CourseName returns "" (and no error) for an unknown course.
	CourseName(ctx context.Context, id domain.CourseID) (string, error)

	Admin(ctx context.Context) (domain.Address, error)
	IsInstitution(ctx context.Context, addr domain.Address) (bool, error)
	SetInstitution(ctx context.Context, addr domain.Address, granted bool) error

	TransferEnabled(ctx context.Context) (bool, error)
	SetTransferEnabled(ctx context.Context, enabled bool) error
}

// Cache is an optional read cache for certificate lookups. Misses are
// signalled with sentinel.ErrNotFound; failures degrade to store reads.
type Cache interface {
	Get(ctx context.Context, id domain.CertificateID) (*models.Certificate, error)
	Set(ctx context.Context, cert *models.Certificate) error
	Invalidate(ctx context.Context, id domain.CertificateID) error
}

// EventPublisher appends one event to the notification log per accepted
// mutation.
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event) error
}

// Service is the certificate registry.
type Service struct {
	store   Store
	cache   Cache
	events  EventPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	// mu serializes mutations: check, allocate, commit and emit happen
	// under it. Reads bypass it entirely.
	mu sync.Mutex
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithCache(cache Cache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.events = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the registry and bootstraps the creator as Admin and
// Institution with transfers enabled.
func New(ctx context.Context, store Store, admin domain.Address, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registry store is required")
	}
	if admin.IsZero() {
		return nil, errors.New("admin address is required")
	}
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("certledger/registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := store.Bootstrap(ctx, admin); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "bootstrap registry")
	}
	return s, nil
}

// IssueCertificate creates a new certificate owned by the student. The ID
// counter only advances on success: every precondition is checked before
// allocation.
func (s *Service) IssueCertificate(ctx context.Context, caller, student domain.Address, courseID domain.CourseID, grade uint64, artifactRef string) (domain.CertificateID, error) {
	ctx, span := s.tracer.Start(ctx, "registry.IssueCertificate")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return 0, s.reject(err)
	}
	if student.IsZero() {
		return 0, s.reject(dErrors.New(dErrors.CodeInvalidArgument, "student identity must not be the zero identity"))
	}
	if artifactRef == "" {
		return 0, s.reject(dErrors.New(dErrors.CodeInvalidArgument, "artifact reference must not be empty"))
	}
	if !courseID.IsValid() {
		return 0, s.reject(dErrors.New(dErrors.CodeInvalidArgument, "course id must be positive"))
	}

	id, err := s.store.NextCertificateID(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "allocate certificate id")
	}
	span.SetAttributes(attribute.Int64("certificate.id", int64(id)))

	now := requestcontext.Now(ctx)
	cert := &models.Certificate{
		ID:             id,
		Owner:          student,
		Issuer:         caller,
		CourseID:       courseID,
		CompletionDate: now,
		Grade:          grade,
		ArtifactRef:    artifactRef,
		Version:        1,
		LastUpdateDate: now,
		UpdateReason:   "Initial issuance",
		Transferable:   true,
	}
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:         events.ActionCertificateIssued,
		Actor:          caller,
		Subject:        student,
		CertificateID:  id,
		CourseID:       courseID,
		Grade:          grade,
		CompletionDate: cert.CompletionDate,
	})
	if s.metrics != nil {
		s.metrics.CertificatesIssued.Inc()
	}
	s.logger.InfoContext(ctx, "certificate issued",
		"certificate_id", uint64(id),
		"issuer", caller.String(),
		"student", student.String(),
		"course_id", int64(courseID),
	)
	return id, nil
}

// VerifyCertificate marks a certificate verified. Verification does not
// touch the version counter.
func (s *Service) VerifyCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID) error {
	ctx, span := s.tracer.Start(ctx, "registry.VerifyCertificate",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return s.reject(err)
	}
	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return s.reject(err)
	}
	if cert.IsRevoked {
		return s.reject(dErrors.New(dErrors.CodeAlreadyRevoked, "certificate is revoked"))
	}
	if cert.IsVerified {
		return s.reject(dErrors.New(dErrors.CodeAlreadyVerified, "certificate is already verified"))
	}

	cert.IsVerified = true
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:        events.ActionCertificateVerified,
		Actor:         caller,
		Subject:       cert.Owner,
		CertificateID: id,
	})
	if s.metrics != nil {
		s.metrics.CertificatesVerified.Inc()
	}
	return nil
}

// UpdateCertificate overwrites the grade of a non-revoked certificate.
// Verified status is irrelevant: a verified certificate may still be
// corrected.
func (s *Service) UpdateCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID, newGrade uint64, reason string) error {
	ctx, span := s.tracer.Start(ctx, "registry.UpdateCertificate",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return s.reject(err)
	}
	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return s.reject(err)
	}
	if cert.IsRevoked {
		return s.reject(dErrors.New(dErrors.CodeAlreadyRevoked, "certificate is revoked"))
	}

	cert.Grade = newGrade
	cert.Version++
	cert.LastUpdateDate = requestcontext.Now(ctx)
	cert.UpdateReason = reason
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:        events.ActionCertificateUpdated,
		Actor:         caller,
		Subject:       cert.Owner,
		CertificateID: id,
		Grade:         newGrade,
		Reason:        reason,
	})
	if s.metrics != nil {
		s.metrics.GradeUpdates.Inc()
	}
	return nil
}

// RevokeCertificate revokes a certificate. Irreversible.
func (s *Service) RevokeCertificate(ctx context.Context, caller domain.Address, id domain.CertificateID, reason string) error {
	ctx, span := s.tracer.Start(ctx, "registry.RevokeCertificate",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return s.reject(err)
	}
	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return s.reject(err)
	}
	if cert.IsRevoked {
		return s.reject(dErrors.New(dErrors.CodeAlreadyRevoked, "certificate is already revoked"))
	}

	cert.IsRevoked = true
	cert.RevocationReason = reason
	cert.Version++
	cert.LastUpdateDate = requestcontext.Now(ctx)
	cert.UpdateReason = "Certificate revoked"
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:        events.ActionCertificateRevoked,
		Actor:         caller,
		Subject:       cert.Owner,
		CertificateID: id,
		Reason:        reason,
	})
	if s.metrics != nil {
		s.metrics.CertificatesRevoked.Inc()
	}
	s.logger.InfoContext(ctx, "certificate revoked",
		"certificate_id", uint64(id),
		"caller", caller.String(),
		"reason", reason,
	)
	return nil
}

// TransferOwnership reassigns the owner field. Only the current holder may
// transfer, both the global and the per-certificate flag must be enabled,
// and the version counter does not move.
func (s *Service) TransferOwnership(ctx context.Context, caller domain.Address, id domain.CertificateID, newOwner domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "registry.TransferOwnership",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return s.reject(err)
	}
	if caller != cert.Owner {
		return s.reject(dErrors.New(dErrors.CodeUnauthorized, "caller is not the current holder"))
	}
	if newOwner.IsZero() {
		return s.reject(dErrors.New(dErrors.CodeInvalidArgument, "new owner must not be the zero identity"))
	}
	enabled, err := s.store.TransferEnabled(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read transfer policy")
	}
	if !enabled {
		return s.reject(dErrors.New(dErrors.CodeTransfersDisabled, "transfers are globally disabled"))
	}
	if !cert.Transferable {
		return s.reject(dErrors.New(dErrors.CodeNotTransferable, "certificate is not transferable"))
	}

	cert.Owner = newOwner
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:        events.ActionOwnershipTransferred,
		Actor:         caller,
		Subject:       newOwner,
		CertificateID: id,
	})
	if s.metrics != nil {
		s.metrics.OwnershipTransfers.Inc()
	}
	return nil
}

// SetCertificateTransferable sets the per-certificate transfer gate. No
// version change.
func (s *Service) SetCertificateTransferable(ctx context.Context, caller domain.Address, id domain.CertificateID, transferable bool) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetCertificateTransferable",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return s.reject(err)
	}
	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return s.reject(err)
	}

	cert.Transferable = transferable
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save certificate")
	}
	s.invalidate(ctx, id)

	s.emit(ctx, events.Event{
		Action:        events.ActionTransferabilityChanged,
		Actor:         caller,
		Subject:       cert.Owner,
		CertificateID: id,
		Enabled:       transferable,
	})
	return nil
}

// SetTransferEnabled sets the global transfer flag. Admin only.
func (s *Service) SetTransferEnabled(ctx context.Context, caller domain.Address, enabled bool) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetTransferEnabled")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return s.reject(err)
	}
	if err := s.store.SetTransferEnabled(ctx, enabled); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save transfer policy")
	}

	s.emit(ctx, events.Event{
		Action:  events.ActionTransferStatusChanged,
		Actor:   caller,
		Enabled: enabled,
	})
	return nil
}

// AuthorizeInstitution grants the institution capability. Admin only.
func (s *Service) AuthorizeInstitution(ctx context.Context, caller, institution domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "registry.AuthorizeInstitution")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return s.reject(err)
	}
	if institution.IsZero() {
		return s.reject(dErrors.New(dErrors.CodeInvalidArgument, "institution identity must not be the zero identity"))
	}
	granted, err := s.store.IsInstitution(ctx, institution)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read institution set")
	}
	if granted {
		return s.reject(dErrors.New(dErrors.CodeAlreadyAuthorized, "identity already holds the institution capability"))
	}
	if err := s.store.SetInstitution(ctx, institution, true); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save institution set")
	}

	s.emit(ctx, events.Event{
		Action:  events.ActionInstitutionAuthorized,
		Actor:   caller,
		Subject: institution,
	})
	return nil
}

// RevokeInstitution withdraws the institution capability. Admin only.
func (s *Service) RevokeInstitution(ctx context.Context, caller, institution domain.Address) error {
	ctx, span := s.tracer.Start(ctx, "registry.RevokeInstitution")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return s.reject(err)
	}
	granted, err := s.store.IsInstitution(ctx, institution)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read institution set")
	}
	if !granted {
		return s.reject(dErrors.New(dErrors.CodeNotAuthorized, "identity does not hold the institution capability"))
	}
	if err := s.store.SetInstitution(ctx, institution, false); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save institution set")
	}

	s.emit(ctx, events.Event{
		Action:  events.ActionInstitutionRevoked,
		Actor:   caller,
		Subject: institution,
	})
	return nil
}

// SetCourseName idempotently overwrites the course display name.
func (s *Service) SetCourseName(ctx context.Context, caller domain.Address, courseID domain.CourseID, name string) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetCourseName")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInstitution(ctx, caller); err != nil {
		return s.reject(err)
	}
	if !courseID.IsValid() {
		return s.reject(dErrors.New(dErrors.CodeInvalidArgument, "course id must be positive"))
	}
	if name == "" {
		return s.reject(dErrors.New(dErrors.CodeInvalidArgument, "course name must not be empty"))
	}
	if err := s.store.SetCourseName(ctx, courseID, name); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save course name")
	}

	s.emit(ctx, events.Event{
		Action:     events.ActionCourseNameSet,
		Actor:      caller,
		CourseID:   courseID,
		CourseName: name,
	})
	return nil
}

// GetCertificate returns a certificate by ID. Read-only; never blocks
// behind mutations.
func (s *Service) GetCertificate(ctx context.Context, id domain.CertificateID) (*models.Certificate, error) {
	ctx, span := s.tracer.Start(ctx, "registry.GetCertificate",
		trace.WithAttributes(attribute.Int64("certificate.id", int64(id))))
	defer span.End()

	if s.cache != nil {
		if cert, err := s.cache.Get(ctx, id); err == nil {
			return cert, nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "certificate cache read failed",
				"certificate_id", uint64(id),
				"error", err.Error(),
			)
		}
	}

	cert, err := s.findCertificate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cert); err != nil {
			s.logger.WarnContext(ctx, "certificate cache fill failed",
				"certificate_id", uint64(id),
				"error", err.Error(),
			)
		}
	}
	return cert, nil
}

// GetCourseName returns the display name for a course, or "" when the
// course has never been named. Never fails for unknown IDs.
func (s *Service) GetCourseName(ctx context.Context, courseID domain.CourseID) (string, error) {
	name, err := s.store.CourseName(ctx, courseID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "read course name")
	}
	return name, nil
}

// TransferEnabled reports the global transfer flag.
func (s *Service) TransferEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.store.TransferEnabled(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "read transfer policy")
	}
	return enabled, nil
}

// IsInstitution reports whether the identity holds the institution
// capability.
func (s *Service) IsInstitution(ctx context.Context, addr domain.Address) (bool, error) {
	granted, err := s.store.IsInstitution(ctx, addr)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "read institution set")
	}
	return granted, nil
}

func (s *Service) requireInstitution(ctx context.Context, caller domain.Address) error {
	granted, err := s.store.IsInstitution(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read institution set")
	}
	if !granted {
		return dErrors.New(dErrors.CodeUnauthorized, "caller lacks the institution capability")
	}
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, caller domain.Address) error {
	admin, err := s.store.Admin(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "read admin")
	}
	if caller != admin {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the registry admin")
	}
	return nil
}

func (s *Service) findCertificate(ctx context.Context, id domain.CertificateID) (*models.Certificate, error) {
	cert, err := s.store.FindCertificate(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load certificate")
	}
	return cert, nil
}

// emit appends the event to the notification log. The mutation has already
// committed, so a log failure is surfaced in logs but does not undo it.
func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "event emission failed",
			"action", string(event.Action),
			"certificate_id", uint64(event.CertificateID),
			"error", err.Error(),
		)
	}
}

// reject counts a precondition failure and passes it through unchanged.
func (s *Service) reject(err error) error {
	s.metrics.IncRejected(string(dErrors.CodeOf(err)))
	return err
}

func (s *Service) invalidate(ctx context.Context, id domain.CertificateID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "certificate cache invalidation failed",
			"certificate_id", uint64(id),
			"error", err.Error(),
		)
	}
}
