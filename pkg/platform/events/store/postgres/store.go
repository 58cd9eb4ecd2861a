// Package postgres persists registry events in an outbox table.
//
// Events are written in the same database as the registry state and drained
// to downstream consumers; the table is the durable log the registry's
// exactly-once contract refers to.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"certledger/pkg/domain"
	"certledger/pkg/platform/events"
)

// Store implements events.Store on database/sql. The caller owns the *sql.DB
// and driver registration (lib/pq in cmd/server).
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// payload is the JSON body stored per event and published downstream.
// Field names are stable: consumers deserialize by name.
type payload struct {
	ID             string `json:"id"`
	Action         string `json:"action"`
	Category       string `json:"category"`
	Timestamp      string `json:"timestamp"`
	Actor          string `json:"actor,omitempty"`
	Subject        string `json:"subject,omitempty"`
	CertificateID  uint64 `json:"certificate_id,omitempty"`
	CourseID       int64  `json:"course_id,omitempty"`
	Grade          uint64 `json:"grade,omitempty"`
	CompletionDate string `json:"completion_date,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Enabled        bool   `json:"enabled"`
	CourseName     string `json:"course_name,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
	ClientIP       string `json:"client_ip,omitempty"`
	Device         string `json:"device,omitempty"`
}

// EnsureSchema creates the outbox table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registry_events (
	id UUID PRIMARY KEY,
	action TEXT NOT NULL,
	category TEXT NOT NULL,
	certificate_id BIGINT NOT NULL DEFAULT 0,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS registry_events_certificate_idx
	ON registry_events (certificate_id, created_at);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure registry_events schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event events.Event) error {
	eventID := uuid.New()
	body := payload{
		ID:         eventID.String(),
		Action:     string(event.Action),
		Category:   string(event.Action.Category()),
		Timestamp:  event.Timestamp.Format(time.RFC3339Nano),
		Actor:      event.Actor.String(),
		Subject:    event.Subject.String(),
		Grade:      event.Grade,
		Reason:     event.Reason,
		Enabled:    event.Enabled,
		CourseName: event.CourseName,
		RequestID:  event.RequestID,
		ClientIP:   event.ClientIP,
		Device:     event.Device,
	}
	if event.CertificateID.IsValid() {
		body.CertificateID = uint64(event.CertificateID)
	}
	if event.CourseID.IsValid() {
		body.CourseID = int64(event.CourseID)
	}
	if !event.CompletionDate.IsZero() {
		body.CompletionDate = event.CompletionDate.Format(time.RFC3339Nano)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO registry_events (id, action, category, certificate_id, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		eventID, string(event.Action), string(event.Action.Category()),
		int64(event.CertificateID), raw, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append registry event: %w", err)
	}
	return nil
}

func (s *Store) ListByCertificate(ctx context.Context, id domain.CertificateID) ([]events.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM registry_events WHERE certificate_id = $1 ORDER BY created_at`,
		int64(id),
	)
	if err != nil {
		return nil, fmt.Errorf("list events by certificate: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *Store) List(ctx context.Context) ([]events.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM registry_events ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]events.Event, error) {
	var out []events.Event
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan event payload: %w", err)
		}
		var body payload
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("unmarshal event payload: %w", err)
		}
		out = append(out, toEvent(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func toEvent(body payload) events.Event {
	event := events.Event{
		Action:        events.Action(body.Action),
		Actor:         domain.Address(body.Actor),
		Subject:       domain.Address(body.Subject),
		CertificateID: domain.CertificateID(body.CertificateID),
		CourseID:      domain.CourseID(body.CourseID),
		Grade:         body.Grade,
		Reason:        body.Reason,
		Enabled:       body.Enabled,
		CourseName:    body.CourseName,
		RequestID:     body.RequestID,
		ClientIP:      body.ClientIP,
		Device:        body.Device,
	}
	if ts, err := time.Parse(time.RFC3339Nano, body.Timestamp); err == nil {
		event.Timestamp = ts
	}
	if body.CompletionDate != "" {
		if ts, err := time.Parse(time.RFC3339Nano, body.CompletionDate); err == nil {
			event.CompletionDate = ts
		}
	}
	return event
}
