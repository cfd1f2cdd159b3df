// Package natshandler publishes translation diagnostics to a NATS subject,
// so batch translations can be observed without scraping logs.
package natshandler

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"

	"github.com/gridmodel/esmt/internal/pkg/es2omf"
)

// Handler is a connected publisher.
type Handler struct {
	pid     uuid.UUID
	conn    *nats.Conn
	subject string
}

// New dials the NATS server. subject is the publication subject for all
// diagnostic batches.
func New(serverURL, subject string) (*Handler, error) {
	conn, err := nats.Connect(serverURL)
	if err != nil {
		return nil, fmt.Errorf("natshandler: connect %s: %w", serverURL, err)
	}
	pid, err := uuid.NewUUID()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Handler{pid: pid, conn: conn, subject: subject}, nil
}

// PID is the publisher identity.
func (h *Handler) PID() uuid.UUID {
	return h.pid
}

type batch struct {
	System      string              `json:"system"`
	Diagnostics []es2omf.Diagnostic `json:"diagnostics"`
}

// PublishDiagnostics sends one JSON batch naming the translated system.
func (h *Handler) PublishDiagnostics(system string, diags []es2omf.Diagnostic) error {
	payload, err := json.Marshal(batch{System: system, Diagnostics: diags})
	if err != nil {
		return fmt.Errorf("natshandler: encode batch: %w", err)
	}
	if err := h.conn.Publish(h.subject, payload); err != nil {
		return fmt.Errorf("natshandler: publish %s: %w", h.subject, err)
	}
	return nil
}

// Close flushes and drops the connection.
func (h *Handler) Close() {
	h.conn.Flush()
	h.conn.Close()
}
