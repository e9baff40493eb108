// Package audit defines the decision events roomgate emits and the publisher
// contract sinks implement. Events are transport-agnostic so the same emission
// path can fan out to logs, Kafka, or an in-memory store in tests.
package audit

import (
	"context"
	"time"
)

// Action identifies what happened. roomgate makes exactly one kind of
// decision, so the vocabulary is small and closed.
type Action string

const (
	// ActionGrantIssued records a successful resolution: a credential was
	// minted for the subject with the resolved role.
	ActionGrantIssued Action = "grant_issued"

	// ActionGrantDenied records a rejected resolution. Reason carries the
	// rejection code, never free-form store detail.
	ActionGrantDenied Action = "grant_denied"
)

// Event captures a single access decision.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`   // stable user id when resolved, lookup key otherwise
	RoomSlug  string    `json:"room_slug"` // the requested room key
	Role      string    `json:"role,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
}

// Publisher emits audit events. Emission must never fail a grant decision:
// implementations log and drop on sink failure rather than propagate.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}
