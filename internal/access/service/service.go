// Package service implements the grant resolution pipeline: the ordered,
// short-circuiting sequence of gates that turns a (room, user) request into
// either a signed-credential decision or a classified rejection.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	accessmetrics "roomgate/internal/access/metrics"
	"roomgate/internal/access/models"
	"roomgate/internal/access/ports"
	dErrors "roomgate/pkg/domain-errors"
	"roomgate/pkg/platform/audit"
	"roomgate/pkg/platform/sentinel"
	"roomgate/pkg/requestcontext"
)

// Service orchestrates the four gates in a fixed order. It owns no state
// beyond the injected collaborators, so concurrent requests never contend.
type Service struct {
	users      ports.UserStore
	rooms      ports.RoomStore
	members    ports.MembershipStore
	issuer     ports.CredentialIssuer
	sessionURL string

	logger  *slog.Logger
	auditor ports.AuditPublisher
	metrics *accessmetrics.Metrics
	tracer  trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

// WithLogger sets a structured logger for decision logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditPublisher sets the sink for grant_issued / grant_denied events.
func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

// WithMetrics sets the Prometheus collectors for decisions and latency.
func WithMetrics(m *accessmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the pipeline. All four required collaborators must be
// non-nil; sessionURL is the provider endpoint returned alongside tokens.
func New(
	users ports.UserStore,
	rooms ports.RoomStore,
	members ports.MembershipStore,
	issuer ports.CredentialIssuer,
	sessionURL string,
	opts ...Option,
) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("room store is required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership store is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("credential issuer is required")
	}

	svc := &Service{
		users:      users,
		rooms:      rooms,
		members:    members,
		issuer:     issuer,
		sessionURL: sessionURL,
		tracer:     otel.Tracer("roomgate/access"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Grant runs the full pipeline and mints a credential for the decision.
// Every outcome, success or rejection, is audited and counted.
func (s *Service) Grant(ctx context.Context, req models.GrantRequest) (*models.GrantResult, error) {
	start := time.Now()

	decision, err := s.Resolve(ctx, req)
	if err != nil {
		s.recordDenied(ctx, req, err)
		return nil, err
	}

	token, err := s.issuer.Issue(ctx, decision)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeUnavailable, "credential issuing failed")
		s.recordDenied(ctx, req, err)
		return nil, err
	}

	s.recordIssued(ctx, decision, time.Since(start))

	return &models.GrantResult{
		SessionURL: s.sessionURL,
		Token:      token,
		Role:       string(decision.Role),
	}, nil
}

// Resolve executes the gates in their fixed order: identity, room,
// membership, capability mapping. The first rejection terminates the
// pipeline; there are no retries and no partial decisions.
func (s *Service) Resolve(ctx context.Context, req models.GrantRequest) (*models.GrantDecision, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "access.Resolve",
		trace.WithAttributes(attribute.String("room.slug", req.RoomSlug)))
	defer span.End()

	identity, err := s.resolveIdentity(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}

	room, err := s.resolveRoom(ctx, req.RoomSlug)
	if err != nil {
		return nil, err
	}

	status, err := s.resolveMembership(ctx, room.ID, identity.ID)
	if err != nil {
		return nil, err
	}

	role := status.EffectiveRole()
	span.SetAttributes(attribute.String("access.role", string(role)))

	return &models.GrantDecision{
		Identity:     *identity,
		Room:         *room,
		Role:         role,
		Capabilities: models.CapabilitiesFor(role),
	}, nil
}

// resolveIdentity is the identity gate: the requester must exist.
func (s *Service) resolveIdentity(ctx context.Context, email string) (*models.UserIdentity, error) {
	identity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "identity lookup failed")
	}
	return identity, nil
}

// resolveRoom is the room gate: the room must exist and be live.
func (s *Service) resolveRoom(ctx context.Context, slug string) (*models.Room, error) {
	room, err := s.rooms.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "room not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "room lookup failed")
	}
	if !room.Status.Joinable() {
		return nil, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("room is not joinable: status %s", room.Status))
	}
	return room, nil
}

// resolveMembership is the membership gate. No record means implicit
// minimal-privilege entry; a banned record rejects regardless of role.
func (s *Service) resolveMembership(ctx context.Context, roomID, userID string) (models.MembershipStatus, error) {
	membership, err := s.members.FindByRoomAndUser(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.AbsentMembership(), nil
		}
		return models.MembershipStatus{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "membership lookup failed")
	}

	status := models.KnownMembership(*membership)
	if status.Banned() {
		return models.MembershipStatus{}, dErrors.New(dErrors.CodeForbidden, "banned")
	}
	return status, nil
}

func (s *Service) recordIssued(ctx context.Context, decision *models.GrantDecision, elapsed time.Duration) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "grant issued",
			"user_id", decision.Identity.ID,
			"room_slug", decision.Room.Slug,
			"role", decision.Role,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.ObserveIssued(string(decision.Role), elapsed)
	}
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			Action:    audit.ActionGrantIssued,
			Subject:   decision.Identity.ID,
			RoomSlug:  decision.Room.Slug,
			Role:      string(decision.Role),
			RequestID: requestcontext.RequestID(ctx),
			ClientIP:  requestcontext.ClientIP(ctx),
		})
	}
}

func (s *Service) recordDenied(ctx context.Context, req models.GrantRequest, cause error) {
	code := dErrors.CodeOf(cause)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "grant denied",
			"room_slug", req.RoomSlug,
			"reason", string(code),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementDenied(string(code))
	}
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			Action:    audit.ActionGrantDenied,
			Subject:   req.UserEmail,
			RoomSlug:  req.RoomSlug,
			Reason:    string(code),
			RequestID: requestcontext.RequestID(ctx),
			ClientIP:  requestcontext.ClientIP(ctx),
		})
	}
}
