package models

import (
	"strings"

	dErrors "roomgate/pkg/domain-errors"
)

// RoomStatus is the lifecycle state of a room. Only live rooms admit
// participants; every other status rejects identically at the room gate.
type RoomStatus string

const (
	RoomStatusDraft RoomStatus = "draft"
	RoomStatusLive  RoomStatus = "live"
	RoomStatusEnded RoomStatus = "ended"
)

// Joinable reports whether the room admits new participants.
func (s RoomStatus) Joinable() bool {
	return s == RoomStatusLive
}

// Role is a member's stored role within a room.
//
// The recognized set is closed, but stores may hold values outside it (older
// deployments, manual writes). Unrecognized roles are deliberately treated as
// full-capability in CapabilitiesFor so the policy choice is visible here
// rather than incidental to a comparison against one literal.
type Role string

const (
	RoleListener Role = "listener"
	RoleSpeaker  Role = "speaker"
	RoleHost     Role = "host"
)

// DefaultRole is the role granted when no membership record exists: implicit,
// minimal-privilege entry rather than denial.
const DefaultRole = RoleListener

// Recognized reports whether the role is one of the known enum values.
func (r Role) Recognized() bool {
	switch r {
	case RoleListener, RoleSpeaker, RoleHost:
		return true
	}
	return false
}

// UserIdentity is the resolved requester. ID is the stable long-lived
// identifier used as the credential subject. Immutable once loaded.
type UserIdentity struct {
	ID          string
	DisplayName string
	Email       string
}

// Room is the join target. ExternalRef is the identifier the media/session
// provider knows the room by; it is what goes into the credential, never the
// internal ID.
type Room struct {
	ID          string
	Slug        string
	ExternalRef string
	Status      RoomStatus
}

// Membership is the stored relationship between a user and a room.
type Membership struct {
	Role     Role
	IsBanned bool
}

// MembershipStatus is the tagged outcome of a membership lookup: either a
// known record or an explicit absence. Absence is a valid, meaningful state,
// not an error, and maps to DefaultRole in exactly one place (EffectiveRole)
// so the default policy stays a single auditable rule.
type MembershipStatus struct {
	Known      bool
	Membership Membership // only meaningful when Known
}

// KnownMembership wraps a stored record.
func KnownMembership(m Membership) MembershipStatus {
	return MembershipStatus{Known: true, Membership: m}
}

// AbsentMembership marks a lookup that found no record.
func AbsentMembership() MembershipStatus {
	return MembershipStatus{}
}

// EffectiveRole returns the stored role, or DefaultRole when no record
// exists.
func (s MembershipStatus) EffectiveRole() Role {
	if !s.Known {
		return DefaultRole
	}
	return s.Membership.Role
}

// Banned reports whether a stored record marks the user banned. Absent
// memberships are never banned.
func (s MembershipStatus) Banned() bool {
	return s.Known && s.Membership.IsBanned
}

// CapabilitySet is the publish/subscribe permissions embedded in a
// credential.
type CapabilitySet struct {
	CanPublish   bool
	CanSubscribe bool
}

// CapabilitiesFor maps a role to its capability set. Pure and total: every
// string input has a defined result.
//
// The policy is two-tier: listeners are subscribe-only, every other role
// (recognized or not) gets full capabilities. Extending to finer tiers means
// widening this switch, not restructuring the pipeline.
func CapabilitiesFor(role Role) CapabilitySet {
	switch role {
	case RoleListener:
		return CapabilitySet{CanPublish: false, CanSubscribe: true}
	default:
		return CapabilitySet{CanPublish: true, CanSubscribe: true}
	}
}

// GrantDecision is the pipeline's terminal success value: everything the
// credential issuer needs, with no further lookups. It is only constructed
// after all gates pass.
type GrantDecision struct {
	Identity     UserIdentity
	Room         Room
	Role         Role
	Capabilities CapabilitySet
}

// GrantRequest is the caller's join request.
type GrantRequest struct {
	RoomSlug  string `json:"room_slug"`
	UserEmail string `json:"user_email"`
}

// Normalize trims whitespace and lowercases the email, matching how the
// identity store keys users.
func (r *GrantRequest) Normalize() {
	r.RoomSlug = strings.TrimSpace(r.RoomSlug)
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
}

// Validate rejects missing inputs before any store lookup runs.
func (r *GrantRequest) Validate() error {
	if r.RoomSlug == "" {
		return dErrors.New(dErrors.CodeBadRequest, "room_slug is required")
	}
	if r.UserEmail == "" {
		return dErrors.New(dErrors.CodeBadRequest, "user_email is required")
	}
	return nil
}

// GrantResult is what the transport returns on success. Role is informational
// for client UI; trust decisions come only from the token's embedded grants.
type GrantResult struct {
	SessionURL string `json:"session_url"`
	Token      string `json:"token"`
	Role       string `json:"role"`
}
