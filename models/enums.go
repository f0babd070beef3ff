package models

import "github.com/ambershealthcare/placements_backend/utils"

type UserRole string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"
)

// ParseUserRole accepts only the three known roles. Registration
// additionally rejects admin (admins are seeded, never self-registered).
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleCandidate:
		return UserRoleCandidate, nil
	case UserRoleEmployer:
		return UserRoleEmployer, nil
	case UserRoleAdmin:
		return UserRoleAdmin, nil
	}
	return "", utils.NewValidationError("invalid role %q", s)
}

type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "active"
	CandidateStatusInactive CandidateStatus = "inactive"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusDue   InvoiceStatus = "due"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// CanTransitionTo enforces the forward-only invoice lifecycle:
// draft/sent/due may move to paid or void; paid and void are terminal.
// Re-applying the current status is allowed so reconciliation stays
// idempotent under webhook redelivery.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusDue:
		return next == InvoiceStatusPaid || next == InvoiceStatusVoid ||
			(s == InvoiceStatusDraft && (next == InvoiceStatusSent || next == InvoiceStatusDue)) ||
			(s == InvoiceStatusSent && next == InvoiceStatusDue)
	case InvoiceStatusPaid, InvoiceStatusVoid:
		return false
	}
	return false
}
