package models_test

import (
	"testing"

	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

func TestParseUserRole(t *testing.T) {
	for _, s := range []string{"candidate", "employer", "admin"} {
		role, err := models.ParseUserRole(s)
		if err != nil {
			t.Errorf("ParseUserRole(%q) returned unexpected error: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseUserRole(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "Admin", "superuser"} {
		_, err := models.ParseUserRole(s)
		if err == nil {
			t.Errorf("ParseUserRole(%q) expected error", s)
		}
		if !utils.IsValidationError(err) {
			t.Errorf("ParseUserRole(%q) error should be a ValidationError, got %v", s, err)
		}
	}
}

func TestInvoiceStatusTransitions_ForwardOnly(t *testing.T) {
	cases := []struct {
		from    models.InvoiceStatus
		to      models.InvoiceStatus
		allowed bool
	}{
		{models.InvoiceStatusDraft, models.InvoiceStatusPaid, true},
		{models.InvoiceStatusSent, models.InvoiceStatusPaid, true},
		{models.InvoiceStatusDue, models.InvoiceStatusPaid, true},
		{models.InvoiceStatusDraft, models.InvoiceStatusVoid, true},
		{models.InvoiceStatusSent, models.InvoiceStatusVoid, true},
		{models.InvoiceStatusDraft, models.InvoiceStatusSent, true},
		{models.InvoiceStatusSent, models.InvoiceStatusDue, true},
		// Re-applying the current status keeps reconciliation idempotent.
		{models.InvoiceStatusPaid, models.InvoiceStatusPaid, true},
		// Never backward, never out of a terminal state.
		{models.InvoiceStatusPaid, models.InvoiceStatusSent, false},
		{models.InvoiceStatusPaid, models.InvoiceStatusVoid, false},
		{models.InvoiceStatusVoid, models.InvoiceStatusPaid, false},
		{models.InvoiceStatusVoid, models.InvoiceStatusDraft, false},
		{models.InvoiceStatusSent, models.InvoiceStatusDraft, false},
		{models.InvoiceStatusDue, models.InvoiceStatusDraft, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
