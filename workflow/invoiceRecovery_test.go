package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/ambershealthcare/placements_backend/workflow"
)

func TestEnsureInvoiceForHire_RepairsUninvoicedHire(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "repair")

	// Hire succeeds, invoicing fails: the known gap.
	broken := &fakeInvoicing{failInvoice: true}
	if _, err := workflow.ConfirmHire(context.Background(), db, logger, broken, f.intro.ID, "2026-09-14", f.employerUser.ID); err == nil {
		t.Fatal("expected invoicing failure")
	}

	healthy := &fakeInvoicing{}
	invoice, err := workflow.EnsureInvoiceForHire(context.Background(), db, logger, healthy, f.intro.ID)
	if err != nil {
		t.Fatalf("EnsureInvoiceForHire: %v", err)
	}
	if invoice.Status != models.InvoiceStatusSent {
		t.Errorf("expected sent invoice, got %s", invoice.Status)
	}
	if invoice.StripeInvoiceId == nil {
		t.Error("expected an external ref")
	}

	// Re-running finds the existing invoice and calls nothing remote.
	again, err := workflow.EnsureInvoiceForHire(context.Background(), db, logger, healthy, f.intro.ID)
	if err != nil {
		t.Fatalf("second EnsureInvoiceForHire: %v", err)
	}
	if again.ID != invoice.ID {
		t.Errorf("expected the same invoice row, got %s and %s", invoice.ID, again.ID)
	}
	if healthy.invoiceCalls != 1 {
		t.Errorf("expected one remote invoice creation, got %d", healthy.invoiceCalls)
	}
}

func TestEnsureInvoiceForHire_WithoutHire(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "nohire")

	_, err := workflow.EnsureInvoiceForHire(context.Background(), db, logger, &fakeInvoicing{}, f.intro.ID)
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}

	var invoices int64
	db.Model(&models.PlacementInvoice{}).Count(&invoices)
	if invoices != 0 {
		t.Errorf("expected no invoice without a hire, got %d", invoices)
	}
}
