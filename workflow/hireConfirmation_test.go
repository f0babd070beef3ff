package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/ambershealthcare/placements_backend/workflow"
)

func TestConfirmHire_NoProviderConfigured(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "draft")

	invoice, err := workflow.ConfirmHire(context.Background(), db, logger, nil, f.intro.ID, "2026-09-14", f.employerUser.ID)
	if err != nil {
		t.Fatalf("ConfirmHire: %v", err)
	}

	if invoice.Status != models.InvoiceStatusDraft {
		t.Errorf("expected draft invoice without a provider, got %s", invoice.Status)
	}
	if invoice.StripeInvoiceId != nil {
		t.Errorf("expected no external ref, got %v", *invoice.StripeInvoiceId)
	}
	if invoice.AmountCents != 450000 || invoice.Currency != "usd" {
		t.Errorf("expected 450000 usd, got %d %s", invoice.AmountCents, invoice.Currency)
	}

	var hire models.HireConfirmation
	if err := db.Where("introduction_id = ?", f.intro.ID).Take(&hire).Error; err != nil {
		t.Fatalf("hire confirmation not persisted: %v", err)
	}
}

func TestConfirmHire_WithProvider(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	fake := &fakeInvoicing{}
	f := seedIntroductionChain(t, db, "sent")

	invoice, err := workflow.ConfirmHire(context.Background(), db, logger, fake, f.intro.ID, "2026-09-14", f.employerUser.ID)
	if err != nil {
		t.Fatalf("ConfirmHire: %v", err)
	}

	if invoice.Status != models.InvoiceStatusSent {
		t.Errorf("expected sent invoice, got %s", invoice.Status)
	}
	if invoice.StripeInvoiceId == nil || *invoice.StripeInvoiceId != "in_1" {
		t.Errorf("expected external ref in_1, got %v", invoice.StripeInvoiceId)
	}
	if fake.customerCalls != 1 || fake.invoiceCalls != 1 || fake.sendCalls != 1 {
		t.Errorf("expected one call per leg, got customer=%d invoice=%d send=%d",
			fake.customerCalls, fake.invoiceCalls, fake.sendCalls)
	}

	// The customer ref was memoized on the employer profile.
	var employer models.EmployerProfile
	if err := db.Where("id = ?", f.employer.ID).Take(&employer).Error; err != nil {
		t.Fatalf("reload employer: %v", err)
	}
	if employer.StripeCustomerId == nil || *employer.StripeCustomerId != "cus_1" {
		t.Errorf("expected memoized customer ref cus_1, got %v", employer.StripeCustomerId)
	}
}

func TestConfirmHire_ReusesMemoizedCustomer(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	fake := &fakeInvoicing{}
	f := seedIntroductionChain(t, db, "memo")

	// Second introduction for the same employer's job.
	candidateUser := models.User{Email: "memo-second@example.com", Password: "x", Role: models.UserRoleCandidate}
	if err := db.Create(&candidateUser).Error; err != nil {
		t.Fatalf("seed second candidate user: %v", err)
	}
	second := models.CandidateProfile{
		UserId:      candidateUser.ID,
		FullName:    "Casey Landry",
		Parish:      "Livingston",
		Specialties: models.SpecialtySet{"Medical Billing"},
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed second candidate: %v", err)
	}
	secondIntro := models.Introduction{JobId: f.job.ID, CandidateId: second.ID}
	if err := db.Create(&secondIntro).Error; err != nil {
		t.Fatalf("seed second introduction: %v", err)
	}

	if _, err := workflow.ConfirmHire(context.Background(), db, logger, fake, f.intro.ID, "2026-09-14", f.employerUser.ID); err != nil {
		t.Fatalf("first ConfirmHire: %v", err)
	}
	if _, err := workflow.ConfirmHire(context.Background(), db, logger, fake, secondIntro.ID, "2026-10-01", f.employerUser.ID); err != nil {
		t.Fatalf("second ConfirmHire: %v", err)
	}

	if fake.customerCalls != 1 {
		t.Errorf("expected one customer creation across two hires, got %d", fake.customerCalls)
	}
	if fake.invoiceCalls != 2 {
		t.Errorf("expected two invoices, got %d", fake.invoiceCalls)
	}
}

func TestConfirmHire_DuplicateConfirmation(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "dup")

	if _, err := workflow.ConfirmHire(context.Background(), db, logger, nil, f.intro.ID, "2026-09-14", f.employerUser.ID); err != nil {
		t.Fatalf("first ConfirmHire: %v", err)
	}

	_, err := workflow.ConfirmHire(context.Background(), db, logger, nil, f.intro.ID, "2026-09-21", f.employerUser.ID)
	if !errors.Is(err, utils.ErrorConflict) {
		t.Fatalf("expected ErrorConflict, got %v", err)
	}

	var hires, invoices int64
	db.Model(&models.HireConfirmation{}).Count(&hires)
	db.Model(&models.PlacementInvoice{}).Count(&invoices)
	if hires != 1 || invoices != 1 {
		t.Errorf("expected 1 hire and 1 invoice, got %d and %d", hires, invoices)
	}
}

func TestConfirmHire_NotOwner(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "owner")
	other := seedIntroductionChain(t, db, "other")

	_, err := workflow.ConfirmHire(context.Background(), db, logger, nil, f.intro.ID, "2026-09-14", other.employerUser.ID)
	if !errors.Is(err, utils.ErrorForbidden) {
		t.Fatalf("expected ErrorForbidden, got %v", err)
	}
}

func TestConfirmHire_UnknownIntroduction(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()

	_, err := workflow.ConfirmHire(context.Background(), db, logger, nil, "no-such-intro", "2026-09-14", "whoever")
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
}

func TestConfirmHire_InvalidStartDate(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	f := seedIntroductionChain(t, db, "baddate")

	_, err := workflow.ConfirmHire(context.Background(), db, logger, nil, f.intro.ID, "next monday", f.employerUser.ID)
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var hires int64
	db.Model(&models.HireConfirmation{}).Count(&hires)
	if hires != 0 {
		t.Errorf("expected no hire on invalid input, got %d", hires)
	}
}

func TestConfirmHire_ProviderFailureKeepsHire(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger()
	fake := &fakeInvoicing{failInvoice: true}
	f := seedIntroductionChain(t, db, "fail")

	_, err := workflow.ConfirmHire(context.Background(), db, logger, fake, f.intro.ID, "2026-09-14", f.employerUser.ID)
	if !utils.IsExternalServiceError(err) {
		t.Fatalf("expected external service error, got %v", err)
	}

	// The hire is durable even though invoicing failed, and no invoice
	// row was written.
	var hires, invoices int64
	db.Model(&models.HireConfirmation{}).Count(&hires)
	db.Model(&models.PlacementInvoice{}).Count(&invoices)
	if hires != 1 {
		t.Errorf("expected the hire to be persisted, got %d rows", hires)
	}
	if invoices != 0 {
		t.Errorf("expected no invoice row, got %d", invoices)
	}
}
