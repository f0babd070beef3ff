package models

import (
	"context"
	"errors"
	"time"

	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlacementInvoice bills the fixed recruiting fee for one confirmed
// hire. At most one invoice per introduction (unique index). Employer,
// candidate and job ids are denormalized for query convenience. After
// creation the row is mutated only by payment reconciliation
// (status/paid_at/stripe_payment_status) or administratively (void).
type PlacementInvoice struct {
	ID                  string        `gorm:"primaryKey;size:36" json:"id"`
	EmployerId          string        `gorm:"size:36;not null;index" json:"employer_id"`
	CandidateId         string        `gorm:"size:36;not null" json:"candidate_id"`
	JobId               string        `gorm:"size:36;not null" json:"job_id"`
	IntroductionId      string        `gorm:"size:36;not null;unique" json:"introduction_id"`
	AmountCents         int64         `gorm:"not null;default:450000" json:"amount_cents"`
	Currency            string        `gorm:"size:10;not null;default:usd" json:"currency"`
	Status              InvoiceStatus `gorm:"size:20;not null;default:draft" json:"status"`
	StripeInvoiceId     *string       `gorm:"size:255;index" json:"stripe_invoice_id"`
	StripePaymentStatus *string       `gorm:"size:50" json:"stripe_payment_status"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	PaidAt              *time.Time    `json:"paid_at"`
}

func (p *PlacementInvoice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.AmountCents == 0 {
		p.AmountCents = PlacementFeeCents
	}
	if p.Currency == "" {
		p.Currency = PlacementFeeCurrency
	}
	if p.Status == "" {
		p.Status = InvoiceStatusDraft
	}
	return nil
}

func GetInvoiceByIntroductionId(ctx context.Context, db *gorm.DB, introductionId string) (*PlacementInvoice, error) {
	var result PlacementInvoice
	err := db.WithContext(ctx).Where("introduction_id = ?", introductionId).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetInvoiceByStripeId(ctx context.Context, db *gorm.DB, stripeInvoiceId string) (*PlacementInvoice, error) {
	var result PlacementInvoice
	err := db.WithContext(ctx).Where("stripe_invoice_id = ?", stripeInvoiceId).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkInvoicePaidByStripeId applies a verified payment notification.
// Idempotent: redelivery re-sets the same values and reports success.
// Returns ErrorRecordNotFound when no invoice carries the external id —
// callers acknowledge that case without error, since the provider may
// notify faster than local persistence completes.
func MarkInvoicePaidByStripeId(ctx context.Context, db *gorm.DB, stripeInvoiceId string, paymentStatus string) (*PlacementInvoice, error) {
	invoice, err := GetInvoiceByStripeId(ctx, db, stripeInvoiceId)
	if err != nil {
		return nil, err
	}

	if invoice.Status == InvoiceStatusPaid {
		return invoice, nil
	}
	if !invoice.Status.CanTransitionTo(InvoiceStatusPaid) {
		// Void is terminal; a late payment event must not resurrect it.
		return invoice, nil
	}

	now := time.Now().UTC()
	err = db.WithContext(ctx).Model(&PlacementInvoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"status":                InvoiceStatusPaid,
			"paid_at":               now,
			"stripe_payment_status": paymentStatus,
		}).Error
	if err != nil {
		return nil, err
	}

	invoice.Status = InvoiceStatusPaid
	invoice.PaidAt = &now
	invoice.StripePaymentStatus = &paymentStatus
	return invoice, nil
}

// VoidInvoice is the administrative escape hatch. Paid invoices cannot
// be voided; voiding a void invoice is a no-op.
func VoidInvoice(ctx context.Context, db *gorm.DB, invoiceId string) (*PlacementInvoice, error) {
	var invoice PlacementInvoice
	err := db.WithContext(ctx).Where("id = ?", invoiceId).Take(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if invoice.Status == InvoiceStatusVoid {
		return &invoice, nil
	}
	if !invoice.Status.CanTransitionTo(InvoiceStatusVoid) {
		return nil, utils.ErrorConflict
	}
	if err := db.WithContext(ctx).Model(&invoice).Update("status", InvoiceStatusVoid).Error; err != nil {
		return nil, err
	}
	invoice.Status = InvoiceStatusVoid
	return &invoice, nil
}

// EmployerInvoice is the employer-facing listing row.
type EmployerInvoice struct {
	PlacementInvoice
	CandidateName string `json:"candidate_name"`
	JobTitle      string `json:"job_title"`
}

func GetEmployerInvoices(ctx context.Context, db *gorm.DB, actingUserId string) ([]*EmployerInvoice, error) {
	employer, err := GetEmployerByUserId(ctx, db, actingUserId)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return []*EmployerInvoice{}, nil
		}
		return nil, err
	}

	var results []*EmployerInvoice
	err = db.WithContext(ctx).Model(&PlacementInvoice{}).
		Select(`placement_invoices.*,
			candidate_profiles.full_name AS candidate_name,
			job_postings.title AS job_title`).
		Joins("JOIN candidate_profiles ON candidate_profiles.id = placement_invoices.candidate_id").
		Joins("JOIN job_postings ON job_postings.id = placement_invoices.job_id").
		Where("placement_invoices.employer_id = ?", employer.ID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
