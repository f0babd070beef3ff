package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ambershealthcare/placements_backend/billing"
	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// introContext is everything invoicing needs about one introduction,
// resolved in a single join through job -> employer -> user -> candidate.
type introContext struct {
	IntroductionId   string
	JobId            string
	CandidateId      string
	CandidateName    string
	EmployerId       string
	EmployerUserId   string
	EmployerEmail    string
	CompanyName      string
	StripeCustomerId *string
}

func resolveIntroduction(ctx context.Context, db *gorm.DB, introductionId string) (*introContext, error) {
	var ic introContext
	err := db.WithContext(ctx).Model(&models.Introduction{}).
		Select(`introductions.id AS introduction_id,
			introductions.job_id AS job_id,
			introductions.candidate_id AS candidate_id,
			candidate_profiles.full_name AS candidate_name,
			employer_profiles.id AS employer_id,
			employer_profiles.user_id AS employer_user_id,
			employer_profiles.company_name AS company_name,
			employer_profiles.stripe_customer_id AS stripe_customer_id,
			users.email AS employer_email`).
		Joins("JOIN job_postings ON job_postings.id = introductions.job_id").
		Joins("JOIN employer_profiles ON employer_profiles.id = job_postings.employer_id").
		Joins("JOIN users ON users.id = employer_profiles.user_id").
		Joins("JOIN candidate_profiles ON candidate_profiles.id = introductions.candidate_id").
		Where("introductions.id = ?", introductionId).
		Take(&ic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ic, nil
}

// ConfirmHire is the hire-confirmation workflow. The HireConfirmation
// insert is the durable, at-most-once step: its unique introduction_id
// constraint turns a race between two confirmation attempts into one
// winner and one Conflict, with no explicit lock. Everything after it is
// best-effort invoicing against the remote provider — if that fails the
// hire stays committed (it records an externally-true fact) and no
// PlacementInvoice row is written. There is no automatic retry; recovery
// is the separate EnsureInvoiceForHire operation.
func ConfirmHire(ctx context.Context, db *gorm.DB, logger *logrus.Logger, client billing.InvoicingService, introductionId string, startDate string, actingUserId string) (*models.PlacementInvoice, error) {
	ic, err := resolveIntroduction(ctx, db, introductionId)
	if err != nil {
		return nil, err
	}
	if ic.EmployerUserId != actingUserId {
		// Forbidden, not NotFound: the introduction exists, the caller
		// just does not own it, and we do not leak more than that.
		return nil, utils.ErrorForbidden
	}

	parsedStart, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, utils.NewValidationError("invalid start date %q", startDate)
	}

	hire := models.HireConfirmation{
		IntroductionId: introductionId,
		StartDate:      parsedStart,
	}
	if err := db.WithContext(ctx).Create(&hire).Error; err != nil {
		if utils.IsDuplicateKeyErr(err) {
			return nil, utils.ErrorConflict
		}
		return nil, err
	}

	invoice, err := createInvoiceForIntroduction(ctx, db, logger, client, ic)
	if err != nil {
		// The hire is durable; the employer sees the invoicing failure
		// and an admin re-runs invoicing via EnsureInvoiceForHire.
		config.LogError(logger, "hireConfirmation.go", "ConfirmHire", "createInvoiceForIntroduction", introductionId, err)
		return nil, err
	}
	return invoice, nil
}

// createInvoiceForIntroduction runs the invoicing leg: external customer
// resolution (memoized on the employer profile), line item + invoice
// document creation, sending, then the local PlacementInvoice insert.
// With no provider configured it degrades to a draft invoice with no
// external reference.
func createInvoiceForIntroduction(ctx context.Context, db *gorm.DB, logger *logrus.Logger, client billing.InvoicingService, ic *introContext) (*models.PlacementInvoice, error) {
	var stripeInvoiceId *string

	if client != nil {
		customerRef := utils.DereferencePtr(ic.StripeCustomerId)
		if customerRef == "" {
			ref, err := client.EnsureCustomer(ctx, ic.EmployerId, ic.EmployerEmail, ic.CompanyName)
			if err != nil {
				return nil, utils.NewExternalServiceError("ensure customer", err)
			}
			if err := models.SetStripeCustomerId(ctx, db, ic.EmployerId, ref); err != nil {
				return nil, err
			}
			customerRef = ref
		}

		description := fmt.Sprintf("Placement fee for %s", ic.CandidateName)
		created, err := client.CreateInvoice(ctx, customerRef, models.PlacementFeeCents, models.PlacementFeeCurrency, description)
		if err != nil {
			return nil, utils.NewExternalServiceError("create invoice", err)
		}

		finalizedRef, err := client.SendInvoice(ctx, created.ID)
		if err != nil {
			return nil, utils.NewExternalServiceError("send invoice", err)
		}
		stripeInvoiceId = &finalizedRef
	}

	status := models.InvoiceStatusDraft
	if stripeInvoiceId != nil {
		status = models.InvoiceStatusSent
	}

	invoice := models.PlacementInvoice{
		EmployerId:      ic.EmployerId,
		CandidateId:     ic.CandidateId,
		JobId:           ic.JobId,
		IntroductionId:  ic.IntroductionId,
		AmountCents:     models.PlacementFeeCents,
		Currency:        models.PlacementFeeCurrency,
		Status:          status,
		StripeInvoiceId: stripeInvoiceId,
	}
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		if utils.IsDuplicateKeyErr(err) {
			// Lost a race with a concurrent recovery run; the existing
			// row is the truth.
			return models.GetInvoiceByIntroductionId(ctx, db, ic.IntroductionId)
		}
		return nil, err
	}
	return &invoice, nil
}
