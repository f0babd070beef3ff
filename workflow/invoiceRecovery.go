package workflow

import (
	"context"
	"errors"

	"github.com/ambershealthcare/placements_backend/billing"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnsureInvoiceForHire creates the missing PlacementInvoice for an
// already-confirmed hire. ConfirmHire is deliberately not retryable — a
// re-invocation would hit the hire-confirmation constraint and report
// Conflict before invoicing — so a hire left uninvoiced by a provider
// failure is repaired through this operation instead. Idempotent: when
// the invoice already exists it is returned unchanged.
func EnsureInvoiceForHire(ctx context.Context, db *gorm.DB, logger *logrus.Logger, client billing.InvoicingService, introductionId string) (*models.PlacementInvoice, error) {
	var hire models.HireConfirmation
	err := db.WithContext(ctx).Where("introduction_id = ?", introductionId).Take(&hire).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No confirmed hire, nothing to invoice.
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := models.GetInvoiceByIntroductionId(ctx, db, introductionId)
	if err == nil {
		return existing, nil
	}
	if !utils.IsRecordNotFound(err) {
		return nil, err
	}

	ic, err := resolveIntroduction(ctx, db, introductionId)
	if err != nil {
		return nil, err
	}
	return createInvoiceForIntroduction(ctx, db, logger, client, ic)
}
