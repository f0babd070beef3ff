package billing

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ambershealthcare/placements_backend/models"
)

// WebhookSecretFromEnv returns the shared webhook secret, empty when
// reconciliation is not configured.
func WebhookSecretFromEnv() string {
	return strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET"))
}

// WebhookHandler consumes asynchronous payment notifications from the
// billing provider. It is fully independent of the hire-confirmation
// request path; the external invoice id is the only coupling between the
// two. Delivery is at-least-once, so every branch below must be safe to
// re-run.
func WebhookHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		if secret == "" {
			c.Status(http.StatusBadRequest)
			return
		}

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			config.LogError(logger, "webhook.go", "WebhookHandler", "io.ReadAll", nil, err)
			c.Status(http.StatusBadRequest)
			return
		}

		// Authenticity first: an unverifiable notification must never
		// alter financial state.
		sigHeader := c.GetHeader("Stripe-Signature")
		if err := VerifySignature(payload, sigHeader, secret, DefaultTolerance); err != nil {
			config.LogError(logger, "webhook.go", "WebhookHandler", "VerifySignature", sigHeader, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
			return
		}

		event, err := decodeEvent(payload)
		if err != nil {
			config.LogError(logger, "webhook.go", "WebhookHandler", "decodeEvent", string(payload), err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
			return
		}

		if event.Type != EventInvoicePaid {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		invoice, err := event.invoice()
		if err != nil || invoice.ID == "" {
			config.LogError(logger, "webhook.go", "WebhookHandler", "event.invoice", event.Type, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
			return
		}

		paymentStatus := invoice.Status
		if paymentStatus == "" {
			paymentStatus = "paid"
		}

		ctx := c.Request.Context()
		if _, err := models.MarkInvoicePaidByStripeId(ctx, db, invoice.ID, paymentStatus); err != nil {
			if utils.IsRecordNotFound(err) {
				// The provider can notify before the local invoice row
				// lands. Acknowledge; redelivery will find it.
				c.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			config.LogError(logger, "webhook.go", "WebhookHandler", "MarkInvoicePaidByStripeId", invoice.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
