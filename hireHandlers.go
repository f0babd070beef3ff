package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/billing"
	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/ambershealthcare/placements_backend/workflow"
)

type confirmHireInput struct {
	StartDate string `json:"start_date" binding:"required"`
}

func confirmHireHandler(invoicing billing.InvoicingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input confirmHireInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		invoice, err := workflow.ConfirmHire(ctx, config.GetDB(), config.GetLogger(), invoicing, c.Param("id"), input.StartDate, userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "invoiceId": invoice.ID})
	}
}

func ensureInvoiceHandler(invoicing billing.InvoicingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoice, err := workflow.EnsureInvoiceForHire(c.Request.Context(), config.GetDB(), config.GetLogger(), invoicing, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoice)
	}
}

func employerIntroductionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		intros, err := models.GetEmployerIntroductions(ctx, config.GetDB(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, intros)
	}
}

func employerInvoicesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		invoices, err := models.GetEmployerInvoices(ctx, config.GetDB(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
	}
}

func webhookHandler(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		billing.WebhookHandler(config.GetDB(), secret)(c)
	}
}
