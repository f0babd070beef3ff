package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

func upsertCandidateProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCandidateProfile
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		profile, err := models.UpsertCandidateProfile(ctx, config.GetDB(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func myCandidateProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		profile, err := models.GetCandidateByUserId(ctx, config.GetDB(), userId)
		if err != nil {
			if utils.IsRecordNotFound(err) {
				c.JSON(http.StatusOK, nil)
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func upsertEmployerProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewEmployerProfile
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		profile, err := models.UpsertEmployerProfile(ctx, config.GetDB(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func myEmployerProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		profile, err := models.GetEmployerByUserId(ctx, config.GetDB(), userId)
		if err != nil {
			if utils.IsRecordNotFound(err) {
				c.JSON(http.StatusOK, nil)
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func acceptAgreementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		profile, err := models.AcceptAgreement(ctx, config.GetDB(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "accepted_agreement_at": profile.AcceptedAgreementAt})
	}
}
