package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
)

func createIntroductionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewIntroduction
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		intro, err := models.CreateIntroduction(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": intro.ID})
	}
}

func adminStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := models.GetAdminStats(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func adminCandidatesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := models.GetAllCandidates(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, candidates)
	}
}

func adminCandidateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate, err := models.GetCandidate(c.Request.Context(), config.GetDB(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, candidate)
	}
}
