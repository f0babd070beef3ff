package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

func createJobHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewJobPosting
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		job, err := models.CreateJobPosting(ctx, config.GetDB(), userId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": job.ID})
	}
}

func openJobsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := models.GetOpenJobs(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

func employerJobsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		jobs, err := models.GetEmployerJobs(ctx, config.GetDB(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

// jobMatchesHandler serves both admins and employers reviewing their own
// jobs; matching itself is a pure filter with no side effects.
func jobMatchesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		matches, err := models.GetJobMatches(c.Request.Context(), config.GetDB(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, matches)
	}
}
