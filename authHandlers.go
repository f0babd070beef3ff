package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

func registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		result, err := models.RegisterUser(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		result, err := models.LoginUser(c.Request.Context(), config.GetDB(), input.Email, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func logoutHandler() gin.HandlerFunc {
	// Tokens are stateless; logout is client-side token disposal.
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, _ := utils.GetUserIdFromContext(ctx)

		user, err := models.GetUser(ctx, config.GetDB(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
