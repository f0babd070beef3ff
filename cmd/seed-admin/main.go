// seed-admin creates the admin console user if it does not exist yet.
// The admin role cannot be self-registered through the API.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// ADMIN_EMAIL and ADMIN_PASSWORD override the defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

const (
	defaultAdminEmail    = "amber@ambershealthcare.com"
	defaultAdminPassword = "admin123"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("admin user already exists: %s\n", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Role:     models.UserRoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin user seeded: %s\n", email)
}
