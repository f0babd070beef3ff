package models_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
)

// newTestDB opens a private in-memory database per test. The schema and
// gorm settings (TranslateError included) match production; only the
// engine differs.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), config.InitConfig())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	models.MigrateTable(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &user
}

func seedEmployer(t *testing.T, db *gorm.DB, email string, accepted bool) *models.EmployerProfile {
	t.Helper()
	user := seedUser(t, db, email, models.UserRoleEmployer)
	profile := models.EmployerProfile{
		UserId:      user.ID,
		CompanyName: "Baton Rouge Family Clinic",
		ContactName: "Pat Broussard",
		Parish:      "East Baton Rouge",
	}
	if accepted {
		now := time.Now().UTC()
		profile.AcceptedAgreementAt = &now
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed employer %s: %v", email, err)
	}
	return &profile
}

func seedCandidate(t *testing.T, db *gorm.DB, email string, specialties ...string) *models.CandidateProfile {
	t.Helper()
	user := seedUser(t, db, email, models.UserRoleCandidate)
	profile := models.CandidateProfile{
		UserId:      user.ID,
		FullName:    "Jordan Thibodeaux",
		Parish:      "Ascension",
		Specialties: models.SpecialtySet(specialties),
		Status:      models.CandidateStatusActive,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed candidate %s: %v", email, err)
	}
	return &profile
}

func seedJob(t *testing.T, db *gorm.DB, employerId string, category string) *models.JobPosting {
	t.Helper()
	job := models.JobPosting{
		EmployerId:   employerId,
		Title:        category + " needed",
		Description:  "Remote healthcare admin role",
		Parish:       "East Baton Rouge",
		RoleCategory: category,
		Status:       models.JobStatusOpen,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return &job
}

func seedIntroduction(t *testing.T, db *gorm.DB, jobId, candidateId string) *models.Introduction {
	t.Helper()
	intro := models.Introduction{JobId: jobId, CandidateId: candidateId}
	if err := db.Create(&intro).Error; err != nil {
		t.Fatalf("seed introduction: %v", err)
	}
	return &intro
}

func testCtx() context.Context { return context.Background() }
