package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ambershealthcare/placements_backend/billing"
	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/models"
)

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

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeInvoicing stands in for the external billing provider. Each leg
// can be made to fail independently; call counts verify memoization.
type fakeInvoicing struct {
	customerCalls int
	invoiceCalls  int
	sendCalls     int

	failCustomer bool
	failInvoice  bool
	failSend     bool
}

func (f *fakeInvoicing) EnsureCustomer(ctx context.Context, employerId, email, companyName string) (string, error) {
	f.customerCalls++
	if f.failCustomer {
		return "", errors.New("customer endpoint unavailable")
	}
	return fmt.Sprintf("cus_%d", f.customerCalls), nil
}

func (f *fakeInvoicing) CreateInvoice(ctx context.Context, customerRef string, amountCents int64, currency, description string) (*billing.InvoiceRef, error) {
	f.invoiceCalls++
	if f.failInvoice {
		return nil, errors.New("invoice endpoint unavailable")
	}
	return &billing.InvoiceRef{ID: fmt.Sprintf("in_%d", f.invoiceCalls), Status: "open"}, nil
}

func (f *fakeInvoicing) SendInvoice(ctx context.Context, invoiceId string) (string, error) {
	f.sendCalls++
	if f.failSend {
		return "", errors.New("send endpoint unavailable")
	}
	return invoiceId, nil
}

// fixture is one fully-wired chain: employer user -> employer profile
// (agreement accepted) -> candidate -> job -> introduction.
type fixture struct {
	employerUser *models.User
	employer     *models.EmployerProfile
	candidate    *models.CandidateProfile
	job          *models.JobPosting
	intro        *models.Introduction
}

func seedIntroductionChain(t *testing.T, db *gorm.DB, tag string) *fixture {
	t.Helper()

	employerUser := models.User{
		Email:    tag + "-employer@example.com",
		Password: "x",
		Role:     models.UserRoleEmployer,
	}
	if err := db.Create(&employerUser).Error; err != nil {
		t.Fatalf("seed employer user: %v", err)
	}

	now := time.Now().UTC()
	employer := models.EmployerProfile{
		UserId:              employerUser.ID,
		CompanyName:         "Acadian Health Partners",
		ContactName:         "Renee Fontenot",
		Parish:              "East Baton Rouge",
		AcceptedAgreementAt: &now,
	}
	if err := db.Create(&employer).Error; err != nil {
		t.Fatalf("seed employer profile: %v", err)
	}

	candidateUser := models.User{
		Email:    tag + "-candidate@example.com",
		Password: "x",
		Role:     models.UserRoleCandidate,
	}
	if err := db.Create(&candidateUser).Error; err != nil {
		t.Fatalf("seed candidate user: %v", err)
	}
	candidate := models.CandidateProfile{
		UserId:      candidateUser.ID,
		FullName:    "Jordan Thibodeaux",
		Parish:      "Ascension",
		Specialties: models.SpecialtySet{"Medical Billing"},
		Status:      models.CandidateStatusActive,
	}
	if err := db.Create(&candidate).Error; err != nil {
		t.Fatalf("seed candidate profile: %v", err)
	}

	job := models.JobPosting{
		EmployerId:   employer.ID,
		Title:        "Medical Billing Specialist",
		Description:  "Remote, full time",
		Parish:       "East Baton Rouge",
		RoleCategory: "Medical Billing",
		Status:       models.JobStatusOpen,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	intro := models.Introduction{JobId: job.ID, CandidateId: candidate.ID}
	if err := db.Create(&intro).Error; err != nil {
		t.Fatalf("seed introduction: %v", err)
	}

	return &fixture{
		employerUser: &employerUser,
		employer:     &employer,
		candidate:    &candidate,
		job:          &job,
		intro:        &intro,
	}
}
