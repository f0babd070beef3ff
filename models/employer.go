package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployerProfile struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	UserId              string     `gorm:"size:36;not null;unique" json:"user_id"`
	CompanyName         string     `gorm:"size:255;not null" json:"company_name"`
	ContactName         string     `gorm:"size:255;not null" json:"contact_name"`
	Phone               string     `gorm:"size:20" json:"phone"`
	Parish              string     `gorm:"size:100;not null" json:"parish"`
	Website             string     `gorm:"size:500" json:"website"`
	StripeCustomerId    *string    `gorm:"size:255" json:"stripe_customer_id"`
	AcceptedAgreementAt *time.Time `json:"accepted_agreement_at"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *EmployerProfile) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// HasAcceptedAgreement is the hard precondition for posting jobs.
func (e *EmployerProfile) HasAcceptedAgreement() bool {
	return e.AcceptedAgreementAt != nil
}

type NewEmployerProfile struct {
	CompanyName string `json:"company_name" binding:"required"`
	ContactName string `json:"contact_name" binding:"required"`
	Phone       string `json:"phone"`
	Parish      string `json:"parish" binding:"required"`
	Website     string `json:"website"`
}

// UpsertEmployerProfile creates or updates the caller's own profile,
// keyed on user_id. The billing customer ref and agreement timestamp are
// never touched by the upsert.
func UpsertEmployerProfile(ctx context.Context, db *gorm.DB, userId string, input *NewEmployerProfile) (*EmployerProfile, error) {
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, "US"); err != nil {
			return nil, err
		}
	}

	profile := EmployerProfile{
		UserId:      userId,
		CompanyName: strings.TrimSpace(input.CompanyName),
		ContactName: strings.TrimSpace(input.ContactName),
		Phone:       input.Phone,
		Parish:      input.Parish,
		Website:     input.Website,
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "contact_name", "phone", "parish", "website",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return GetEmployerByUserId(ctx, db, userId)
}

func GetEmployerByUserId(ctx context.Context, db *gorm.DB, userId string) (*EmployerProfile, error) {
	var result EmployerProfile
	err := db.WithContext(ctx).Where("user_id = ?", userId).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AcceptAgreement stamps the placement agreement acceptance time. The
// first acceptance wins; re-accepting does not move the timestamp.
func AcceptAgreement(ctx context.Context, db *gorm.DB, userId string) (*EmployerProfile, error) {
	employer, err := GetEmployerByUserId(ctx, db, userId)
	if err != nil {
		return nil, err
	}
	if employer.AcceptedAgreementAt != nil {
		return employer, nil
	}

	now := time.Now().UTC()
	err = db.WithContext(ctx).Model(&EmployerProfile{}).
		Where("user_id = ? AND accepted_agreement_at IS NULL", userId).
		Update("accepted_agreement_at", now).Error
	if err != nil {
		return nil, err
	}
	return GetEmployerByUserId(ctx, db, userId)
}

// SetStripeCustomerId memoizes the external billing customer ref so it
// is created at most once per employer.
func SetStripeCustomerId(ctx context.Context, db *gorm.DB, employerId string, customerRef string) error {
	return db.WithContext(ctx).Model(&EmployerProfile{}).
		Where("id = ?", employerId).
		Update("stripe_customer_id", customerRef).Error
}
