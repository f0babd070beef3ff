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

type CandidateProfile struct {
	ID                string          `gorm:"primaryKey;size:36" json:"id"`
	UserId            string          `gorm:"size:36;not null;unique" json:"user_id"`
	FullName          string          `gorm:"size:255;not null" json:"full_name"`
	Phone             string          `gorm:"size:20" json:"phone"`
	Parish            string          `gorm:"size:100;not null" json:"parish"`
	Specialties       SpecialtySet    `gorm:"type:text;not null" json:"role_specialties"`
	ExperienceSummary string          `gorm:"type:text" json:"experience_summary"`
	ResumeUrl         string          `gorm:"size:500" json:"resume_url"`
	Status            CandidateStatus `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *CandidateProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CandidateStatusActive
	}
	return nil
}

type NewCandidateProfile struct {
	FullName          string   `json:"full_name" binding:"required"`
	Phone             string   `json:"phone"`
	Parish            string   `json:"parish" binding:"required"`
	Specialties       []string `json:"role_specialties" binding:"required"`
	ExperienceSummary string   `json:"experience_summary"`
	ResumeUrl         string   `json:"resume_url"`
}

// UpsertCandidateProfile creates or updates the caller's own profile.
// One profile per user; the upsert keys on user_id.
func UpsertCandidateProfile(ctx context.Context, db *gorm.DB, userId string, input *NewCandidateProfile) (*CandidateProfile, error) {
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, "US"); err != nil {
			return nil, err
		}
	}

	profile := CandidateProfile{
		UserId:            userId,
		FullName:          strings.TrimSpace(input.FullName),
		Phone:             input.Phone,
		Parish:            input.Parish,
		Specialties:       SpecialtySet(utils.UniqueSlice(input.Specialties)),
		ExperienceSummary: input.ExperienceSummary,
		ResumeUrl:         input.ResumeUrl,
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "phone", "parish", "specialties", "experience_summary", "resume_url",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return GetCandidateByUserId(ctx, db, userId)
}

func GetCandidateByUserId(ctx context.Context, db *gorm.DB, userId string) (*CandidateProfile, error) {
	var result CandidateProfile
	err := db.WithContext(ctx).Where("user_id = ?", userId).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetCandidate(ctx context.Context, db *gorm.DB, id string) (*CandidateProfile, error) {
	var result CandidateProfile
	err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetAllCandidates(ctx context.Context, db *gorm.DB) ([]*CandidateProfile, error) {
	var results []*CandidateProfile
	if err := db.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
