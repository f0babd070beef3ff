package models

import (
	"context"
	"time"

	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Introduction links one job posting to one candidate. The composite
// unique index is the invariant: an admin can never double-introduce the
// same pair, even under concurrent requests. Introductions are
// append-only; there is no update or delete operation.
type Introduction struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	JobId        string    `gorm:"size:36;not null;index:uniq_intro,unique" json:"job_id"`
	CandidateId  string    `gorm:"size:36;not null;index:uniq_intro,unique" json:"candidate_id"`
	Note         string    `gorm:"type:text" json:"note"`
	IntroducedAt time.Time `gorm:"autoCreateTime" json:"introduced_at"`
}

func (i *Introduction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type NewIntroduction struct {
	JobId       string `json:"job_id" binding:"required"`
	CandidateId string `json:"candidate_id" binding:"required"`
	Note        string `json:"note"`
}

// CreateIntroduction validates both referenced entities and inserts the
// pair. Duplicates are rejected by the storage-layer constraint, not an
// application-level read, so a race between two creates leaves one
// winner and one Conflict.
func CreateIntroduction(ctx context.Context, db *gorm.DB, input *NewIntroduction) (*Introduction, error) {
	if _, err := GetJobPosting(ctx, db, input.JobId); err != nil {
		return nil, err
	}
	if _, err := GetCandidate(ctx, db, input.CandidateId); err != nil {
		return nil, err
	}

	intro := Introduction{
		JobId:       input.JobId,
		CandidateId: input.CandidateId,
		Note:        input.Note,
	}
	if err := db.WithContext(ctx).Create(&intro).Error; err != nil {
		if utils.IsDuplicateKeyErr(err) {
			return nil, utils.ErrorConflict
		}
		return nil, err
	}
	return &intro, nil
}

// EmployerIntroduction is the employer-facing listing row, denormalized
// with candidate and job context plus the hire flag.
type EmployerIntroduction struct {
	Introduction
	CandidateName     string  `json:"candidate_name"`
	ExperienceSummary string  `json:"experience_summary"`
	JobTitle          string  `json:"job_title"`
	HireId            *string `json:"hire_id"`
}

func GetEmployerIntroductions(ctx context.Context, db *gorm.DB, actingUserId string) ([]*EmployerIntroduction, error) {
	employer, err := GetEmployerByUserId(ctx, db, actingUserId)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return []*EmployerIntroduction{}, nil
		}
		return nil, err
	}

	var results []*EmployerIntroduction
	err = db.WithContext(ctx).Model(&Introduction{}).
		Select(`introductions.*,
			candidate_profiles.full_name AS candidate_name,
			candidate_profiles.experience_summary AS experience_summary,
			job_postings.title AS job_title,
			hire_confirmations.id AS hire_id`).
		Joins("JOIN candidate_profiles ON candidate_profiles.id = introductions.candidate_id").
		Joins("JOIN job_postings ON job_postings.id = introductions.job_id").
		Joins("LEFT JOIN hire_confirmations ON hire_confirmations.introduction_id = introductions.id").
		Where("job_postings.employer_id = ?", employer.ID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
