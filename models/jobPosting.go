package models

import (
	"context"
	"errors"
	"time"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobPosting struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	EmployerId   string    `gorm:"size:36;not null;index" json:"employer_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Parish       string    `gorm:"size:100;not null" json:"parish"`
	RoleCategory string    `gorm:"size:100;not null" json:"role_category"`
	Status       JobStatus `gorm:"size:20;not null;default:open" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (j *JobPosting) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
	return nil
}

type NewJobPosting struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Parish       string `json:"parish" binding:"required"`
	RoleCategory string `json:"role_category" binding:"required"`
}

// OpenJobListing is the public job-board row, denormalized with the
// employer's company name.
type OpenJobListing struct {
	JobPosting
	CompanyName string `json:"company_name"`
}

/*
caches:
	OpenJobs (listing for the public board)
*/

const openJobsCacheKey = "OpenJobs"

// CreateJobPosting requires the acting employer to have accepted the
// placement agreement; this is a hard precondition checked before any
// mutation, not advisory.
func CreateJobPosting(ctx context.Context, db *gorm.DB, actingUserId string, input *NewJobPosting) (*JobPosting, error) {
	employer, err := GetEmployerByUserId(ctx, db, actingUserId)
	if err != nil {
		return nil, utils.ErrorForbidden
	}
	if !employer.HasAcceptedAgreement() {
		return nil, utils.ErrorForbidden
	}

	job := JobPosting{
		EmployerId:   employer.ID,
		Title:        input.Title,
		Description:  input.Description,
		Parish:       input.Parish,
		RoleCategory: input.RoleCategory,
		Status:       JobStatusOpen,
	}
	if err := db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey(openJobsCacheKey); err != nil {
		config.LogError(config.GetLogger(), "jobPosting.go", "CreateJobPosting", "RemoveRedisKey", job.ID, err)
	}
	return &job, nil
}

func GetJobPosting(ctx context.Context, db *gorm.DB, id string) (*JobPosting, error) {
	var result JobPosting
	err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOpenJobs serves the public board. The listing is cached briefly;
// the cache is invalidated on job creation and treated as best-effort.
func GetOpenJobs(ctx context.Context, db *gorm.DB) ([]*OpenJobListing, error) {
	var results []*OpenJobListing
	exists, err := config.GetRedisObject(openJobsCacheKey, &results)
	if err == nil && exists {
		return results, nil
	}

	err = db.WithContext(ctx).Model(&JobPosting{}).
		Select("job_postings.*, employer_profiles.company_name AS company_name").
		Joins("JOIN employer_profiles ON employer_profiles.id = job_postings.employer_id").
		Where("job_postings.status = ?", JobStatusOpen).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(openJobsCacheKey, &results, 5*time.Minute); err != nil {
		config.LogError(config.GetLogger(), "jobPosting.go", "GetOpenJobs", "SetRedisObject", nil, err)
	}
	return results, nil
}

func GetEmployerJobs(ctx context.Context, db *gorm.DB, actingUserId string) ([]*JobPosting, error) {
	employer, err := GetEmployerByUserId(ctx, db, actingUserId)
	if err != nil {
		if utils.IsRecordNotFound(err) {
			return []*JobPosting{}, nil
		}
		return nil, err
	}

	var results []*JobPosting
	if err := db.WithContext(ctx).Where("employer_id = ?", employer.ID).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
