package models

import (
	"context"

	"gorm.io/gorm"
)

// GetJobMatches returns the active candidates whose specialty set
// contains the job's role category. Pure query, no side effects; result
// order is unspecified. A candidate with malformed specialty data decodes
// to an empty set (see SpecialtySet.Scan) and simply does not match —
// one bad row never aborts the query.
func GetJobMatches(ctx context.Context, db *gorm.DB, jobId string) ([]*CandidateProfile, error) {
	job, err := GetJobPosting(ctx, db, jobId)
	if err != nil {
		return nil, err
	}

	var candidates []*CandidateProfile
	if err := db.WithContext(ctx).Where("status = ?", CandidateStatusActive).Find(&candidates).Error; err != nil {
		return nil, err
	}

	matches := make([]*CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if c.Specialties.Contains(job.RoleCategory) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
