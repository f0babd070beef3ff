package models_test

import (
	"errors"
	"testing"

	"github.com/ambershealthcare/placements_backend/models"
	"github.com/ambershealthcare/placements_backend/utils"
)

func TestCreateIntroduction(t *testing.T) {
	db := newTestDB(t)
	employer := seedEmployer(t, db, "clinic@example.com", true)
	job := seedJob(t, db, employer.ID, "Medical Billing")
	candidate := seedCandidate(t, db, "cand@example.com", "Medical Billing")

	input := &models.NewIntroduction{
		JobId:       job.ID,
		CandidateId: candidate.ID,
		Note:        "strong billing background",
	}
	intro, err := models.CreateIntroduction(testCtx(), db, input)
	if err != nil {
		t.Fatalf("CreateIntroduction: %v", err)
	}
	if intro.ID == "" {
		t.Error("expected generated id")
	}

	// Second create for the same pair hits the unique index.
	_, err = models.CreateIntroduction(testCtx(), db, input)
	if !errors.Is(err, utils.ErrorConflict) {
		t.Fatalf("expected ErrorConflict, got %v", err)
	}

	var count int64
	db.Model(&models.Introduction{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 introduction row, got %d", count)
	}
}

func TestCreateIntroduction_MissingReferences(t *testing.T) {
	db := newTestDB(t)
	employer := seedEmployer(t, db, "clinic@example.com", true)
	job := seedJob(t, db, employer.ID, "Medical Billing")
	candidate := seedCandidate(t, db, "cand@example.com", "Medical Billing")

	cases := []struct {
		name        string
		jobId       string
		candidateId string
	}{
		{"unknown job", "no-such-job", candidate.ID},
		{"unknown candidate", job.ID, "no-such-candidate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := models.CreateIntroduction(testCtx(), db, &models.NewIntroduction{
				JobId:       tc.jobId,
				CandidateId: tc.candidateId,
			})
			if !errors.Is(err, utils.ErrorRecordNotFound) {
				t.Fatalf("expected ErrorRecordNotFound, got %v", err)
			}
		})
	}
}
