package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HireConfirmation records the employer-asserted fact that an introduced
// candidate was hired. The unique introduction_id index makes the fact
// at-most-once: a second confirmation attempt loses to the constraint
// and surfaces as Conflict. Rows are never updated or deleted — a hire
// reflects an externally-true event.
type HireConfirmation struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	IntroductionId string    `gorm:"size:36;not null;unique" json:"introduction_id"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	ConfirmedAt    time.Time `gorm:"autoCreateTime" json:"confirmed_at"`
}

func (h *HireConfirmation) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
