package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&User{},
		&CandidateProfile{}, &EmployerProfile{},
		&JobPosting{},
		&Introduction{},
		&HireConfirmation{},
		&PlacementInvoice{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
