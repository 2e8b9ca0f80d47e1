package models

import (
	"log"

	"bitbucket.org/medfocus/hms_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Patient{}, &Visit{}, &Diagnosis{},
		&MedicationStock{}, &Prescription{},
		&Transaction{}, &Expense{},
		&AuditLog{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
