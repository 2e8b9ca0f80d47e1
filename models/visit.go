package models

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"gorm.io/gorm"
)

type Visit struct {
	ID             int             `gorm:"primary_key" json:"id"`
	PatientId      int             `gorm:"index;not null" json:"patient_id" binding:"required"`
	Doctor         string          `gorm:"size:100;not null" json:"doctor" binding:"required"`
	VisitDate      time.Time       `gorm:"index;not null" json:"visit_date"`
	ChiefComplaint string          `gorm:"type:text" json:"chief_complaint"`
	Status         VisitStatus     `gorm:"size:20;default:Scheduled" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Prescriptions  []*Prescription `gorm:"foreignKey:VisitId" json:"prescriptions"`
	Diagnoses      []*Diagnosis    `gorm:"foreignKey:VisitId" json:"diagnoses"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVisit struct {
	PatientId      int         `json:"patient_id" binding:"required"`
	Doctor         string      `json:"doctor" binding:"required"`
	VisitDate      *time.Time  `json:"visit_date"`
	ChiefComplaint string      `json:"chief_complaint"`
	Status         VisitStatus `json:"status"`
	Notes          string      `json:"notes"`
}

func CreateVisit(ctx context.Context, input *NewVisit) (*Visit, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[Patient](ctx, input.PatientId); err != nil {
		return nil, ErrPatientNotFound
	}

	visitDate := time.Now().UTC()
	if input.VisitDate != nil {
		visitDate = *input.VisitDate
	}
	status := input.Status
	if status == "" {
		status = VisitStatusScheduled
	}

	visit := Visit{
		PatientId:      input.PatientId,
		Doctor:         input.Doctor,
		VisitDate:      visitDate,
		ChiefComplaint: input.ChiefComplaint,
		Status:         status,
		Notes:          input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&visit).Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "visits", visit.ID, visit)
	return &visit, nil
}

// CreateAnchorVisit inserts the minimal visit a prescription batch hangs off
// when the caller did not supply one. Runs inside the batch transaction so a
// failed batch removes the visit too.
func CreateAnchorVisit(tx *gorm.DB, patientId int, doctor string) (*Visit, error) {
	visit := Visit{
		PatientId:      patientId,
		Doctor:         doctor,
		VisitDate:      time.Now().UTC(),
		ChiefComplaint: "Direct Prescription",
		Status:         VisitStatusCompleted,
	}
	if err := tx.Create(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

func UpdateVisitStatus(ctx context.Context, id int, status VisitStatus) (*Visit, error) {
	visit, err := utils.FetchModel[Visit](ctx, id)
	if err != nil {
		return nil, ErrVisitNotFound
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(visit).Update("Status", status).Error; err != nil {
		return nil, err
	}

	SaveAuditUpdate(ctx, "visits", visit.ID, map[string]interface{}{"status": status})
	return visit, nil
}

func GetVisit(ctx context.Context, id int) (*Visit, error) {
	visit, err := utils.FetchModel[Visit](ctx, id, "Prescriptions", "Diagnoses")
	if err != nil {
		return nil, ErrVisitNotFound
	}
	return visit, nil
}

func GetVisitsByPatient(ctx context.Context, patientId int) ([]*Visit, error) {
	db := config.GetDB()
	var results []*Visit
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientId).
		Preload("Prescriptions").
		Preload("Diagnoses").
		Order("visit_date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
