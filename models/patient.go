package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/google/uuid"
)

type Patient struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Mrn         string     `gorm:"uniqueIndex;size:36;not null" json:"mrn"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name" binding:"required"`
	LastName    string     `gorm:"size:100;not null" json:"last_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      Gender     `gorm:"size:10" json:"gender"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Email       string     `gorm:"size:255" json:"email"`
	Address     string     `gorm:"type:text" json:"address"`
	// Soft delete flag. Patients referenced by visits or transactions are never
	// hard-removed; they are deactivated instead.
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPatient struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      Gender     `json:"gender"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPatient) validate(ctx context.Context, _ int) error {
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreatePatient(ctx context.Context, input *NewPatient) (*Patient, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	patient := Patient{
		Mrn:         uuid.NewString(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "patients", patient.ID, patient)
	return &patient, nil
}

func UpdatePatient(ctx context.Context, id int, input *NewPatient) (*Patient, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	patient, err := utils.FetchModel[Patient](ctx, id)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(patient).Updates(map[string]interface{}{
		"FirstName":   input.FirstName,
		"LastName":    input.LastName,
		"DateOfBirth": input.DateOfBirth,
		"Gender":      input.Gender,
		"Phone":       input.Phone,
		"Email":       input.Email,
		"Address":     input.Address,
	}).Error
	if err != nil {
		return nil, err
	}

	SaveAuditUpdate(ctx, "patients", patient.ID, input)
	return patient, nil
}

// DeactivatePatient soft-deletes. The row stays in place for visits and
// transactions that reference it.
func DeactivatePatient(ctx context.Context, id int) (*Patient, error) {
	patient, err := utils.FetchModel[Patient](ctx, id)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(patient).Update("IsActive", false).Error; err != nil {
		return nil, err
	}

	SaveAuditDelete(ctx, "patients", patient.ID, nil)
	return patient, nil
}

func GetPatient(ctx context.Context, id int) (*Patient, error) {
	patient, err := utils.FetchModel[Patient](ctx, id)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func GetPatients(ctx context.Context, activeOnly bool) ([]*Patient, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	var results []*Patient
	if err := dbCtx.Order("last_name, first_name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
