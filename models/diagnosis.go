package models

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
)

type Diagnosis struct {
	ID          int       `gorm:"primary_key" json:"id"`
	VisitId     int       `gorm:"index;not null" json:"visit_id" binding:"required"`
	Code        string    `gorm:"size:20" json:"code"`
	Description string    `gorm:"type:text;not null" json:"description" binding:"required"`
	DiagnosedBy string    `gorm:"size:100" json:"diagnosed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDiagnosis struct {
	VisitId     int    `json:"visit_id" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description" binding:"required"`
	DiagnosedBy string `json:"diagnosed_by"`
}

func CreateDiagnosis(ctx context.Context, input *NewDiagnosis) (*Diagnosis, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[Visit](ctx, input.VisitId); err != nil {
		return nil, ErrVisitNotFound
	}

	diagnosis := Diagnosis{
		VisitId:     input.VisitId,
		Code:        input.Code,
		Description: input.Description,
		DiagnosedBy: input.DiagnosedBy,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&diagnosis).Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "diagnoses", diagnosis.ID, diagnosis)
	return &diagnosis, nil
}

func GetDiagnosesByVisit(ctx context.Context, visitId int) ([]*Diagnosis, error) {
	db := config.GetDB()
	var results []*Diagnosis
	if err := db.WithContext(ctx).Where("visit_id = ?", visitId).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
