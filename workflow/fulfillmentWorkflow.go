package workflow

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/models"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/shopspring/decimal"
)

type NewPrescriptionItem struct {
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Instructions string `json:"instructions"`
}

type NewPrescriptionBatch struct {
	VisitId       int                    `json:"visit_id"`
	PatientId     int                    `json:"patient_id"`
	PrescribedBy  string                 `json:"prescribed_by" binding:"required"`
	Medications   []*NewPrescriptionItem `json:"medications" binding:"required,min=1,dive"`
	PaymentMethod string                 `json:"payment_method"`
}

// FulfillPrescriptionBatch converts a batch of medication requests into
// completed, paid prescriptions: per line it deducts stock, posts a SALE
// transaction and inserts the prescription row, all inside one database
// transaction. Any failure rolls back the whole batch, including an
// auto-created anchor visit; partial fulfillment is never visible.
//
// Pricing is snapshotted: the amount charged is quantity x selling price at
// the moment of fulfillment, written to both the prescription and its
// transaction.
func FulfillPrescriptionBatch(ctx context.Context, input *NewPrescriptionBatch) ([]*models.Prescription, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.VisitId <= 0 && input.PatientId <= 0 {
		return nil, models.ErrMissingAnchor
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}
	createdBy := input.PrescribedBy
	if userName, ok := utils.GetUserNameFromContext(ctx); ok && userName != "" {
		createdBy = userName
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Resolve or create the anchor visit.
	var visit *models.Visit
	if input.VisitId > 0 {
		var existing models.Visit
		if err := tx.First(&existing, input.VisitId).Error; err != nil {
			tx.Rollback()
			return nil, models.ErrVisitNotFound
		}
		visit = &existing
	} else {
		var count int64
		if err := tx.Model(&models.Patient{}).Where("id = ?", input.PatientId).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if count == 0 {
			tx.Rollback()
			return nil, models.ErrPatientNotFound
		}
		created, err := models.CreateAnchorVisit(tx, input.PatientId, input.PrescribedBy)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		visit = created
	}
	patientId := visit.PatientId

	now := time.Now().UTC()
	prescriptions := make([]*models.Prescription, 0, len(input.Medications))

	// Items are processed in the order submitted; the first failure aborts
	// the whole batch.
	for _, item := range input.Medications {
		stock, err := models.FindMedicationStockByName(tx, item.Medication)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := models.DeductStockQty(tx, stock, item.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}

		totalAmount := stock.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		record, err := models.InsertTransaction(tx, &models.NewTransaction{
			Type:            models.TransactionTypeSale,
			Category:        models.TransactionCategoryPharmacy,
			Amount:          totalAmount,
			Description:     "Pharmacy sale: " + stock.MedicationName,
			PatientId:       &patientId,
			PaymentMethod:   paymentMethod,
			CreatedBy:       createdBy,
			TransactionDate: &now,
		})
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		prescription := models.Prescription{
			VisitId:           visit.ID,
			MedicationStockId: stock.ID,
			MedicationName:    stock.MedicationName,
			Dosage:            item.Dosage,
			Frequency:         item.Frequency,
			Duration:          item.Duration,
			Quantity:          item.Quantity,
			Instructions:      item.Instructions,
			PrescribedBy:      input.PrescribedBy,
			Status:            models.PrescriptionStatusCompleted,
			PaymentStatus:     models.PaymentStatusPaid,
			TotalAmount:       totalAmount,
			PaidAt:            &now,
			TransactionId:     &record.ID,
		}
		if err := tx.Create(&prescription).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		prescriptions = append(prescriptions, &prescription)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	prescriptionIds := make([]int, 0, len(prescriptions))
	for _, p := range prescriptions {
		prescriptionIds = append(prescriptionIds, p.ID)
	}
	models.SaveAuditCreate(ctx, "prescriptions", visit.ID, map[string]interface{}{
		"visit_id":         visit.ID,
		"patient_id":       patientId,
		"prescribed_by":    input.PrescribedBy,
		"prescription_ids": prescriptionIds,
	})

	return prescriptions, nil
}
