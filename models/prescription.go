package models

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/shopspring/decimal"
)

// Prescription is one requested medication line within a visit. Once
// PaymentStatus is Paid the line is linked 1:1 to a Transaction and its
// financial fields (TotalAmount, TransactionId, PaidAt) are immutable.
type Prescription struct {
	ID                int                `gorm:"primary_key" json:"id"`
	VisitId           int                `gorm:"index;not null" json:"visit_id"`
	MedicationStockId int                `gorm:"index;not null" json:"medication_stock_id"`
	MedicationName    string             `gorm:"size:255;not null" json:"medication_name"`
	Dosage            string             `gorm:"size:100" json:"dosage"`
	Frequency         string             `gorm:"size:100" json:"frequency"`
	Duration          string             `gorm:"size:100" json:"duration"`
	Quantity          int                `gorm:"not null" json:"quantity"`
	Instructions      string             `gorm:"type:text" json:"instructions"`
	PrescribedBy      string             `gorm:"size:100;not null" json:"prescribed_by"`
	Status            PrescriptionStatus `gorm:"size:20;default:Active" json:"status"`
	PaymentStatus     PaymentStatus      `gorm:"size:20;default:Pending" json:"payment_status"`
	// TotalAmount snapshots quantity x selling price at fulfillment time;
	// it is never recomputed from the stock ledger afterwards.
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaidAt        *time.Time      `json:"paid_at"`
	TransactionId *int            `gorm:"index" json:"transaction_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetPrescription(ctx context.Context, id int) (*Prescription, error) {
	return utils.FetchModel[Prescription](ctx, id)
}

func GetPrescriptionsByVisit(ctx context.Context, visitId int) ([]*Prescription, error) {
	db := config.GetDB()
	var results []*Prescription
	if err := db.WithContext(ctx).Where("visit_id = ?", visitId).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
