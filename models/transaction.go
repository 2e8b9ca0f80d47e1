package models

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable financial ledger entry. There is no update or
// delete path; corrections are posted as new REFUND entries.
type Transaction struct {
	ID              int                 `gorm:"primary_key" json:"id"`
	Type            TransactionType     `gorm:"index;size:10;not null" json:"type" binding:"required"`
	Category        TransactionCategory `gorm:"index;size:20;not null" json:"category" binding:"required"`
	Amount          decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description     string              `gorm:"type:text" json:"description"`
	PatientId       *int                `gorm:"index" json:"patient_id"`
	PaymentMethod   string              `gorm:"size:50" json:"payment_method"`
	ReferenceNumber string              `gorm:"uniqueIndex;size:36;not null" json:"reference_number"`
	CreatedBy       string              `gorm:"size:100;not null" json:"created_by"`
	TransactionDate time.Time           `gorm:"index;not null" json:"transaction_date"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

type NewTransaction struct {
	Type            TransactionType     `json:"type" binding:"required"`
	Category        TransactionCategory `json:"category" binding:"required"`
	Amount          decimal.Decimal     `json:"amount"`
	Description     string              `json:"description"`
	PatientId       *int                `json:"patient_id"`
	PaymentMethod   string              `json:"payment_method"`
	CreatedBy       string              `json:"created_by" binding:"required"`
	TransactionDate *time.Time          `json:"transaction_date"`
}

// InsertTransaction writes a ledger entry inside the caller's transaction.
// All ledger writes funnel through here so every entry gets a reference
// number and a transaction date.
func InsertTransaction(tx *gorm.DB, input *NewTransaction) (*Transaction, error) {
	transactionDate := time.Now().UTC()
	if input.TransactionDate != nil {
		transactionDate = *input.TransactionDate
	}

	record := Transaction{
		Type:            input.Type,
		Category:        input.Category,
		Amount:          input.Amount,
		Description:     input.Description,
		PatientId:       input.PatientId,
		PaymentMethod:   input.PaymentMethod,
		ReferenceNumber: uuid.NewString(),
		CreatedBy:       input.CreatedBy,
		TransactionDate: transactionDate,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.PatientId != nil && *input.PatientId > 0 {
		if err := utils.ValidateResourceId[Patient](ctx, *input.PatientId); err != nil {
			return nil, ErrPatientNotFound
		}
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	record, err := InsertTransaction(tx, input)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "transactions", record.ID, record)
	return record, nil
}

func GetTransaction(ctx context.Context, id int) (*Transaction, error) {
	return utils.FetchModel[Transaction](ctx, id)
}

func GetTransactions(ctx context.Context, transactionType *TransactionType, category *TransactionCategory, fromDate *time.Time, toDate *time.Time) ([]*Transaction, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if transactionType != nil && *transactionType != "" {
		dbCtx = dbCtx.Where("type = ?", *transactionType)
	}
	if category != nil && *category != "" {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	if fromDate != nil && toDate != nil {
		dbCtx = dbCtx.Where("transaction_date BETWEEN ? AND ?", *fromDate, *toDate)
	}

	var results []*Transaction
	if err := dbCtx.Order("transaction_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
