package models

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MedicationStock is one stock ledger entry, unique by medication name.
// CurrentStock is mutated only through the fulfillment and adjustment
// workflows and can never go negative.
type MedicationStock struct {
	ID             int             `gorm:"primary_key" json:"id"`
	MedicationName string          `gorm:"uniqueIndex;size:255;not null" json:"medication_name" binding:"required"`
	Category       string          `gorm:"size:100" json:"category"`
	Unit           string          `gorm:"size:50" json:"unit"`
	CurrentStock   int             `gorm:"not null;default:0" json:"current_stock"`
	MinimumStock   int             `gorm:"not null;default:0" json:"minimum_stock"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	ExpiryDate     *time.Time      `json:"expiry_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewMedicationStock struct {
	MedicationName string          `json:"medication_name" binding:"required"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	CurrentStock   int             `json:"current_stock" binding:"gte=0"`
	MinimumStock   int             `json:"minimum_stock" binding:"gte=0"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	ExpiryDate     *time.Time      `json:"expiry_date"`
}

func CreateMedicationStock(ctx context.Context, input *NewMedicationStock) (*MedicationStock, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := utils.ValidateUnique[MedicationStock](ctx, "medication_name", input.MedicationName, 0); err != nil {
		return nil, err
	}

	stock := MedicationStock{
		MedicationName: input.MedicationName,
		Category:       input.Category,
		Unit:           input.Unit,
		CurrentStock:   input.CurrentStock,
		MinimumStock:   input.MinimumStock,
		CostPrice:      input.CostPrice,
		SellingPrice:   input.SellingPrice,
		ExpiryDate:     input.ExpiryDate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&stock).Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "medication_stocks", stock.ID, stock)
	return &stock, nil
}

// FindMedicationStockByName resolves a stock ledger entry by exact name inside
// a transaction. Missing entries come back as UnknownMedicationError.
func FindMedicationStockByName(tx *gorm.DB, name string) (*MedicationStock, error) {
	var stock MedicationStock
	err := tx.Where("medication_name = ?", name).First(&stock).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &UnknownMedicationError{MedicationName: name}
		}
		return nil, err
	}
	return &stock, nil
}

// DeductStockQty subtracts qty from the medication's current stock with an
// atomic conditional update. Two concurrent callers serialize on the row: the
// UPDATE only applies while current_stock >= qty, so the stock can never go
// negative even under concurrent fulfillment (checked via RowsAffected, not a
// prior read).
func DeductStockQty(tx *gorm.DB, stock *MedicationStock, qty int) error {
	res := tx.Model(&MedicationStock{}).
		Where("id = ? AND current_stock >= ?", stock.ID, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Re-read inside the same transaction for an accurate figure.
		var available int
		if err := tx.Model(&MedicationStock{}).Where("id = ?", stock.ID).
			Select("current_stock").Scan(&available).Error; err != nil {
			return err
		}
		return &InsufficientStockError{
			MedicationName: stock.MedicationName,
			Available:      available,
			Requested:      qty,
		}
	}
	stock.CurrentStock -= qty
	return nil
}

// AddStockQty adds qty to the medication's current stock.
func AddStockQty(tx *gorm.DB, stock *MedicationStock, qty int) error {
	res := tx.Model(&MedicationStock{}).
		Where("id = ?", stock.ID).
		Update("current_stock", gorm.Expr("current_stock + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	stock.CurrentStock += qty
	return nil
}

func GetMedicationStock(ctx context.Context, id int) (*MedicationStock, error) {
	return utils.FetchModel[MedicationStock](ctx, id)
}

func GetMedicationStockByName(ctx context.Context, name string) (*MedicationStock, error) {
	db := config.GetDB()
	var stock MedicationStock
	err := db.WithContext(ctx).Where("medication_name = ?", name).First(&stock).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &UnknownMedicationError{MedicationName: name}
		}
		return nil, err
	}
	return &stock, nil
}

func GetMedicationStocks(ctx context.Context) ([]*MedicationStock, error) {
	db := config.GetDB()
	var results []*MedicationStock
	if err := db.WithContext(ctx).Order("medication_name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetLowStockMedications lists entries at or below their reorder threshold.
func GetLowStockMedications(ctx context.Context) ([]*MedicationStock, error) {
	db := config.GetDB()
	var results []*MedicationStock
	err := db.WithContext(ctx).
		Where("current_stock <= minimum_stock").
		Order("medication_name").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetInventoryCostValue recomputes the holding value live (sum of
// current_stock x cost_price). It is never stored.
func GetInventoryCostValue(ctx context.Context) (decimal.Decimal, error) {
	db := config.GetDB()
	var value decimal.Decimal
	err := db.WithContext(ctx).Model(&MedicationStock{}).
		Select("COALESCE(SUM(current_stock * cost_price), 0)").
		Scan(&value).Error
	if err != nil {
		return decimal.Zero, err
	}
	return value, nil
}
