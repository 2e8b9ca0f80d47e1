package workflow

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/models"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/shopspring/decimal"
)

type StockAdjustmentInput struct {
	MedicationId int                             `json:"medication_id" binding:"required"`
	Quantity     int                             `json:"quantity" binding:"required,gt=0"`
	Direction    models.StockAdjustmentDirection `json:"direction" binding:"required,oneof=add subtract"`
	// On add, NewCostPrice/NewExpiryDate overwrite the medication's cost price
	// and expiry going forward (not retroactively).
	NewCostPrice  *decimal.Decimal `json:"new_cost_price"`
	NewExpiryDate *time.Time       `json:"new_expiry_date"`
	Reason        string           `json:"reason"`
	AdjustedBy    string           `json:"adjusted_by" binding:"required"`
}

// AdjustStock applies a manual stock movement. A subtract that exceeds the
// current stock fails with InsufficientStockError and writes nothing. An add
// also posts one Expense(INVENTORY) and its mirror Transaction(EXPENSE,
// PHARMACY) for quantity x effective cost price, keeping the financial ledger
// aware of inventory investment.
func AdjustStock(ctx context.Context, input *StockAdjustmentInput) (*models.MedicationStock, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var stock models.MedicationStock
	if err := tx.First(&stock, input.MedicationId).Error; err != nil {
		tx.Rollback()
		return nil, utils.ErrorRecordNotFound
	}

	switch input.Direction {
	case models.StockAdjustmentSubtract:
		if err := models.DeductStockQty(tx, &stock, input.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}

	case models.StockAdjustmentAdd:
		if err := models.AddStockQty(tx, &stock, input.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}

		effectiveCost := stock.CostPrice
		updates := map[string]interface{}{}
		if input.NewCostPrice != nil {
			effectiveCost = *input.NewCostPrice
			updates["CostPrice"] = *input.NewCostPrice
		}
		if input.NewExpiryDate != nil {
			updates["ExpiryDate"] = *input.NewExpiryDate
		}
		if len(updates) > 0 {
			if err := tx.Model(&stock).Updates(updates).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}

		// Restock cost hits the financial ledger as an inventory expense.
		restockCost := effectiveCost.Mul(decimal.NewFromInt(int64(input.Quantity)))
		_, err := models.InsertExpense(tx, &models.NewExpense{
			Category:    models.ExpenseCategoryInventory,
			Amount:      restockCost,
			Description: "Inventory restock: " + stock.MedicationName,
			CreatedBy:   input.AdjustedBy,
		}, models.TransactionCategoryPharmacy)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

	default:
		tx.Rollback()
		return nil, errors.New("invalid adjustment direction")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	models.SaveAuditUpdate(ctx, "medication_stocks", stock.ID, map[string]interface{}{
		"direction":   input.Direction,
		"quantity":    input.Quantity,
		"reason":      input.Reason,
		"adjusted_by": input.AdjustedBy,
	})

	updated, err := models.GetMedicationStock(ctx, stock.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
