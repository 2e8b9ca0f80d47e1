package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a manually recorded operational cost. Creating one also posts a
// mirror Transaction(type=EXPENSE) in the same database transaction so the
// cash-flow aggregation sees it; the two rows are created together and their
// amounts are never edited apart afterwards.
type Expense struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Category      ExpenseCategory `gorm:"index;size:20;not null" json:"category" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	ExpenseDate   time.Time       `gorm:"index;not null" json:"expense_date"`
	CreatedBy     string          `gorm:"size:100;not null" json:"created_by"`
	TransactionId int             `gorm:"index;not null" json:"transaction_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewExpense struct {
	Category    ExpenseCategory `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate *time.Time      `json:"expense_date"`
	CreatedBy   string          `json:"created_by" binding:"required"`
}

// InsertExpense writes the expense and its mirror transaction inside the
// caller's database transaction.
func InsertExpense(tx *gorm.DB, input *NewExpense, category TransactionCategory) (*Expense, error) {
	expenseDate := time.Now().UTC()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	record, err := InsertTransaction(tx, &NewTransaction{
		Type:            TransactionTypeExpense,
		Category:        category,
		Amount:          input.Amount,
		Description:     input.Description,
		CreatedBy:       input.CreatedBy,
		TransactionDate: &expenseDate,
	})
	if err != nil {
		return nil, err
	}

	expense := Expense{
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   input.Description,
		ExpenseDate:   expenseDate,
		CreatedBy:     input.CreatedBy,
		TransactionId: record.ID,
	}
	if err := tx.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, errors.New("expense amount must be positive")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	expense, err := InsertExpense(tx, input, TransactionCategoryOther)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	SaveAuditCreate(ctx, "expenses", expense.ID, expense)
	return expense, nil
}

func GetExpense(ctx context.Context, id int) (*Expense, error) {
	return utils.FetchModel[Expense](ctx, id)
}

func GetExpenses(ctx context.Context, category *ExpenseCategory, fromDate *time.Time, toDate *time.Time) ([]*Expense, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if category != nil && *category != "" {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	if fromDate != nil && toDate != nil {
		dbCtx = dbCtx.Where("expense_date BETWEEN ? AND ?", *fromDate, *toDate)
	}

	var results []*Expense
	if err := dbCtx.Order("expense_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
