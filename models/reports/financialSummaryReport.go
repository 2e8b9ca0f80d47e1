package reports

import (
	"context"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/models"
	"github.com/shopspring/decimal"
)

// FinancialSummaryResponse aggregates the financial ledger over a date window.
//
// NOTE on the expense figure: TotalExpenses is a hybrid of realized
// operational cost (expense rows in the window) and the UNREALIZED holding
// value of the current inventory (live sum of current_stock x cost_price,
// never stored). Profit is revenue minus that hybrid figure. This is the
// established accounting behavior of this system; do not "fix" it to realized
// cost only without migrating every consumer of the summary.
type FinancialSummaryResponse struct {
	FromDate           time.Time       `json:"from_date"`
	ToDate             time.Time       `json:"to_date"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	OperationalExpense decimal.Decimal `json:"operational_expense"`
	InventoryCostValue decimal.Decimal `json:"inventory_cost_value"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	Profit             decimal.Decimal `json:"profit"`
	SaleCount          int64           `json:"sale_count"`
	ExpenseCount       int64           `json:"expense_count"`
}

func sumTransactionAmount(ctx context.Context, transactionType models.TransactionType, fromDate time.Time, toDate time.Time) (decimal.Decimal, int64, error) {
	db := config.GetDB()

	var total decimal.Decimal
	var count int64
	dbCtx := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("type = ?", transactionType).
		Where("transaction_date BETWEEN ? AND ?", fromDate, toDate)
	if err := dbCtx.Count(&count).Error; err != nil {
		return decimal.Zero, 0, err
	}
	if err := dbCtx.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return total, count, nil
}

func sumExpenseAmount(ctx context.Context, fromDate time.Time, toDate time.Time) (decimal.Decimal, int64, error) {
	db := config.GetDB()

	var total decimal.Decimal
	var count int64
	dbCtx := db.WithContext(ctx).Model(&models.Expense{}).
		Where("expense_date BETWEEN ? AND ?", fromDate, toDate)
	if err := dbCtx.Count(&count).Error; err != nil {
		return decimal.Zero, 0, err
	}
	if err := dbCtx.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return total, count, nil
}

func GetFinancialSummaryReport(ctx context.Context, fromDate time.Time, toDate time.Time) (*FinancialSummaryResponse, error) {
	revenue, saleCount, err := sumTransactionAmount(ctx, models.TransactionTypeSale, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	operationalExpense, expenseCount, err := sumExpenseAmount(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	inventoryValue, err := models.GetInventoryCostValue(ctx)
	if err != nil {
		return nil, err
	}

	totalExpenses := operationalExpense.Add(inventoryValue)

	return &FinancialSummaryResponse{
		FromDate:           fromDate,
		ToDate:             toDate,
		TotalRevenue:       revenue,
		OperationalExpense: operationalExpense,
		InventoryCostValue: inventoryValue,
		TotalExpenses:      totalExpenses,
		Profit:             revenue.Sub(totalExpenses),
		SaleCount:          saleCount,
		ExpenseCount:       expenseCount,
	}, nil
}
