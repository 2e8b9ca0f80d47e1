package reports

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "hms_test.db"))
	if err := config.ConnectDatabase(); err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}
	models.MigrateTable()
	t.Cleanup(func() { _ = config.CloseDatabase() })
}

func seedLedger(t *testing.T, ctx context.Context) {
	t.Helper()

	inWindow := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	// Two in-window sales, one outside.
	for _, sale := range []struct {
		amount float64
		date   time.Time
	}{
		{100.00, inWindow},
		{40.50, inWindow},
		{999.00, outOfWindow},
	} {
		if _, err := models.CreateTransaction(ctx, &models.NewTransaction{
			Type:            models.TransactionTypeSale,
			Category:        models.TransactionCategoryPharmacy,
			Amount:          decimal.NewFromFloat(sale.amount),
			CreatedBy:       "frontdesk",
			TransactionDate: &sale.date,
		}); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	// One in-window expense, one outside.
	for _, exp := range []struct {
		amount float64
		date   time.Time
	}{
		{30.00, inWindow},
		{500.00, outOfWindow},
	} {
		date := exp.date
		if _, err := models.CreateExpense(ctx, &models.NewExpense{
			Category:    models.ExpenseCategoryUtilities,
			Amount:      decimal.NewFromFloat(exp.amount),
			CreatedBy:   "admin",
			ExpenseDate: &date,
		}); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}

	// Inventory on hand: 10 x 2.00 = 20.00 holding value.
	if _, err := models.CreateMedicationStock(ctx, &models.NewMedicationStock{
		MedicationName: "Paracetamol",
		CurrentStock:   10,
		CostPrice:      decimal.NewFromFloat(2.00),
		SellingPrice:   decimal.NewFromFloat(4.00),
	}); err != nil {
		t.Fatalf("CreateMedicationStock: %v", err)
	}
}

func TestGetFinancialSummaryReport(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	seedLedger(t, ctx)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	summary, err := GetFinancialSummaryReport(ctx, from, to)
	if err != nil {
		t.Fatalf("GetFinancialSummaryReport: %v", err)
	}

	if !summary.TotalRevenue.Equal(decimal.RequireFromString("140.5")) {
		t.Errorf("total revenue = %s, want 140.50", summary.TotalRevenue)
	}
	if summary.SaleCount != 2 {
		t.Errorf("sale count = %d, want 2", summary.SaleCount)
	}
	if !summary.OperationalExpense.Equal(decimal.NewFromInt(30)) {
		t.Errorf("operational expense = %s, want 30.00", summary.OperationalExpense)
	}
	if summary.ExpenseCount != 1 {
		t.Errorf("expense count = %d, want 1", summary.ExpenseCount)
	}
	if !summary.InventoryCostValue.Equal(decimal.NewFromInt(20)) {
		t.Errorf("inventory cost value = %s, want 20.00", summary.InventoryCostValue)
	}
	// Expense total blends the realized window cost with the live holding
	// value of the shelf; profit follows from that blend.
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total expenses = %s, want 50.00", summary.TotalExpenses)
	}
	if !summary.Profit.Equal(decimal.RequireFromString("90.5")) {
		t.Errorf("profit = %s, want 90.50", summary.Profit)
	}
}

func TestGetFinancialSummaryReport_EmptyLedger(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	summary, err := GetFinancialSummaryReport(ctx, from, to)
	if err != nil {
		t.Fatalf("GetFinancialSummaryReport: %v", err)
	}
	if !summary.TotalRevenue.IsZero() || !summary.TotalExpenses.IsZero() || !summary.Profit.IsZero() {
		t.Errorf("empty ledger summary not zero: %+v", summary)
	}
	if summary.SaleCount != 0 || summary.ExpenseCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", summary.SaleCount, summary.ExpenseCount)
	}
}

func TestExportFinancialSummaryExcel(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	seedLedger(t, ctx)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := ExportFinancialSummaryExcel(ctx, &buf, from, to); err != nil {
		t.Fatalf("ExportFinancialSummaryExcel: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	revenue, err := f.GetCellValue("Financial Summary", "B4")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if revenue != "140.50" {
		t.Errorf("revenue cell = %q, want 140.50", revenue)
	}
}
