package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportFinancialSummaryExcel writes the financial summary for the window as
// an .xlsx workbook.
func ExportFinancialSummaryExcel(ctx context.Context, w io.Writer, fromDate time.Time, toDate time.Time) error {
	summary, err := GetFinancialSummaryReport(ctx, fromDate, toDate)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Financial Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "From")
	f.SetCellValue(sheet, "B1", summary.FromDate.Format("2006-01-02"))
	f.SetCellValue(sheet, "A2", "To")
	f.SetCellValue(sheet, "B2", summary.ToDate.Format("2006-01-02"))

	rows := []struct {
		label string
		value string
	}{
		{"Total Revenue", summary.TotalRevenue.StringFixed(2)},
		{"Operational Expense", summary.OperationalExpense.StringFixed(2)},
		{"Inventory Cost Value", summary.InventoryCostValue.StringFixed(2)},
		{"Total Expenses", summary.TotalExpenses.StringFixed(2)},
		{"Profit", summary.Profit.StringFixed(2)},
		{"Sale Count", fmt.Sprint(summary.SaleCount)},
		{"Expense Count", fmt.Sprint(summary.ExpenseCount)},
	}
	for i, row := range rows {
		f.SetCellValue(sheet, "A"+fmt.Sprint(i+4), row.label)
		f.SetCellValue(sheet, "B"+fmt.Sprint(i+4), row.value)
	}

	return f.Write(w)
}
