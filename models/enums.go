package models

import "errors"

type VisitStatus string

const (
	VisitStatusScheduled  VisitStatus = "Scheduled"
	VisitStatusInProgress VisitStatus = "InProgress"
	VisitStatusCompleted  VisitStatus = "Completed"
	VisitStatusCancelled  VisitStatus = "Cancelled"
)

func (s *VisitStatus) UnmarshalText(b []byte) error {
	switch str := string(b); str {
	case "Scheduled", "InProgress", "Completed", "Cancelled":
		*s = VisitStatus(str)
	default:
		return errors.New("invalid visit status")
	}
	return nil
}

type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "Active"
	PrescriptionStatusCompleted PrescriptionStatus = "Completed"
	PrescriptionStatusCancelled PrescriptionStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

type TransactionType string

const (
	TransactionTypeSale    TransactionType = "SALE"
	TransactionTypeExpense TransactionType = "EXPENSE"
	TransactionTypePayment TransactionType = "PAYMENT"
	TransactionTypeRefund  TransactionType = "REFUND"
)

func (t *TransactionType) UnmarshalText(b []byte) error {
	switch str := string(b); str {
	case "SALE", "EXPENSE", "PAYMENT", "REFUND":
		*t = TransactionType(str)
	default:
		return errors.New("invalid transaction type")
	}
	return nil
}

type TransactionCategory string

const (
	TransactionCategoryPharmacy     TransactionCategory = "PHARMACY"
	TransactionCategoryConsultation TransactionCategory = "CONSULTATION"
	TransactionCategoryLaboratory   TransactionCategory = "LABORATORY"
	TransactionCategoryProcedure    TransactionCategory = "PROCEDURE"
	TransactionCategoryOther        TransactionCategory = "OTHER"
)

type ExpenseCategory string

const (
	ExpenseCategoryInventory   ExpenseCategory = "INVENTORY"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategorySalaries    ExpenseCategory = "SALARIES"
	ExpenseCategorySupplies    ExpenseCategory = "SUPPLIES"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

func (c *ExpenseCategory) UnmarshalText(b []byte) error {
	switch str := string(b); str {
	case "INVENTORY", "UTILITIES", "SALARIES", "SUPPLIES", "MAINTENANCE", "OTHER":
		*c = ExpenseCategory(str)
	default:
		return errors.New("invalid expense category")
	}
	return nil
}

type StockAdjustmentDirection string

const (
	StockAdjustmentAdd      StockAdjustmentDirection = "add"
	StockAdjustmentSubtract StockAdjustmentDirection = "subtract"
)

type UserRole string

const (
	UserRoleAdmin        UserRole = "Admin"
	UserRoleDoctor       UserRole = "Doctor"
	UserRolePharmacist   UserRole = "Pharmacist"
	UserRoleReceptionist UserRole = "Receptionist"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)
