package collection

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DebtStatus string

const (
	DebtStatusNew         DebtStatus = "new"
	DebtStatusContacted   DebtStatus = "contacted"
	DebtStatusInProgress  DebtStatus = "in_progress"
	DebtStatusPaymentPlan DebtStatus = "payment_plan"
	DebtStatusDisputed    DebtStatus = "disputed"
	DebtStatusLegal       DebtStatus = "legal"
	DebtStatusSettled     DebtStatus = "settled"
	DebtStatusPaid        DebtStatus = "paid"
	DebtStatusClosed      DebtStatus = "closed"
)

var debtStatuses = map[DebtStatus]struct{}{
	DebtStatusNew:         {},
	DebtStatusContacted:   {},
	DebtStatusInProgress:  {},
	DebtStatusPaymentPlan: {},
	DebtStatusDisputed:    {},
	DebtStatusLegal:       {},
	DebtStatusSettled:     {},
	DebtStatusPaid:        {},
	DebtStatusClosed:      {},
}

type DebtPriority string

const (
	DebtPriorityLow    DebtPriority = "low"
	DebtPriorityMedium DebtPriority = "medium"
	DebtPriorityHigh   DebtPriority = "high"
	DebtPriorityUrgent DebtPriority = "urgent"
)

var debtPriorities = map[DebtPriority]struct{}{
	DebtPriorityLow:    {},
	DebtPriorityMedium: {},
	DebtPriorityHigh:   {},
	DebtPriorityUrgent: {},
}

// Debt is a single collection case owned by a portfolio and a debtor.
type Debt struct {
	ID               string
	PortfolioID      string
	DebtorID         string
	AccountNumber    string
	OriginalBalance  decimal.Decimal
	CurrentBalance   decimal.Decimal
	OriginalCreditor string
	ChargeOffDate    *time.Time
	LastPaymentDate  *time.Time
	Status           DebtStatus
	Priority         DebtPriority
}

// ParseDebtStatus maps free text ("Payment Plan", "in-progress") onto a
// known status. Unknown or empty input yields DebtStatusNew.
func ParseDebtStatus(raw string) DebtStatus {
	status := DebtStatus(enumKey(raw))
	if _, ok := debtStatuses[status]; ok {
		return status
	}
	return DebtStatusNew
}

// ParseDebtPriority works like ParseDebtStatus and defaults to medium.
func ParseDebtPriority(raw string) DebtPriority {
	priority := DebtPriority(enumKey(raw))
	if _, ok := debtPriorities[priority]; ok {
		return priority
	}
	return DebtPriorityMedium
}

func enumKey(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}
