package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Debt struct {
	ID               string          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PortfolioID      string          `gorm:"type:uuid;index;not null"`
	DebtorID         string          `gorm:"type:uuid;index;not null"`
	AccountNumber    string          `gorm:"size:64;not null"`
	OriginalBalance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurrentBalance   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OriginalCreditor string          `gorm:"size:255;not null;default:''"`
	ChargeOffDate    *time.Time      `gorm:"type:date"`
	LastPaymentDate  *time.Time      `gorm:"type:date"`
	Status           string          `gorm:"size:32;not null"`
	Priority         string          `gorm:"size:16;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Debt) TableName() string {
	return "debts"
}
