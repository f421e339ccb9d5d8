package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Portfolio struct {
	ID             string          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string          `gorm:"size:255;not null"`
	Client         string          `gorm:"size:255;not null;default:''"`
	Creditor       string          `gorm:"size:255;not null;default:''"`
	Type           string          `gorm:"column:portfolio_type;size:64;not null;default:''"`
	Litigation     bool            `gorm:"not null;default:false"`
	Status         string          `gorm:"size:32;not null"`
	AccountCount   int64           `gorm:"not null;default:0"`
	TotalFaceValue decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Portfolio) TableName() string {
	return "portfolios"
}
