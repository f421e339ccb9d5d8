package models

import "time"

type Debtor struct {
	ID        string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	Email     string `gorm:"size:320;not null;default:'';index"`
	Phone     string `gorm:"size:32;not null;default:''"`
	Street    string `gorm:"size:255;not null;default:''"`
	City      string `gorm:"size:120;not null;default:''"`
	State     string `gorm:"size:120;not null;default:''"`
	ZipCode   string `gorm:"size:20;not null;default:''"`
	Debts     []Debt `gorm:"foreignKey:DebtorID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Debtor) TableName() string {
	return "debtors"
}
