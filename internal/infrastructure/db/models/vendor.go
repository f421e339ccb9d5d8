package models

import "time"

type Vendor struct {
	ID          string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string `gorm:"size:255;not null"`
	ContactName string `gorm:"size:255;not null;default:''"`
	Email       string `gorm:"size:320;not null;default:''"`
	Phone       string `gorm:"size:32;not null;default:''"`
	Street      string `gorm:"size:255;not null;default:''"`
	City        string `gorm:"size:120;not null;default:''"`
	State       string `gorm:"size:120;not null;default:''"`
	ZipCode     string `gorm:"size:20;not null;default:''"`
	ServiceType string `gorm:"size:64;not null;default:''"`
	Status      string `gorm:"size:32;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Vendor) TableName() string {
	return "vendors"
}
