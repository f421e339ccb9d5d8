package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
	"github.com/mohammadpnp/debt-import/internal/infrastructure/db/models"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) CreateVendor(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	row := models.Vendor{
		Name:        vendor.Name,
		ContactName: vendor.ContactName,
		Email:       vendor.Email,
		Phone:       vendor.Phone,
		Street:      vendor.Address.Street,
		City:        vendor.Address.City,
		State:       vendor.Address.State,
		ZipCode:     vendor.Address.ZipCode,
		ServiceType: vendor.ServiceType,
		Status:      vendor.Status,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Vendor{}, fmt.Errorf("create vendor: %w", err)
	}

	vendor.ID = row.ID
	return vendor, nil
}
