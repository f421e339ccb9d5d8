package collection

import "strings"

type Vendor struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     Address
	ServiceType string
	Status      string
}

func NewVendor(v Vendor) (Vendor, error) {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return Vendor{}, ErrMissingName
	}

	v.Email = cleanEmail(v.Email)

	v.Status = strings.ToLower(strings.TrimSpace(v.Status))
	if v.Status == "" {
		v.Status = "active"
	}
	return v, nil
}
