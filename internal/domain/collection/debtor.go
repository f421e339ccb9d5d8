package collection

import (
	"net/mail"
	"strings"
)

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

type Debtor struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address Address
	Debts   []Debt
}

// NewDebtor trims every field. An email that does not parse is dropped so
// the rest of the record is still kept.
func NewDebtor(name, email, phone string, address Address) (Debtor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Debtor{}, ErrMissingName
	}

	return Debtor{
		Name:  name,
		Email: cleanEmail(email),
		Phone: strings.TrimSpace(phone),
		Address: Address{
			Street:  strings.TrimSpace(address.Street),
			City:    strings.TrimSpace(address.City),
			State:   strings.TrimSpace(address.State),
			ZipCode: strings.TrimSpace(address.ZipCode),
		},
	}, nil
}

func cleanEmail(raw string) string {
	email := strings.TrimSpace(raw)
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
