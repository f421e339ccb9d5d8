package imports

import (
	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

type CanonicalField string

const (
	FieldClientName       CanonicalField = "client_name"
	FieldFirstName        CanonicalField = "first_name"
	FieldLastName         CanonicalField = "last_name"
	FieldDebtorName       CanonicalField = "debtor_name"
	FieldAccountNumber    CanonicalField = "account_number"
	FieldOriginalBalance  CanonicalField = "original_balance"
	FieldCurrentBalance   CanonicalField = "current_balance"
	FieldEmail            CanonicalField = "email"
	FieldPhone            CanonicalField = "phone"
	FieldAddress          CanonicalField = "address"
	FieldCity             CanonicalField = "city"
	FieldState            CanonicalField = "state"
	FieldZipCode          CanonicalField = "zip_code"
	FieldOriginalCreditor CanonicalField = "original_creditor"
	FieldChargeOffDate    CanonicalField = "charge_off_date"
	FieldLastPaymentDate  CanonicalField = "last_payment_date"
	FieldStatus           CanonicalField = "status"
	FieldPriority         CanonicalField = "priority"

	FieldVendorName  CanonicalField = "vendor_name"
	FieldContactName CanonicalField = "contact_name"
	FieldServiceType CanonicalField = "service_type"
)

type Target string

const (
	TargetPortfolio Target = "portfolio"
	TargetCase      Target = "case"
	TargetDebtor    Target = "debtor"
	TargetVendor    Target = "vendor"
)

type ValueKind string

const (
	ValueText     ValueKind = "text"
	ValueCurrency ValueKind = "currency"
	ValueDate     ValueKind = "date"
)

// FieldSpec describes one canonical field. Patterns are matched as
// substrings of the normalized header, Exact as whole normalized headers.
type FieldSpec struct {
	Field    CanonicalField `json:"field"`
	Label    string         `json:"label"`
	Required bool           `json:"required"`
	Target   Target         `json:"target"`
	Value    ValueKind      `json:"value"`
	Patterns []string       `json:"-"`
	Exact    []string       `json:"-"`
	Example  []string       `json:"-"`
}

// caseFields is ordered by auto-mapping priority. first_name and last_name
// sit ahead of debtor_name so a "First Name" header is never read as the
// full name.
var caseFields = []FieldSpec{
	{
		Field: FieldClientName, Label: "Client", Target: TargetPortfolio, Value: ValueText,
		Patterns: []string{"client_name", "client", "portfolio_name", "portfolio"},
		Example:  []string{"Acme Bank", "Acme Bank"},
	},
	{
		Field: FieldFirstName, Label: "First Name", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"first_name", "firstname", "fname", "given_name"},
		Exact:    []string{"first"},
	},
	{
		Field: FieldLastName, Label: "Last Name", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"last_name", "lastname", "lname", "surname", "family_name"},
		Exact:    []string{"last"},
	},
	{
		Field: FieldDebtorName, Label: "Debtor Name", Required: true, Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"debtor_name", "debtor_full_name", "full_name", "customer_name", "consumer_name", "borrower_name", "account_holder"},
		Exact:    []string{"name", "debtor", "customer", "consumer", "borrower"},
		Example:  []string{"John Doe", "Jane Smith"},
	},
	{
		Field: FieldAccountNumber, Label: "Account Number", Required: true, Target: TargetCase, Value: ValueText,
		Patterns: []string{"account_number", "account_no", "account_num", "acct_number", "acct_num", "acct_no", "account_id", "account"},
		Exact:    []string{"acct"},
		Example:  []string{"ACC-1001", "ACC-1002"},
	},
	{
		Field: FieldOriginalBalance, Label: "Original Balance", Required: true, Target: TargetCase, Value: ValueCurrency,
		Patterns: []string{"original_balance", "orig_balance", "original_amount", "orig_amount", "face_value", "face_amount", "principal"},
		Example:  []string{"1250.00", "830.40"},
	},
	{
		Field: FieldCurrentBalance, Label: "Current Balance", Target: TargetCase, Value: ValueCurrency,
		Patterns: []string{"current_balance", "curr_balance", "balance_due", "amount_due", "current_amount", "outstanding", "balance"},
		Example:  []string{"1100.00", "830.40"},
	},
	{
		Field: FieldEmail, Label: "Email", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"email", "e_mail"},
		Example:  []string{"john.doe@example.com", "jane.smith@example.com"},
	},
	{
		Field: FieldPhone, Label: "Phone", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"phone", "mobile", "cell", "telephone"},
		Example:  []string{"555-0100", "555-0101"},
	},
	{
		Field: FieldAddress, Label: "Address", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"address", "street", "addr"},
		Example:  []string{"12 Main St", "400 Oak Ave"},
	},
	{
		Field: FieldCity, Label: "City", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"city", "town"},
		Example:  []string{"Austin", "Dallas"},
	},
	{
		Field: FieldState, Label: "State", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"state", "province", "region"},
		Example:  []string{"TX", "TX"},
	},
	{
		Field: FieldZipCode, Label: "Zip Code", Target: TargetDebtor, Value: ValueText,
		Patterns: []string{"zip", "postal", "postcode"},
		Example:  []string{"78701", "75201"},
	},
	{
		Field: FieldOriginalCreditor, Label: "Original Creditor", Target: TargetCase, Value: ValueText,
		Patterns: []string{"original_creditor", "orig_creditor", "creditor"},
		Example:  []string{"First National", "Metro Card"},
	},
	{
		Field: FieldChargeOffDate, Label: "Charge Off Date", Target: TargetCase, Value: ValueDate,
		Patterns: []string{"charge_off_date", "chargeoff_date", "charge_off", "chargeoff", "co_date"},
		Example:  []string{"2023-06-30", "2023-09-15"},
	},
	{
		Field: FieldLastPaymentDate, Label: "Last Payment Date", Target: TargetCase, Value: ValueDate,
		Patterns: []string{"last_payment_date", "last_pay_date", "last_payment", "last_paid", "lpd"},
		Example:  []string{"2023-05-01", ""},
	},
	{
		Field: FieldStatus, Label: "Status", Target: TargetCase, Value: ValueText,
		Patterns: []string{"status"},
		Example:  []string{"new", "new"},
	},
	{
		Field: FieldPriority, Label: "Priority", Target: TargetCase, Value: ValueText,
		Patterns: []string{"priority"},
		Example:  []string{"medium", "high"},
	},
}

var vendorFields = []FieldSpec{
	{
		Field: FieldVendorName, Label: "Vendor Name", Required: true, Target: TargetVendor, Value: ValueText,
		Patterns: []string{"vendor_name", "vendor", "company_name", "company", "business_name", "firm"},
		Exact:    []string{"name"},
		Example:  []string{"Lone Star Legal", "Skip Trace Co"},
	},
	{
		Field: FieldEmail, Label: "Email", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"email", "e_mail"},
		Example:  []string{"intake@lonestarlegal.example", "ops@skiptrace.example"},
	},
	{
		Field: FieldPhone, Label: "Phone", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"phone", "mobile", "cell", "telephone"},
		Example:  []string{"555-0200", "555-0201"},
	},
	{
		Field: FieldContactName, Label: "Contact Name", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"contact_name", "contact", "representative", "rep_name"},
		Example:  []string{"Maria Lopez", "Sam Reed"},
	},
	{
		Field: FieldAddress, Label: "Address", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"address", "street", "addr"},
		Example:  []string{"900 Congress Ave", "77 Elm St"},
	},
	{
		Field: FieldCity, Label: "City", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"city", "town"},
		Example:  []string{"Austin", "Houston"},
	},
	{
		Field: FieldState, Label: "State", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"state", "province", "region"},
		Example:  []string{"TX", "TX"},
	},
	{
		Field: FieldZipCode, Label: "Zip Code", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"zip", "postal", "postcode"},
		Example:  []string{"78701", "77002"},
	},
	{
		Field: FieldServiceType, Label: "Service Type", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"service_type", "service", "vendor_type", "type", "category", "specialty"},
		Example:  []string{"legal", "skip_trace"},
	},
	{
		Field: FieldStatus, Label: "Status", Target: TargetVendor, Value: ValueText,
		Patterns: []string{"status"},
		Example:  []string{"active", "active"},
	},
}

// Fields returns the canonical fields of an import kind in auto-mapping
// priority order.
func Fields(kind domain.ImportKind) []FieldSpec {
	switch kind {
	case domain.ImportKindPortfolio, domain.ImportKindDebts:
		return caseFields
	case domain.ImportKindVendors:
		return vendorFields
	}
	return nil
}

func lookupField(kind domain.ImportKind, field CanonicalField) (FieldSpec, bool) {
	for _, spec := range Fields(kind) {
		if spec.Field == field {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
