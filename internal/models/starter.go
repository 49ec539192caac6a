package models

// Starter is one onboarding event. Every attribute except ID is free text;
// dates are kept in canonical YYYY-MM-DD form and formatted at render time.
type Starter struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	SupplierName     string `json:"supplier_name"`
	SupplierContact  string `json:"supplier_contact"`
	SupplierAddress  string `json:"supplier_address"`
	ClientName       string `json:"client_name"`
	ClientContact    string `json:"client_contact"`
	ClientAddress    string `json:"client_address"`
	EmployeeName     string `json:"employee_name"`
	Address          string `json:"address"`
	NINumber         string `gorm:"column:ni_number" json:"ni_number"`
	RolePosition     string `json:"role_position"`
	Department       string `json:"department"`
	StartDate        string `json:"start_date"`
	OfficeLocation   string `json:"office_location"`
	SalaryDetails    string `json:"salary_details"`
	ProbationLength  string `json:"probation_length"`
	EmergencyContact string `json:"emergency_contact"`
	AdditionalInfo   string `json:"additional_info"`
	GeneratedDate    string `json:"generated_date"`
}

func (Starter) TableName() string { return "starters" }

// Columns lists the non-id attributes in schema order. Dedup grouping and
// the tabular report both rely on this ordering staying in sync with the
// struct above.
var Columns = []string{
	"supplier_name", "supplier_contact", "supplier_address",
	"client_name", "client_contact", "client_address",
	"employee_name", "address", "ni_number",
	"role_position", "department", "start_date",
	"office_location", "salary_details", "probation_length",
	"emergency_contact", "additional_info", "generated_date",
}

// Value returns the attribute stored under the given column name.
func (s Starter) Value(col string) string {
	switch col {
	case "supplier_name":
		return s.SupplierName
	case "supplier_contact":
		return s.SupplierContact
	case "supplier_address":
		return s.SupplierAddress
	case "client_name":
		return s.ClientName
	case "client_contact":
		return s.ClientContact
	case "client_address":
		return s.ClientAddress
	case "employee_name":
		return s.EmployeeName
	case "address":
		return s.Address
	case "ni_number":
		return s.NINumber
	case "role_position":
		return s.RolePosition
	case "department":
		return s.Department
	case "start_date":
		return s.StartDate
	case "office_location":
		return s.OfficeLocation
	case "salary_details":
		return s.SalaryDetails
	case "probation_length":
		return s.ProbationLength
	case "emergency_contact":
		return s.EmergencyContact
	case "additional_info":
		return s.AdditionalInfo
	case "generated_date":
		return s.GeneratedDate
	}
	return ""
}

// SupplierColumns are excluded from the roster report: the report is the
// candidate-facing view, not the supplier contract.
var SupplierColumns = map[string]bool{
	"supplier_name":    true,
	"supplier_contact": true,
	"supplier_address": true,
}
