// Package normalize converts raw captured input into the canonical form
// the store and the renderer share. Every function is idempotent so that
// edited and re-loaded records render identically to fresh ones.
package normalize

import (
	"strings"
	"time"

	"github.com/prlsite/starters/internal/models"
)

const (
	// CanonicalDateLayout is the machine-sortable form kept in the store.
	CanonicalDateLayout = "2006-01-02"
	// DisplayDateLayout is the long form shown on rendered documents,
	// e.g. "03 June 2025".
	DisplayDateLayout = "02 January 2006"
)

// Text canonicalizes line breaks in free text. The renderer treats "\n"
// as its line-break markup, so this is the only conversion needed.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Lines splits normalized text into the lines the renderer lays out.
// Empty input yields a single empty line so fields keep their slot in
// the template.
func Lines(s string) []string {
	return strings.Split(Text(s), "\n")
}

// LongDate formats a canonical date for display. Input that is already
// long-form comes back unchanged; anything unparseable is returned as-is
// rather than dropped.
func LongDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if t, err := time.Parse(CanonicalDateLayout, s); err == nil {
		return t.Format(DisplayDateLayout)
	}
	return s
}

// CanonicalDate maps either canonical or long-form input back to the
// canonical layout. Unparseable input is returned unchanged.
func CanonicalDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if _, err := time.Parse(CanonicalDateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(DisplayDateLayout, s); err == nil {
		return t.Format(CanonicalDateLayout)
	}
	return s
}

// TitleColumn turns a snake_case column name into a human-readable
// header, e.g. "ni_number" -> "Ni Number".
func TitleColumn(col string) string {
	words := strings.Split(col, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Starter applies field normalization in place: line breaks for the
// free-text fields, canonical form for the two date fields.
func Starter(s *models.Starter) {
	s.SupplierName = Text(s.SupplierName)
	s.SupplierContact = Text(s.SupplierContact)
	s.SupplierAddress = Text(s.SupplierAddress)
	s.ClientName = Text(s.ClientName)
	s.ClientContact = Text(s.ClientContact)
	s.ClientAddress = Text(s.ClientAddress)
	s.EmployeeName = Text(s.EmployeeName)
	s.Address = Text(s.Address)
	s.NINumber = Text(s.NINumber)
	s.RolePosition = Text(s.RolePosition)
	s.Department = Text(s.Department)
	s.StartDate = CanonicalDate(s.StartDate)
	s.OfficeLocation = Text(s.OfficeLocation)
	s.SalaryDetails = Text(s.SalaryDetails)
	s.ProbationLength = Text(s.ProbationLength)
	s.EmergencyContact = Text(s.EmergencyContact)
	s.AdditionalInfo = Text(s.AdditionalInfo)
	s.GeneratedDate = CanonicalDate(s.GeneratedDate)
}
