// Package diff computes field-level structural differences between two
// versions of an invoice.
package diff

import (
	"fmt"
	"sort"

	"github.com/rezonia/mydata-validator/internal/model"
)

// FieldChange records one differing field between invoice versions
type FieldChange struct {
	Path     string `json:"path"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Diff is the result of comparing two invoices
type Diff struct {
	HasChanges bool          `json:"has_changes"`
	Changes    []FieldChange `json:"changes"`
}

// Empty returns a diff with no changes
func Empty() Diff {
	return Diff{HasChanges: false, Changes: []FieldChange{}}
}

// Compare computes a structural diff between two invoices. Lines are
// matched by line number only: a renumbered line shows up as one deletion
// plus one creation, never as a modification.
func Compare(old, new *model.Invoice) Diff {
	var changes []FieldChange

	record := func(path, oldValue, newValue string) {
		changes = append(changes, FieldChange{Path: path, OldValue: oldValue, NewValue: newValue})
	}

	if old.Header.Series != new.Header.Series {
		record("header.series", old.Header.Series, new.Header.Series)
	}
	if old.Header.AA != new.Header.AA {
		record("header.aa", old.Header.AA, new.Header.AA)
	}
	if !old.Header.IssueDate.Equal(new.Header.IssueDate) {
		record("header.issue_date",
			old.Header.IssueDate.Format("2006-01-02"),
			new.Header.IssueDate.Format("2006-01-02"))
	}
	if old.Header.InvoiceType != new.Header.InvoiceType {
		record("header.invoice_type", old.Header.InvoiceType.String(), new.Header.InvoiceType.String())
	}

	if old.Issuer.VatNumber != new.Issuer.VatNumber {
		record("issuer.vat_number", old.Issuer.VatNumber, new.Issuer.VatNumber)
	}

	switch {
	case old.Counterpart != nil && new.Counterpart != nil:
		if old.Counterpart.VatNumber != new.Counterpart.VatNumber {
			record("counterpart.vat_number", old.Counterpart.VatNumber, new.Counterpart.VatNumber)
		}
	case (old.Counterpart != nil) != (new.Counterpart != nil):
		record("counterpart", presence(old.Counterpart != nil), presence(new.Counterpart != nil))
	}

	if !old.Totals.NetAmount.Equal(new.Totals.NetAmount) {
		record("totals.net_amount", old.Totals.NetAmount.String(), new.Totals.NetAmount.String())
	}
	if !old.Totals.VatAmount.Equal(new.Totals.VatAmount) {
		record("totals.vat_amount", old.Totals.VatAmount.String(), new.Totals.VatAmount.String())
	}
	if !old.Totals.GrossAmount.Equal(new.Totals.GrossAmount) {
		record("totals.gross_amount", old.Totals.GrossAmount.String(), new.Totals.GrossAmount.String())
	}

	compareLines(old, new, record)

	return Diff{
		HasChanges: len(changes) > 0,
		Changes:    orEmpty(changes),
	}
}

// compareLines joins lines by line number across both versions
func compareLines(old, new *model.Invoice, record func(path, oldValue, newValue string)) {
	oldLines := linesByNumber(old)
	newLines := linesByNumber(new)

	for _, num := range sortedKeys(oldLines) {
		oldLine := oldLines[num]
		newLine, exists := newLines[num]
		if !exists {
			record(fmt.Sprintf("line[%d]", num), "Exists", "Deleted")
			continue
		}
		if !oldLine.NetValue.Equal(newLine.NetValue) {
			record(fmt.Sprintf("line[%d].net_value", num),
				oldLine.NetValue.String(), newLine.NetValue.String())
		}
		if oldLine.VatCategory != newLine.VatCategory {
			record(fmt.Sprintf("line[%d].vat_category", num),
				oldLine.VatCategory.String(), newLine.VatCategory.String())
		}
	}

	for _, num := range sortedKeys(newLines) {
		if _, exists := oldLines[num]; !exists {
			record(fmt.Sprintf("line[%d]", num), "None", "Created")
		}
	}
}

func linesByNumber(inv *model.Invoice) map[int]*model.Line {
	byNumber := make(map[int]*model.Line, len(inv.Lines))
	for i := range inv.Lines {
		byNumber[inv.Lines[i].LineNumber] = &inv.Lines[i]
	}
	return byNumber
}

func sortedKeys(lines map[int]*model.Line) []int {
	keys := make([]int, 0, len(lines))
	for num := range lines {
		keys = append(keys, num)
	}
	sort.Ints(keys)
	return keys
}

func presence(present bool) string {
	if present {
		return "Present"
	}
	return "None"
}

func orEmpty(changes []FieldChange) []FieldChange {
	if changes == nil {
		return []FieldChange{}
	}
	return changes
}
