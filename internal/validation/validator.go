// Package validation cross-checks the records extracted from one claim. It is pure:
// the same results and clock always give the same report.
package validation

import (
	"fmt"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

type Validator struct {
	NameThreshold   float64
	FutureTolerance time.Duration
}

func NewValidator(nameThreshold float64) Validator {
	if nameThreshold <= 0 || nameThreshold > 1 {
		nameThreshold = config.NameSimilarityThreshold
	}
	return Validator{NameThreshold: nameThreshold, FutureTolerance: config.FutureBillTolerance}
}

// Validate runs with the default thresholds.
func Validate(results []claimModel.DocumentResult, now time.Time) claimModel.ValidationReport {
	return NewValidator(config.NameSimilarityThreshold).Validate(results, now)
}

// Validate runs every check; nothing short-circuits. Discrepancies come out in document order.
func (v Validator) Validate(results []claimModel.DocumentResult, now time.Time) claimModel.ValidationReport {
	report := claimModel.ValidationReport{
		MissingDocuments: missingDocuments(results),
		Discrepancies:    []claimModel.Discrepancy{},
		Timestamp:        now.UTC(),
	}

	ref := identityReference(results)
	admission := admissionDate(results)
	checked := map[string]bool{}

	for i, r := range results {
		if !r.Succeeded() {
			continue
		}
		if ref != nil && i != ref.index {
			report.Discrepancies = append(report.Discrepancies, v.checkIdentity(*ref, r, checked)...)
		}
		report.Discrepancies = append(report.Discrepancies, v.checkDates(r, admission, now, checked)...)
	}

	report.Checked = []string{}
	for _, field := range claimModel.CheckedFields {
		if checked[field] {
			report.Checked = append(report.Checked, field)
		}
	}
	return report
}

func missingDocuments(results []claimModel.DocumentResult) []claimModel.Label {
	missing := []claimModel.Label{}
	for _, required := range claimModel.RequiredLabels {
		found := false
		for _, r := range results {
			if r.Succeeded() && r.Label.Satisfies(required) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, required)
		}
	}
	return missing
}

type identity struct {
	index      int
	label      claimModel.Label
	name       string
	normalized string
}

func namedIdentity(i int, r claimModel.DocumentResult) (identity, bool) {
	named, ok := r.Record.(claimModel.NamedRecord)
	if !ok {
		return identity{}, false
	}
	name, known := named.PersonName().Get()
	if !known {
		return identity{}, false
	}
	normalized := NormalizeName(name)
	if normalized == "" {
		return identity{}, false
	}
	return identity{index: i, label: r.Label, name: name, normalized: normalized}, true
}

// identityReference prefers the identity card, then the first named document.
func identityReference(results []claimModel.DocumentResult) *identity {
	var first *identity
	for i, r := range results {
		if !r.Succeeded() {
			continue
		}
		id, ok := namedIdentity(i, r)
		if !ok {
			continue
		}
		if r.Label == claimModel.LabelIDCard {
			return &id
		}
		if first == nil {
			first = &id
		}
	}
	return first
}

func (v Validator) checkIdentity(ref identity, r claimModel.DocumentResult, checked map[string]bool) []claimModel.Discrepancy {
	other, ok := namedIdentity(0, r)
	if !ok {
		return nil
	}
	checked["patient_name"] = true
	score := Similarity(ref.normalized, other.normalized)
	if score >= v.NameThreshold {
		return nil
	}
	return []claimModel.Discrepancy{{
		Severity: claimModel.SeverityCritical,
		Message: fmt.Sprintf("patient name %q on %s does not match %q on %s (similarity %.2f)",
			other.name, r.Label, ref.name, ref.label, score),
		Field:   "patient_name",
		DocType: r.Label,
	}}
}

// admissionDate is taken from the first discharge summary that states one.
func admissionDate(results []claimModel.DocumentResult) *time.Time {
	for _, r := range results {
		if !r.Succeeded() {
			continue
		}
		if d, ok := r.Record.(claimModel.DischargeRecord); ok {
			if at, known := d.AdmissionDate.Get(); known {
				return &at
			}
		}
	}
	return nil
}

func (v Validator) checkDates(r claimModel.DocumentResult, admission *time.Time, now time.Time, checked map[string]bool) []claimModel.Discrepancy {
	var out []claimModel.Discrepancy
	switch rec := r.Record.(type) {
	case claimModel.BillRecord:
		out = v.checkBillDate(r.Label, rec, admission, now, checked)
	case claimModel.PharmacyBillRecord:
		out = v.checkBillDate(r.Label, rec.BillRecord, admission, now, checked)
	case claimModel.DischargeRecord:
		in, inKnown := rec.AdmissionDate.Get()
		discharged, outKnown := rec.DischargeDate.Get()
		if inKnown && outKnown {
			checked["discharge_date"] = true
		}
		if inKnown && outKnown && discharged.Before(in) {
			out = append(out, claimModel.Discrepancy{
				Severity: claimModel.SeverityCritical,
				Message:  fmt.Sprintf("discharge date %s is before admission date %s", day(discharged), day(in)),
				Field:    "discharge_date",
				DocType:  r.Label,
			})
		}
	case claimModel.IDCardRecord:
		dob, known := rec.DateOfBirth.Get()
		if known && admission != nil {
			checked["date_of_birth"] = true
		}
		if known && admission != nil && dob.After(*admission) {
			out = append(out, claimModel.Discrepancy{
				Severity: claimModel.SeverityCritical,
				Message:  fmt.Sprintf("date of birth %s is after admission date %s", day(dob), day(*admission)),
				Field:    "date_of_birth",
				DocType:  r.Label,
			})
		}
	}
	return out
}

func (v Validator) checkBillDate(label claimModel.Label, bill claimModel.BillRecord, admission *time.Time, now time.Time, checked map[string]bool) []claimModel.Discrepancy {
	billed, known := bill.BillDate.Get()
	if !known {
		return nil
	}
	checked["bill_date"] = true
	var out []claimModel.Discrepancy
	if admission != nil && billed.Before(*admission) {
		out = append(out, claimModel.Discrepancy{
			Severity: claimModel.SeverityWarning,
			Message:  fmt.Sprintf("bill date %s is before admission date %s", day(billed), day(*admission)),
			Field:    "bill_date",
			DocType:  label,
		})
	}
	if billed.After(now.Add(v.FutureTolerance)) {
		out = append(out, claimModel.Discrepancy{
			Severity: claimModel.SeverityWarning,
			Message:  fmt.Sprintf("bill date %s is in the future", day(billed)),
			Field:    "bill_date",
			DocType:  label,
		})
	}
	return out
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}
