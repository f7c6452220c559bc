// Package decision turns a validation report into the final claim status.
package decision

import (
	"fmt"
	"strings"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

const auditorNote = "Routed to a human auditor. Review the listed discrepancies against the original documents before settling the claim."

// Decide is deterministic. Missing documents win over discrepancies, critical findings
// over warnings.
func Decide(report claimModel.ValidationReport) claimModel.ClaimDecision {
	d := claimModel.ClaimDecision{Adjudicator: config.Adjudicator}

	switch {
	case len(report.MissingDocuments) > 0:
		d.Status = claimModel.StatusRejected
		d.Reason = fmt.Sprintf("Missing required documents: %s.", joinLabels(report.MissingDocuments))

	case report.HasSeverity(claimModel.SeverityCritical):
		d.Status = claimModel.StatusManualReview
		d.Reason = fmt.Sprintf("%d critical discrepancies found: %s",
			count(report, claimModel.SeverityCritical), summarize(report, claimModel.SeverityCritical))
		d.Notes = ptr(auditorNote)

	case report.HasSeverity(claimModel.SeverityWarning):
		d.Status = claimModel.StatusManualReview
		d.Reason = fmt.Sprintf("%d warnings found: %s",
			count(report, claimModel.SeverityWarning), summarize(report, claimModel.SeverityWarning))
		d.Notes = ptr(auditorNote)

	default:
		d.Status = claimModel.StatusApproved
		d.Reason = "All required documents are present and consistent."
		d.Explanation = ptr(explain(report.Checked))
	}
	return d
}

var checkedPhrases = map[string]string{
	"patient_name":   "patient names match across documents",
	"bill_date":      "the bill date is consistent with the admission and the current date",
	"discharge_date": "the discharge date follows the admission date",
	"date_of_birth":  "the date of birth precedes the admission date",
}

// explain only asserts what the validator actually compared.
func explain(checked []string) string {
	const extracted = "Bill, discharge summary and identity card were extracted successfully."
	var phrases []string
	for _, field := range checked {
		if p, ok := checkedPhrases[field]; ok {
			phrases = append(phrases, p)
		}
	}
	if len(phrases) == 0 {
		return extracted + " The documents did not state fields that could be cross-checked."
	}
	return fmt.Sprintf("%s Checked: %s.", extracted, strings.Join(phrases, "; "))
}

func joinLabels(labels []claimModel.Label) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ", ")
}

func count(report claimModel.ValidationReport, s claimModel.Severity) int {
	n := 0
	for _, d := range report.Discrepancies {
		if d.Severity == s {
			n++
		}
	}
	return n
}

func summarize(report claimModel.ValidationReport, s claimModel.Severity) string {
	var parts []string
	for _, d := range report.Discrepancies {
		if d.Severity == s {
			parts = append(parts, d.Message)
		}
	}
	return strings.Join(parts, "; ")
}

func ptr(s string) *string {
	return &s
}
