package claimModel

import "strings"

type Label string

const (
	LabelBill             Label = "bill"
	LabelDischargeSummary Label = "discharge_summary"
	LabelIDCard           Label = "id_card"
	LabelPharmacyBill     Label = "pharmacy_bill"
	LabelClaimForm        Label = "claim_form"
	LabelOther            Label = "other"
)

var AllLabels = []Label{LabelBill, LabelDischargeSummary, LabelIDCard, LabelPharmacyBill, LabelClaimForm, LabelOther}

// RequiredLabels must each be backed by a successful extraction.
var RequiredLabels = []Label{LabelBill, LabelDischargeSummary, LabelIDCard}

// ParseLabel maps model output onto a label. Anything unrecognised is other.
func ParseLabel(raw string) Label {
	candidate := Label(strings.ToLower(strings.TrimSpace(raw)))
	for _, l := range AllLabels {
		if l == candidate {
			return l
		}
	}
	return LabelOther
}

// Satisfies reports whether a document with this label covers the required label.
// A pharmacy bill is still a bill.
func (l Label) Satisfies(required Label) bool {
	if l == required {
		return true
	}
	return required == LabelBill && l == LabelPharmacyBill
}

type DocumentState string

const (
	StateReceived      DocumentState = "received"
	StateTextExtracted DocumentState = "text_extracted"
	StateClassified    DocumentState = "classified"
	StateExtracted     DocumentState = "extracted"
	StateFailed        DocumentState = "failed"
)

func (s DocumentState) Terminal() bool {
	return s == StateExtracted || s == StateFailed
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

type DecisionStatus string

const (
	StatusApproved     DecisionStatus = "approved"
	StatusManualReview DecisionStatus = "manual_review"
	StatusRejected     DecisionStatus = "rejected"
)
