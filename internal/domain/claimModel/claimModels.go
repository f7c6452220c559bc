package claimModel

import (
	"context"
	"time"
)

type ClaimSubmission struct {
	ClaimID    string
	ClientKey  string
	TraceID    string
	ReceivedAt time.Time
	Documents  []*DocumentUnit
}

func (c *ClaimSubmission) Filenames() []string {
	names := make([]string, 0, len(c.Documents))
	for _, d := range c.Documents {
		names = append(names, d.Filename)
	}
	return names
}

// DocumentUnit is owned by exactly one pipeline stage at a time.
type DocumentUnit struct {
	Index         int
	Filename      string
	MIMEType      string
	Size          int64
	Raw           []byte
	Text          string
	UsedVision    bool
	Label         Label
	Confidence    float64
	LowConfidence bool
	State         DocumentState
}

// Release drops the raw buffer. Safe to call more than once.
func (d *DocumentUnit) Release() {
	d.Raw = nil
}

// DocumentResult is the terminal, per-document view handed from the barrier to validation.
type DocumentResult struct {
	Index      int
	Filename   string
	Label      Label
	Confidence float64
	State      DocumentState
	Record     ExtractedRecord
	Failure    *ExtractionError
}

func (r DocumentResult) Succeeded() bool {
	return r.State == StateExtracted && r.Record != nil
}

type Discrepancy struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Field    string   `json:"field"`
	DocType  Label    `json:"doc_type"`
}

type ValidationReport struct {
	MissingDocuments []Label
	Discrepancies    []Discrepancy
	Timestamp        time.Time
	// Checked lists the fields that were actually compared, in CheckedFields order.
	Checked []string
}

// CheckedFields is the fixed order of the fields the validator can compare.
var CheckedFields = []string{"patient_name", "bill_date", "discharge_date", "date_of_birth"}

func (r ValidationReport) HasSeverity(s Severity) bool {
	for _, d := range r.Discrepancies {
		if d.Severity == s {
			return true
		}
	}
	return false
}

type ClaimDecision struct {
	Status      DecisionStatus
	Reason      string
	Adjudicator string
	Notes       *string
	Explanation *string
}

type ClaimOutcome struct {
	ClaimID   string
	Documents []string
	Results   []DocumentResult
	Report    ValidationReport
	Decision  ClaimDecision
}

// CounterStore backs the rate limiter. Increment is atomic and starts the window on first use.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// BackupStore is best effort durable storage for raw uploads.
type BackupStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
}
