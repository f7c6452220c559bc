package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/ClaimAPI/internal/coordinator"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/worker"
)

type MockTextExtractor struct {
	OnExtractText func(ctx context.Context, data []byte, mimeType string) (string, error)
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if m.OnExtractText != nil {
		return m.OnExtractText(ctx, data, mimeType)
	}
	return string(data), nil
}

type MockVision struct {
	OnExtractViaVision func(ctx context.Context, data []byte, mimeType string) (string, error)
}

func (m *MockVision) ExtractViaVision(ctx context.Context, data []byte, mimeType string) (string, error) {
	if m.OnExtractViaVision != nil {
		return m.OnExtractViaVision(ctx, data, mimeType)
	}
	return "", claimModel.NewExtractionError("vision", claimModel.FailureCapabilityError, claimModel.ErrUnsupportedVision)
}

type MockClassifier struct {
	OnClassify func(ctx context.Context, filename string, text string) (claimModel.Classification, error)
}

func (m *MockClassifier) Classify(ctx context.Context, filename string, text string) (claimModel.Classification, error) {
	if m.OnClassify != nil {
		return m.OnClassify(ctx, filename, text)
	}
	return claimModel.Classification{Label: claimModel.LabelOther, Confidence: 0.9}, nil
}

type MockExtractor struct {
	OnExtract func(ctx context.Context, label claimModel.Label, text string) (claimModel.ExtractedRecord, error)
}

func (m *MockExtractor) Extract(ctx context.Context, label claimModel.Label, text string) (claimModel.ExtractedRecord, error) {
	if m.OnExtract != nil {
		return m.OnExtract(ctx, label, text)
	}
	return claimModel.UnstructuredRecord{Kind: label}, nil
}

type recordingBackup struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingBackup) Store(ctx context.Context, key string, data []byte, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return nil
}

func (r *recordingBackup) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func newCoordinator(t *testing.T, backup claimModel.BackupStore) *coordinator.Coordinator {
	t.Helper()
	pool := worker.NewPool(worker.PoolConfig{MinWorkers: 1, MaxWorkers: 4, QueueLimit: 16, IdleTimeout: time.Minute})
	pool.Start()
	t.Cleanup(pool.Stop)
	return coordinator.New(pool, backup)
}

func submission(docs ...string) *claimModel.ClaimSubmission {
	claim := &claimModel.ClaimSubmission{ClaimID: "claim-1", ReceivedAt: time.Now()}
	for i, name := range docs {
		claim.Documents = append(claim.Documents, &claimModel.DocumentUnit{
			Index:    i,
			Filename: name,
			MIMEType: "text/plain",
			Raw:      []byte(name + " " + padding),
			State:    claimModel.StateReceived,
		})
	}
	return claim
}

// keeps the mock text layer above the vision threshold
const padding = "this document carries a readable text layer of comfortable length for extraction"

func date(s string) claimModel.Field[time.Time] {
	t, _ := time.Parse("2006-01-02", s)
	return claimModel.KnownField(t)
}

// labelFromFilename classifies by the name prefix: bill.txt, discharge.txt, id.txt.
func labelFromFilename(ctx context.Context, filename string, text string) (claimModel.Classification, error) {
	switch {
	case len(filename) >= 4 && filename[:4] == "bill":
		return claimModel.Classification{Label: claimModel.LabelBill, Confidence: 0.95}, nil
	case len(filename) >= 9 && filename[:9] == "discharge":
		return claimModel.Classification{Label: claimModel.LabelDischargeSummary, Confidence: 0.95}, nil
	case len(filename) >= 2 && filename[:2] == "id":
		return claimModel.Classification{Label: claimModel.LabelIDCard, Confidence: 0.4}, nil
	default:
		return claimModel.Classification{Label: claimModel.LabelOther, Confidence: 0.9}, nil
	}
}

type people struct {
	bill, discharge, card string
	billDate              string
}

func recordsFor(p people) func(ctx context.Context, label claimModel.Label, text string) (claimModel.ExtractedRecord, error) {
	return func(ctx context.Context, label claimModel.Label, text string) (claimModel.ExtractedRecord, error) {
		switch label {
		case claimModel.LabelBill:
			return claimModel.BillRecord{PatientName: claimModel.KnownField(p.bill), BillDate: date(p.billDate)}, nil
		case claimModel.LabelDischargeSummary:
			return claimModel.DischargeRecord{PatientName: claimModel.KnownField(p.discharge),
				AdmissionDate: date("2024-03-01"), DischargeDate: date("2024-03-04")}, nil
		case claimModel.LabelIDCard:
			return claimModel.IDCardRecord{HolderName: claimModel.KnownField(p.card), DateOfBirth: date("1990-07-14")}, nil
		default:
			return claimModel.UnstructuredRecord{Kind: label}, nil
		}
	}
}
