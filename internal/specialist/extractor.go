package specialist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
)

const dateLayout = "2006-01-02"

// Extractor dispatches on the label. Labels without a schema get an UnstructuredRecord
// without a model call.
type Extractor struct {
	model Model
}

func NewExtractor(model Model) *Extractor {
	return &Extractor{model: model}
}

type billOutput struct {
	InvoiceNumber *string  `json:"invoice_number"`
	HospitalName  *string  `json:"hospital_name"`
	PatientName   *string  `json:"patient_name"`
	BillDate      *string  `json:"bill_date"`
	TotalAmount   *float64 `json:"total_amount"`
	Currency      *string  `json:"currency"`
}

type dischargeOutput struct {
	PatientName   *string  `json:"patient_name"`
	AdmissionDate *string  `json:"admission_date"`
	DischargeDate *string  `json:"discharge_date"`
	Diagnosis     *string  `json:"diagnosis"`
	Procedures    []string `json:"procedures"`
}

type idCardOutput struct {
	HolderName  *string `json:"holder_name"`
	IDNumber    *string `json:"id_number"`
	DateOfBirth *string `json:"date_of_birth"`
	GroupNumber *string `json:"group_number"`
}

func (e *Extractor) Extract(ctx context.Context, label claimModel.Label, text string) (claimModel.ExtractedRecord, error) {
	switch label {
	case claimModel.LabelBill:
		return e.extractBill(ctx, text)
	case claimModel.LabelPharmacyBill:
		bill, err := e.extractBill(ctx, text)
		if err != nil {
			return nil, err
		}
		return claimModel.PharmacyBillRecord{BillRecord: bill}, nil
	case claimModel.LabelDischargeSummary:
		return e.extractDischarge(ctx, text)
	case claimModel.LabelIDCard:
		return e.extractIDCard(ctx, text)
	default:
		return claimModel.UnstructuredRecord{Kind: label}, nil
	}
}

func (e *Extractor) extractBill(ctx context.Context, text string) (claimModel.BillRecord, error) {
	const stage = "extract_bill"
	var out billOutput
	err := generate(ctx, e.model, stage, llm.Request{
		System: billPrompt,
		User:   truncate(text, config.BillTextLimit),
		Schema: billSchema,
	}, &out)
	if err != nil {
		return claimModel.BillRecord{}, err
	}

	billDate, err := dateField(stage, "bill_date", out.BillDate)
	if err != nil {
		return claimModel.BillRecord{}, err
	}
	record := claimModel.BillRecord{
		InvoiceNumber: stringField(out.InvoiceNumber),
		HospitalName:  stringField(out.HospitalName),
		PatientName:   stringField(out.PatientName),
		BillDate:      billDate,
		TotalAmount:   claimModel.UnknownField[float64](),
		Currency:      stringField(out.Currency),
	}
	if out.TotalAmount != nil {
		record.TotalAmount = claimModel.KnownField(*out.TotalAmount)
	}
	return record, nil
}

func (e *Extractor) extractDischarge(ctx context.Context, text string) (claimModel.DischargeRecord, error) {
	const stage = "extract_discharge"
	var out dischargeOutput
	err := generate(ctx, e.model, stage, llm.Request{
		System: dischargePrompt,
		User:   truncate(text, config.DischargeTextLimit),
		Schema: dischargeSchema,
	}, &out)
	if err != nil {
		return claimModel.DischargeRecord{}, err
	}

	admission, err := dateField(stage, "admission_date", out.AdmissionDate)
	if err != nil {
		return claimModel.DischargeRecord{}, err
	}
	discharge, err := dateField(stage, "discharge_date", out.DischargeDate)
	if err != nil {
		return claimModel.DischargeRecord{}, err
	}

	procedures := make([]string, 0, len(out.Procedures))
	for _, p := range out.Procedures {
		if p = strings.TrimSpace(p); p != "" {
			procedures = append(procedures, p)
		}
	}
	return claimModel.DischargeRecord{
		PatientName:   stringField(out.PatientName),
		AdmissionDate: admission,
		DischargeDate: discharge,
		Diagnosis:     stringField(out.Diagnosis),
		Procedures:    procedures,
	}, nil
}

func (e *Extractor) extractIDCard(ctx context.Context, text string) (claimModel.IDCardRecord, error) {
	const stage = "extract_id_card"
	var out idCardOutput
	err := generate(ctx, e.model, stage, llm.Request{
		System: idCardPrompt,
		User:   truncate(text, config.IDCardTextLimit),
		Schema: idCardSchema,
	}, &out)
	if err != nil {
		return claimModel.IDCardRecord{}, err
	}

	dob, err := dateField(stage, "date_of_birth", out.DateOfBirth)
	if err != nil {
		return claimModel.IDCardRecord{}, err
	}
	return claimModel.IDCardRecord{
		HolderName:  stringField(out.HolderName),
		IDNumber:    stringField(out.IDNumber),
		DateOfBirth: dob,
		GroupNumber: stringField(out.GroupNumber),
	}, nil
}

func absent(raw *string) bool {
	if raw == nil {
		return true
	}
	v := strings.TrimSpace(*raw)
	return v == "" || strings.EqualFold(v, claimModel.UnknownValue) || strings.EqualFold(v, "null")
}

func stringField(raw *string) claimModel.Field[string] {
	if absent(raw) {
		return claimModel.UnknownField[string]()
	}
	return claimModel.KnownField(strings.TrimSpace(*raw))
}

// dateField treats an unparseable date as a schema violation, not as unknown.
func dateField(stage string, name string, raw *string) (claimModel.Field[time.Time], error) {
	if absent(raw) {
		return claimModel.UnknownField[time.Time](), nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return claimModel.Field[time.Time]{}, claimModel.NewExtractionError(stage, claimModel.FailureSchemaViolation,
			fmt.Errorf("%s: %w", name, err))
	}
	return claimModel.KnownField(t), nil
}
