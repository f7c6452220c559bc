package claimModel

import (
	"encoding/json"
	"time"
)

const UnknownValue = "unknown"

// Field holds a value read from a document, or nothing when the document did not carry it.
type Field[T any] struct {
	Value T
	Known bool
}

func KnownField[T any](v T) Field[T] {
	return Field[T]{Value: v, Known: true}
}

func UnknownField[T any]() Field[T] {
	return Field[T]{}
}

func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Known
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Known {
		return json.Marshal(UnknownValue)
	}
	return json.Marshal(f.Value)
}

// ExtractedRecord is implemented only by the record types in this file.
type ExtractedRecord interface {
	Label() Label
	sealed()
}

// NamedRecord is a record that declares whose document it is.
type NamedRecord interface {
	ExtractedRecord
	PersonName() Field[string]
}

type BillRecord struct {
	InvoiceNumber Field[string]    `json:"invoice_number"`
	HospitalName  Field[string]    `json:"hospital_name"`
	PatientName   Field[string]    `json:"patient_name"`
	BillDate      Field[time.Time] `json:"bill_date"`
	TotalAmount   Field[float64]   `json:"total_amount"`
	Currency      Field[string]    `json:"currency"`
}

func (BillRecord) Label() Label                { return LabelBill }
func (BillRecord) sealed()                     {}
func (r BillRecord) PersonName() Field[string] { return r.PatientName }

// PharmacyBillRecord shares the bill schema but keeps its own label.
type PharmacyBillRecord struct {
	BillRecord
}

func (PharmacyBillRecord) Label() Label { return LabelPharmacyBill }

type DischargeRecord struct {
	PatientName   Field[string]    `json:"patient_name"`
	AdmissionDate Field[time.Time] `json:"admission_date"`
	DischargeDate Field[time.Time] `json:"discharge_date"`
	Diagnosis     Field[string]    `json:"diagnosis"`
	Procedures    []string         `json:"procedures"`
}

func (DischargeRecord) Label() Label                { return LabelDischargeSummary }
func (DischargeRecord) sealed()                     {}
func (r DischargeRecord) PersonName() Field[string] { return r.PatientName }

type IDCardRecord struct {
	HolderName  Field[string]    `json:"holder_name"`
	IDNumber    Field[string]    `json:"id_number"`
	DateOfBirth Field[time.Time] `json:"date_of_birth"`
	GroupNumber Field[string]    `json:"group_number"`
}

func (IDCardRecord) Label() Label                { return LabelIDCard }
func (IDCardRecord) sealed()                     {}
func (r IDCardRecord) PersonName() Field[string] { return r.HolderName }

// UnstructuredRecord marks claim forms and unrecognised documents. No fields are extracted.
type UnstructuredRecord struct {
	Kind Label `json:"kind"`
}

func (r UnstructuredRecord) Label() Label { return r.Kind }
func (UnstructuredRecord) sealed()        {}
