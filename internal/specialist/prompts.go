package specialist

import (
	"fmt"

	"github.com/akolanti/ClaimAPI/internal/config"
)

const classificationPrompt = `You classify documents submitted with a medical insurance claim.
Pick exactly one document_type:
- bill: hospital invoice or payment breakdown with amounts, taxes or line items
- discharge_summary: clinical report of a hospital stay with diagnosis, treatment and discharge details
- id_card: insurance card or government identity document
- pharmacy_bill: invoice for medicines only (use bill when unsure)
- claim_form: a standard reimbursement request form
- other: anything else
Give a confidence between 0 and 1 and one sentence of reasoning. Answer with JSON only.`

const billPrompt = `You extract billing data from a medical invoice or pharmacy receipt.
invoice_number: the bill, invoice or receipt number.
hospital_name: the issuing hospital or pharmacy.
patient_name: the billed patient.
bill_date: the invoice date as YYYY-MM-DD.
total_amount: the grand total payable as a number, not a subtotal.
currency: ISO code inferred from the symbols on the bill.
Use null for anything the document does not state. Answer with JSON only.`

const dischargePrompt = `You extract clinical details from a hospital discharge summary.
patient_name: full name of the patient.
admission_date and discharge_date: as YYYY-MM-DD.
diagnosis: the primary or final diagnosis, with ICD codes when present.
procedures: each significant procedure performed during the stay as a separate item.
Use null for anything the document does not state. Answer with JSON only.`

const idCardPrompt = `You extract identity details from an insurance card or identity document.
holder_name: the card holder.
id_number: the policy, member or document number.
date_of_birth: as YYYY-MM-DD.
group_number: the insurance group number.
Use null for anything the document does not state. Answer with JSON only.`

var visionPrompt = fmt.Sprintf(`This is a scanned document from a medical insurance claim.
Transcribe all readable text from the first %d pages as plain text, keeping table rows on one line.
Do not summarise or add commentary.`, config.VisionMaxPages)

func userPrompt(filename string, text string) string {
	return fmt.Sprintf("Filename: %s\n\nDocument text:\n%s", filename, text)
}

// truncate cuts on a rune boundary.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
