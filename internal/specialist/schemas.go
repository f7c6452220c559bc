package specialist

import (
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"google.golang.org/genai"
)

func nullable(t genai.Type) *genai.Schema {
	return &genai.Schema{Type: t, Nullable: genai.Ptr(true)}
}

func classificationSchema() *genai.Schema {
	labels := make([]string, 0, len(claimModel.AllLabels))
	for _, l := range claimModel.AllLabels {
		labels = append(labels, string(l))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"document_type": {Type: genai.TypeString, Enum: labels},
			"confidence":    {Type: genai.TypeNumber},
			"reasoning":     {Type: genai.TypeString},
		},
		Required: []string{"document_type", "confidence"},
	}
}

var billSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"invoice_number": nullable(genai.TypeString),
		"hospital_name":  nullable(genai.TypeString),
		"patient_name":   nullable(genai.TypeString),
		"bill_date":      nullable(genai.TypeString),
		"total_amount":   nullable(genai.TypeNumber),
		"currency":       nullable(genai.TypeString),
	},
}

var dischargeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"patient_name":   nullable(genai.TypeString),
		"admission_date": nullable(genai.TypeString),
		"discharge_date": nullable(genai.TypeString),
		"diagnosis":      nullable(genai.TypeString),
		"procedures":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
}

var idCardSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"holder_name":   nullable(genai.TypeString),
		"id_number":     nullable(genai.TypeString),
		"date_of_birth": nullable(genai.TypeString),
		"group_number":  nullable(genai.TypeString),
	},
}
