package records

import (
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Treatment es un tratamiento aplicado (curación, cirugía, desparasitación).
type Treatment struct {
	ID           string
	Name         string
	Date         string
	Description  string
	Veterinarian string
}

type TreatmentForm struct {
	Name         string
	Date         string
	Description  string
	Veterinarian string
}

func treatmentDescriptor() Descriptor[Treatment, TreatmentForm] {
	return Descriptor[Treatment, TreatmentForm]{
		Name: "treatment",
		Kind: KindTreatment,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/treatments"
		},
		// Revisión vieja del backend: item ops por la forma plana.
		Item: func(_, recordID string) string {
			return "/medical-records/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "name", Sources: []string{"name", "treatmentName", "treatment_name", "title"}, Default: NotSpecified},
			{Target: "date", Sources: []string{"date", "treatmentDate", "treatment_date", "startDate"}, Default: NotSpecified},
			{Target: "description", Sources: []string{"description", "details", "notes"}, Default: ""},
			{Target: "veterinarian", Sources: []string{"veterinarian", "vet", "veterinarianName"}, Default: NotSpecified},
		},
		Build: func(f map[string]string) Treatment {
			return Treatment{
				ID:           f["id"],
				Name:         f["name"],
				Date:         f["date"],
				Description:  f["description"],
				Veterinarian: f["veterinarian"],
			}
		},
		Payload: func(f TreatmentForm) map[string]any {
			return map[string]any{
				"name":         f.Name,
				"date":         f.Date,
				"description":  f.Description,
				"veterinarian": f.Veterinarian,
			}
		},
		FormFields: func(f TreatmentForm) map[string]string {
			return map[string]string{
				"name":         f.Name,
				"date":         f.Date,
				"description":  f.Description,
				"veterinarian": f.Veterinarian,
			}
		},
	}
}

func NewTreatmentService(transport *httpclient.Client, log logger.Logger) *Service[Treatment, TreatmentForm] {
	return NewService(treatmentDescriptor(), transport, log)
}
