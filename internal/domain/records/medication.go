package records

import (
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Medication es una medicación en curso o histórica.
type Medication struct {
	ID        string
	Name      string
	Dosage    string // "2 ml", "5 mg" — texto libre como lo maneja el backend
	Frequency string
	StartDate string
	EndDate   string
}

type MedicationForm struct {
	Name      string
	Dosage    string
	Frequency string
	StartDate string
	EndDate   string
}

func medicationDescriptor() Descriptor[Medication, MedicationForm] {
	return Descriptor[Medication, MedicationForm]{
		Name: "medication",
		Kind: KindMedication,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/medications"
		},
		Item: func(petID, recordID string) string {
			return "/pets/" + petID + "/medical-records/medications/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "name", Sources: []string{"name", "medicationName", "medication_name", "drugName"}, Default: NotSpecified},
			{Target: "dosage", Sources: []string{"dosage", "dose", "doseAmount"}, Default: NotSpecified},
			{Target: "frequency", Sources: []string{"frequency", "interval", "schedule"}, Default: NotSpecified},
			{Target: "startDate", Sources: []string{"startDate", "start_date", "date"}, Default: NotSpecified},
			{Target: "endDate", Sources: []string{"endDate", "end_date", "until"}, Default: ""},
		},
		Build: func(f map[string]string) Medication {
			return Medication{
				ID:        f["id"],
				Name:      f["name"],
				Dosage:    f["dosage"],
				Frequency: f["frequency"],
				StartDate: f["startDate"],
				EndDate:   f["endDate"],
			}
		},
		Payload: func(f MedicationForm) map[string]any {
			return map[string]any{
				"name":      f.Name,
				"dosage":    f.Dosage,
				"frequency": f.Frequency,
				"startDate": f.StartDate,
				"endDate":   f.EndDate,
			}
		},
		FormFields: func(f MedicationForm) map[string]string {
			return map[string]string{
				"name":      f.Name,
				"dosage":    f.Dosage,
				"frequency": f.Frequency,
				"startDate": f.StartDate,
				"endDate":   f.EndDate,
			}
		},
	}
}

func NewMedicationService(transport *httpclient.Client, log logger.Logger) *Service[Medication, MedicationForm] {
	return NewService(medicationDescriptor(), transport, log)
}
