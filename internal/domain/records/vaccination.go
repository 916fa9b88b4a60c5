package records

import (
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Vaccination es una vacuna aplicada.
// Las fechas quedan como string (YYYY-MM-DD) tal cual las entrega/espera el backend.
type Vaccination struct {
	ID           string
	Name         string
	Date         string
	Veterinarian string
}

// VaccinationForm es lo que carga el usuario al crear/editar.
type VaccinationForm struct {
	Name         string
	Date         string
	Veterinarian string
}

func vaccinationDescriptor() Descriptor[Vaccination, VaccinationForm] {
	return Descriptor[Vaccination, VaccinationForm]{
		Name: "vaccination",
		Kind: KindVaccine,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/vaccines"
		},
		Item: func(petID, recordID string) string {
			return "/pets/" + petID + "/medical-records/vaccines/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "name", Sources: []string{"name", "vaccineName", "vaccine_name", "title"}, Default: NotSpecified},
			{Target: "date", Sources: []string{"date", "vaccinationDate", "vaccination_date", "appliedAt"}, Default: NotSpecified},
			{Target: "veterinarian", Sources: []string{"veterinarian", "vet", "veterinarianName", "clinic"}, Default: NotSpecified},
		},
		Build: func(f map[string]string) Vaccination {
			return Vaccination{
				ID:           f["id"],
				Name:         f["name"],
				Date:         f["date"],
				Veterinarian: f["veterinarian"],
			}
		},
		Payload: func(f VaccinationForm) map[string]any {
			return map[string]any{
				"name":         f.Name,
				"date":         f.Date,
				"veterinarian": f.Veterinarian,
			}
		},
		FormFields: func(f VaccinationForm) map[string]string {
			return map[string]string{
				"name":         f.Name,
				"date":         f.Date,
				"veterinarian": f.Veterinarian,
			}
		},
	}
}

func NewVaccinationService(transport *httpclient.Client, log logger.Logger) *Service[Vaccination, VaccinationForm] {
	return NewService(vaccinationDescriptor(), transport, log)
}
