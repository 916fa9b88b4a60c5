package records

import (
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Allergy es una alergia conocida del pet.
type Allergy struct {
	ID       string
	Allergen string
	Severity string // leve/moderada/severa, texto libre del backend
	Reaction string
	Notes    string
}

type AllergyForm struct {
	Allergen string
	Severity string
	Reaction string
	Notes    string
}

func allergyDescriptor() Descriptor[Allergy, AllergyForm] {
	return Descriptor[Allergy, AllergyForm]{
		Name: "allergy",
		Kind: KindAllergy,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/allergies"
		},
		Item: func(petID, recordID string) string {
			return "/pets/" + petID + "/medical-records/allergies/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "allergen", Sources: []string{"allergen", "allergyName", "allergy_name", "name"}, Default: NotSpecified},
			{Target: "severity", Sources: []string{"severity", "level", "grade"}, Default: NotSpecified},
			{Target: "reaction", Sources: []string{"reaction", "symptoms", "symptom"}, Default: ""},
			{Target: "notes", Sources: []string{"notes", "description", "note"}, Default: ""},
		},
		Build: func(f map[string]string) Allergy {
			return Allergy{
				ID:       f["id"],
				Allergen: f["allergen"],
				Severity: f["severity"],
				Reaction: f["reaction"],
				Notes:    f["notes"],
			}
		},
		Payload: func(f AllergyForm) map[string]any {
			return map[string]any{
				"allergen": f.Allergen,
				"severity": f.Severity,
				"reaction": f.Reaction,
				"notes":    f.Notes,
			}
		},
		FormFields: func(f AllergyForm) map[string]string {
			return map[string]string{
				"allergen": f.Allergen,
				"severity": f.Severity,
				"reaction": f.Reaction,
				"notes":    f.Notes,
			}
		},
	}
}

func NewAllergyService(transport *httpclient.Client, log logger.Logger) *Service[Allergy, AllergyForm] {
	return NewService(allergyDescriptor(), transport, log)
}
