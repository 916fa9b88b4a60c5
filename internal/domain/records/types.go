package records

// Kind clasifica una entrada del historial de salud.
// @Enum vaccine, treatment, appointment, medication, allergy, weight
type Kind string

const (
	KindVaccine     Kind = "vaccine"
	KindTreatment   Kind = "treatment"
	KindAppointment Kind = "appointment"
	KindMedication  Kind = "medication"
	KindAllergy     Kind = "allergy"
	KindWeight      Kind = "weight"
)

func (k Kind) Valid() bool {
	switch k {
	case KindVaccine, KindTreatment, KindAppointment, KindMedication, KindAllergy, KindWeight:
		return true
	}
	return false
}

// NotSpecified es el placeholder de display cuando ninguna variante de
// campo vino en la respuesta. Un Add/Update exitoso nunca lo devuelve:
// el service rellena desde el form (ver Service.decode).
const NotSpecified = "not specified"
