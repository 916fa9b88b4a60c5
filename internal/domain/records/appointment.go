package records

import (
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// Appointment es una cita veterinaria (pasada o futura).
type Appointment struct {
	ID     string
	Title  string
	Date   string
	Time   string
	Clinic string
	Notes  string
}

type AppointmentForm struct {
	Title  string
	Date   string
	Time   string
	Clinic string
	Notes  string
}

func appointmentDescriptor() Descriptor[Appointment, AppointmentForm] {
	return Descriptor[Appointment, AppointmentForm]{
		Name: "appointment",
		Kind: KindAppointment,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/appointments"
		},
		// Esta entidad salió con la revisión vieja del backend: item ops
		// van por la forma plana, sin pet en el path.
		Item: func(_, recordID string) string {
			return "/medical-records/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "title", Sources: []string{"title", "reason", "appointmentTitle", "name"}, Default: NotSpecified},
			{Target: "date", Sources: []string{"date", "appointmentDate", "appointment_date"}, Default: NotSpecified},
			{Target: "time", Sources: []string{"time", "appointmentTime", "hour"}, Default: ""},
			{Target: "clinic", Sources: []string{"clinic", "clinicName", "veterinarian", "vet"}, Default: NotSpecified},
			{Target: "notes", Sources: []string{"notes", "description", "note"}, Default: ""},
		},
		Build: func(f map[string]string) Appointment {
			return Appointment{
				ID:     f["id"],
				Title:  f["title"],
				Date:   f["date"],
				Time:   f["time"],
				Clinic: f["clinic"],
				Notes:  f["notes"],
			}
		},
		Payload: func(f AppointmentForm) map[string]any {
			return map[string]any{
				"title":  f.Title,
				"date":   f.Date,
				"time":   f.Time,
				"clinic": f.Clinic,
				"notes":  f.Notes,
			}
		},
		FormFields: func(f AppointmentForm) map[string]string {
			return map[string]string{
				"title":  f.Title,
				"date":   f.Date,
				"time":   f.Time,
				"clinic": f.Clinic,
				"notes":  f.Notes,
			}
		},
	}
}

func NewAppointmentService(transport *httpclient.Client, log logger.Logger) *Service[Appointment, AppointmentForm] {
	return NewService(appointmentDescriptor(), transport, log)
}
