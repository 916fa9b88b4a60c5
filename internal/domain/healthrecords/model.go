package healthrecords

import (
	"time"

	"pet-community-client/internal/domain/records"
)

// Record es una entrada genérica del timeline de salud de un pet.
// La usan los paneles que todavía no tienen service remoto tipado.
type Record struct {
	ID    string       `json:"id"`
	PetID string       `json:"pet_id"`
	Kind  records.Kind `json:"kind"` // inmutable después de crear

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Date     string `json:"date"`                // fecha principal, YYYY-MM-DD
	NextDate string `json:"next_date,omitempty"` // seguimiento opcional

	CreatedAt time.Time `json:"created_at"`
}
