package pets

import "time"

// Gender define el sexo de la mascota.
// Valores tal cual los manda la app (en turco).
// @Enum erkek, dişi
type Gender string

const (
	GenderMale   Gender = "erkek"
	GenderFemale Gender = "dişi"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet es el perfil local de una mascota. Mientras el backend no tenga
// endpoint de perfil, la colección vive completa en el store del dispositivo.
type Pet struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   Gender `json:"gender"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	ImageURI string `json:"image_uri,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BreedCatalog: especies conocidas y sus razas permitidas. Claves y valores
// en el idioma de la app. Species es texto libre: una especie fuera del
// catálogo no se valida (el catálogo es una comodidad de UI, no taxonomía).
var BreedCatalog = map[string][]string{
	"kedi": {
		"Tekir", "Sarman", "Van Kedisi", "Ankara Kedisi",
		"British Shorthair", "Scottish Fold", "Siyam", "İran Kedisi", "Diğer",
	},
	"köpek": {
		"Golden Retriever", "Labrador", "Kangal", "Akbaş",
		"Poodle", "Bulldog", "Chihuahua", "Beagle", "Diğer",
	},
	"kuş": {
		"Muhabbet Kuşu", "Sultan Papağanı", "Kanarya", "Papağan", "Diğer",
	},
	"balık": {
		"Japon Balığı", "Beta", "Lepistes", "Diğer",
	},
	"diğer": {"Diğer"},
}

// BreedAllowed valida la raza contra el catálogo de la especie.
// Solo se chequea al crear; no se re-valida después.
func BreedAllowed(species, breed string) bool {
	allowed, known := BreedCatalog[species]
	if !known {
		return true
	}
	for _, b := range allowed {
		if b == breed {
			return true
		}
	}
	return false
}
