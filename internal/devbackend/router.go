// Package devbackend es el backend de desarrollo: implementa los endpoints
// de medical-records sobre memoria y responde a propósito con los nombres de
// campo "dríftados" de cada revisión, para ejercitar la normalización del
// cliente de punta a punta. Nada de datos inventados en fallos: si algo
// falla acá, falla visible.
package devbackend

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"pet-community-client/internal/platform/logger"
)

type Options struct {
	Log logger.Logger
}

// drift: key canónica del payload → key con la que responde cada revisión.
var drift = map[string]map[string]string{
	"vaccines":     {"name": "vaccineName", "date": "vaccinationDate", "veterinarian": "vet"},
	"treatments":   {"name": "treatmentName", "date": "treatment_date"},
	"appointments": {"title": "reason", "date": "appointment_date", "time": "hour", "clinic": "clinicName"},
	"medications":  {"name": "medicationName", "dosage": "dose", "frequency": "interval"},
	"allergies":    {"allergen": "allergyName", "severity": "level", "reaction": "symptoms"},
	"weights":      {"weight": "value", "unit": "weightUnit", "date": "measuredAt"},
}

type entry struct {
	ID     string
	PetID  string
	Kind   string
	Fields map[string]any
}

type server struct {
	mu      sync.Mutex
	records []entry
	log     logger.Logger
}

func NewRouter(opts Options) http.Handler {
	lg := opts.Log
	if lg == nil {
		lg = logger.Nop()
	}
	s := &server{log: lg}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(rejectDeadToken)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/pets/{petID}/medical-records/{kind}", func(kr chi.Router) {
		kr.Get("/", s.list)
		kr.Post("/", s.create)
		kr.Put("/{recordID}", s.update)
		kr.Delete("/{recordID}", s.delete)
	})

	// Forma plana de la revisión vieja: update/delete solo por record id.
	r.Put("/medical-records/{recordID}", s.updateFlat)
	r.Delete("/medical-records/{recordID}", s.deleteFlat)

	return r
}

// rejectDeadToken simula el 401 de un token vencido: mandar
// "Authorization: Bearer expired" fuerza el logout client-side.
func rejectDeadToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer expired" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token expired"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	petID := chi.URLParam(r, "petID")
	if _, ok := drift[kind]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown record kind"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0)
	for _, e := range s.records {
		if e.Kind == kind && e.PetID == petID {
			out = append(out, drifted(e))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	petID := chi.URLParam(r, "petID")
	if _, ok := drift[kind]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown record kind"})
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid json"})
		return
	}

	e := entry{
		ID:     uuid.NewString(),
		PetID:  petID,
		Kind:   kind,
		Fields: fields,
	}

	s.mu.Lock()
	s.records = append(s.records, e)
	s.mu.Unlock()

	s.log.Info("record created", map[string]any{"kind": kind, "pet_id": petID, "id": e.ID})

	// Eco mínimo, como la revisión que solo confirmaba el id.
	// El cliente tiene que sintetizar el resto desde su form.
	writeJSON(w, http.StatusCreated, map[string]any{"id": e.ID})
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	s.updateByID(w, r, chi.URLParam(r, "recordID"))
}

func (s *server) updateFlat(w http.ResponseWriter, r *http.Request) {
	s.updateByID(w, r, chi.URLParam(r, "recordID"))
}

func (s *server) updateByID(w http.ResponseWriter, r *http.Request, recordID string) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != recordID {
			continue
		}
		for k, v := range fields {
			s.records[i].Fields[k] = v
		}
		writeJSON(w, http.StatusOK, drifted(s.records[i]))
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, chi.URLParam(r, "recordID"))
}

func (s *server) deleteFlat(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, chi.URLParam(r, "recordID"))
}

func (s *server) deleteByID(w http.ResponseWriter, recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != recordID {
			continue
		}
		s.records = append(s.records[:i], s.records[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "record not found"})
}

// drifted renombra los campos según la revisión del kind y suma el id.
func drifted(e entry) map[string]any {
	aliases := drift[e.Kind]
	out := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		if alias, ok := aliases[strings.TrimSpace(k)]; ok {
			out[alias] = v
			continue
		}
		out[k] = v
	}
	out["id"] = e.ID
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
