package pets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-community-client/internal/platform/logger"
	"pet-community-client/internal/platform/storage/kv"
)

const storageKey = "pets"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RecordPurger borra los registros de salud de una mascota.
// Lo implementa healthrecords.Service; acá solo importa el cascade.
type RecordPurger interface {
	DeleteByPet(ctx context.Context, petID string) (int, error)
}

// Service es el store local de mascotas: colección completa por key,
// load-modify-store en cada mutación. Un solo escritor a la vez por diseño
// (cliente single-user); dos escritores concurrentes = last-write-wins.
type Service struct {
	store  kv.Store
	purger RecordPurger // puede ser nil
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(store kv.Store, purger RecordPurger, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:  store,
		purger: purger,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type AddInput struct {
	OwnerID  string
	Name     string
	Age      int
	Gender   Gender
	Species  string
	Breed    string
	ImageURI string
}

// AddPet asigna id + timestamp y persiste la colección completa.
func (s *Service) AddPet(ctx context.Context, in AddInput) (Pet, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if !in.Gender.Valid() {
		return Pet{}, ErrInvalidInput
	}
	species := strings.TrimSpace(in.Species)
	breed := strings.TrimSpace(in.Breed)
	if !BreedAllowed(species, breed) {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		ID:        s.newID(),
		OwnerID:   strings.TrimSpace(in.OwnerID),
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		Gender:    in.Gender,
		Species:   species,
		Breed:     breed,
		ImageURI:  strings.TrimSpace(in.ImageURI),
		CreatedAt: s.now(),
	}

	err := s.mutate(ctx, func(all []Pet) []Pet {
		return append(all, p)
	})
	if err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetPetsByOwner filtra la colección por dueño. Storage vacío o ilegible
// devuelve lista vacía, nunca error: la pantalla se renderiza igual.
func (s *Service) GetPetsByOwner(ctx context.Context, ownerID string) []Pet {
	all, err := s.load(ctx)
	if err != nil {
		s.log.Warn("pets storage unreadable, returning empty", map[string]any{"err": err.Error()})
		return []Pet{}
	}

	out := make([]Pet, 0)
	for _, p := range all {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out
}

// UpdateInput: punteros para merge parcial, nil = no tocar.
// Ni ID ni OwnerID ni CreatedAt son editables.
type UpdateInput struct {
	Name     *string
	Age      *int
	Gender   *Gender
	Species  *string
	Breed    *string
	ImageURI *string
}

// UpdatePet mergea campos parciales. ErrNotFound si el id no existe.
func (s *Service) UpdatePet(ctx context.Context, petID string, in UpdateInput) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, ErrInvalidInput
	}

	var updated Pet
	found := false

	err := s.mutate(ctx, func(all []Pet) []Pet {
		for i := range all {
			if all[i].ID != petID {
				continue
			}
			found = true
			applyUpdate(&all[i], in)
			updated = all[i]
			break
		}
		return all
	})
	if err != nil {
		return Pet{}, err
	}
	if !found {
		return Pet{}, ErrNotFound
	}
	return updated, nil
}

// DeletePet borra la mascota y cascadea el borrado de todos sus registros
// de salud. Irreversible. true solo con borrado confirmado.
func (s *Service) DeletePet(ctx context.Context, petID string) bool {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return false
	}

	all, err := s.load(ctx)
	if err != nil {
		s.log.Warn("delete pet failed", map[string]any{"pet_id": petID, "err": err.Error()})
		return false
	}
	found := false
	for _, p := range all {
		if p.ID == petID {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Primero el historial: si la purga falla, la mascota queda intacta
	// y el false refleja el estado real.
	if s.purger != nil {
		n, err := s.purger.DeleteByPet(ctx, petID)
		if err != nil {
			s.log.Error("cascade delete of health records failed", map[string]any{
				"pet_id": petID,
				"err":    err.Error(),
			})
			return false
		}
		s.log.Info("health records purged for pet", map[string]any{
			"pet_id":  petID,
			"records": n,
		})
	}

	out := all[:0]
	for _, p := range all {
		if p.ID != petID {
			out = append(out, p)
		}
	}
	if err := s.save(ctx, out); err != nil {
		s.log.Warn("delete pet failed", map[string]any{"pet_id": petID, "err": err.Error()})
		return false
	}
	return true
}

func applyUpdate(p *Pet, in UpdateInput) {
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil && *in.Age >= 0 {
		p.Age = *in.Age
	}
	if in.Gender != nil && in.Gender.Valid() {
		p.Gender = *in.Gender
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.ImageURI != nil {
		p.ImageURI = strings.TrimSpace(*in.ImageURI)
	}
}

// mutate hace el ciclo load-modify-store sobre la colección completa.
// No hay primitiva de transacción: el store reescribe todo el valor.
func (s *Service) mutate(ctx context.Context, fn func([]Pet) []Pet) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, fn(all))
}

func (s *Service) load(ctx context.Context) ([]Pet, error) {
	v, ok, err := s.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("pets: load: %w", err)
	}
	if !ok || strings.TrimSpace(v) == "" {
		return []Pet{}, nil
	}

	var all []Pet
	if err := json.Unmarshal([]byte(v), &all); err != nil {
		return nil, fmt.Errorf("pets: corrupt collection: %w", err)
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all []Pet) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("pets: marshal collection: %w", err)
	}
	if err := s.store.Set(ctx, storageKey, string(b)); err != nil {
		return fmt.Errorf("pets: save: %w", err)
	}
	return nil
}
