package healthrecords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-community-client/internal/domain/records"
	"pet-community-client/internal/platform/logger"
	"pet-community-client/internal/platform/storage/kv"
)

const storageKey = "health_records"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service es el store local de registros de salud genéricos.
// Mismas convenciones que pets: colección completa, load-modify-store,
// un escritor a la vez.
type Service struct {
	store kv.Store
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func NewService(store kv.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type AddInput struct {
	PetID       string
	Kind        records.Kind
	Title       string
	Description string
	Date        string
	NextDate    string
}

func (s *Service) AddRecord(ctx context.Context, in AddInput) (Record, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return Record{}, ErrInvalidInput
	}
	if !in.Kind.Valid() {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Record{}, ErrInvalidInput
	}

	rec := Record{
		ID:          s.newID(),
		PetID:       strings.TrimSpace(in.PetID),
		Kind:        in.Kind,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		NextDate:    strings.TrimSpace(in.NextDate),
		CreatedAt:   s.now(),
	}

	err := s.mutate(ctx, func(all []Record) []Record {
		return append(all, rec)
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ListByPet devuelve el timeline del pet en orden de inserción.
// Storage ilegible => lista vacía, nunca error.
func (s *Service) ListByPet(ctx context.Context, petID string) []Record {
	all, err := s.load(ctx)
	if err != nil {
		s.log.Warn("health records storage unreadable, returning empty", map[string]any{"err": err.Error()})
		return []Record{}
	}

	out := make([]Record, 0)
	for _, r := range all {
		if r.PetID == petID {
			out = append(out, r)
		}
	}
	return out
}

// ListByPetAndKind filtra además por tipo, mismo orden de inserción.
func (s *Service) ListByPetAndKind(ctx context.Context, petID string, kind records.Kind) []Record {
	out := make([]Record, 0)
	for _, r := range s.ListByPet(ctx, petID) {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// UpdateInput: merge parcial. Kind no está: es inmutable por contrato.
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *string
	NextDate    *string
}

func (s *Service) UpdateRecord(ctx context.Context, recordID string, in UpdateInput) (Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return Record{}, ErrInvalidInput
	}

	var updated Record
	found := false

	err := s.mutate(ctx, func(all []Record) []Record {
		for i := range all {
			if all[i].ID != recordID {
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
		return Record{}, err
	}
	if !found {
		return Record{}, ErrNotFound
	}
	return updated, nil
}

// DeleteRecord es best-effort: true solo si existía y se persistió el borrado.
func (s *Service) DeleteRecord(ctx context.Context, recordID string) bool {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return false
	}

	found := false
	err := s.mutate(ctx, func(all []Record) []Record {
		out := all[:0]
		for _, r := range all {
			if r.ID == recordID {
				found = true
				continue
			}
			out = append(out, r)
		}
		return out
	})
	if err != nil {
		s.log.Warn("delete record failed", map[string]any{"record_id": recordID, "err": err.Error()})
		return false
	}
	return found
}

// DeleteByPet borra todos los registros del pet (cascade desde pets).
// Devuelve cuántos se fueron.
func (s *Service) DeleteByPet(ctx context.Context, petID string) (int, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return 0, ErrInvalidInput
	}

	removed := 0
	err := s.mutate(ctx, func(all []Record) []Record {
		out := all[:0]
		for _, r := range all {
			if r.PetID == petID {
				removed++
				continue
			}
			out = append(out, r)
		}
		return out
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func applyUpdate(r *Record, in UpdateInput) {
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		r.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		r.Date = strings.TrimSpace(*in.Date)
	}
	if in.NextDate != nil {
		r.NextDate = strings.TrimSpace(*in.NextDate)
	}
}

func (s *Service) mutate(ctx context.Context, fn func([]Record) []Record) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, fn(all))
}

func (s *Service) load(ctx context.Context) ([]Record, error) {
	v, ok, err := s.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("health records: load: %w", err)
	}
	if !ok || strings.TrimSpace(v) == "" {
		return []Record{}, nil
	}

	var all []Record
	if err := json.Unmarshal([]byte(v), &all); err != nil {
		return nil, fmt.Errorf("health records: corrupt collection: %w", err)
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all []Record) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("health records: marshal collection: %w", err)
	}
	if err := s.store.Set(ctx, storageKey, string(b)); err != nil {
		return fmt.Errorf("health records: save: %w", err)
	}
	return nil
}
