package healthrecords

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-community-client/internal/domain/records"
	"pet-community-client/internal/platform/storage/kv"
)

func TestService_ListByPetAndKind_FiltersAndKeepsInsertionOrder(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)
	ctx := context.Background()

	// Mezcla de kinds para el mismo pet, intercalados
	seq := []records.Kind{
		records.KindVaccine, records.KindWeight, records.KindVaccine,
		records.KindAllergy, records.KindVaccine,
	}
	for i, kind := range seq {
		if _, err := svc.AddRecord(ctx, AddInput{
			PetID: "pet-1",
			Kind:  kind,
			Title: fmt.Sprintf("r%d", i),
			Date:  "2026-01-01",
		}); err != nil {
			t.Fatalf("AddRecord #%d: %v", i, err)
		}
	}
	// Ruido de otro pet
	if _, err := svc.AddRecord(ctx, AddInput{
		PetID: "pet-2", Kind: records.KindVaccine, Title: "ajeno", Date: "2026-01-01",
	}); err != nil {
		t.Fatalf("AddRecord other pet: %v", err)
	}

	got := svc.ListByPetAndKind(ctx, "pet-1", records.KindVaccine)
	if len(got) != 3 {
		t.Fatalf("expected 3 vaccines, got %d", len(got))
	}
	// Exactamente el subset del kind, en orden de inserción
	for i, want := range []string{"r0", "r2", "r4"} {
		if got[i].Title != want {
			t.Fatalf("expected %s at %d, got %s", want, i, got[i].Title)
		}
	}
}

func TestService_AddRecord_Validation(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)
	ctx := context.Background()

	cases := []AddInput{
		{PetID: "", Kind: records.KindVaccine, Title: "x"},
		{PetID: "p", Kind: "cosa-rara", Title: "x"},
		{PetID: "p", Kind: records.KindVaccine, Title: "  "},
	}
	for i, in := range cases {
		if _, err := svc.AddRecord(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_AddRecord_AssignsIDAndTimestamp(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rec, err := svc.AddRecord(context.Background(), AddInput{
		PetID: "pet-1", Kind: records.KindMedication, Title: "Antibiyotik",
		Description: "günde 2 kez", Date: "2026-08-30", NextDate: "2026-09-06",
	})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt != now {
		t.Fatalf("expected id + timestamp, got %+v", rec)
	}
	if rec.NextDate != "2026-09-06" {
		t.Fatalf("expected follow-up date kept, got %q", rec.NextDate)
	}
}

func TestService_UpdateRecord_MergesAndPreservesKind(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, AddInput{
		PetID: "pet-1", Kind: records.KindVaccine, Title: "Kuduz", Date: "2024-05-01",
	})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}

	newDate := "2025-05-01"
	updated, err := svc.UpdateRecord(ctx, rec.ID, UpdateInput{Date: &newDate})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if updated.Date != "2025-05-01" {
		t.Fatalf("expected updated date, got %q", updated.Date)
	}
	if updated.Title != "Kuduz" || updated.Kind != records.KindVaccine {
		t.Fatalf("expected untouched fields, got %+v", updated)
	}
	if updated.CreatedAt != rec.CreatedAt {
		t.Fatalf("expected CreatedAt preserved")
	}
}

func TestService_UpdateRecord_NotFoundSentinel(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)

	title := "x"
	_, err := svc.UpdateRecord(context.Background(), "nope", UpdateInput{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteRecord_Idempotent(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, AddInput{
		PetID: "pet-1", Kind: records.KindAllergy, Title: "Polen",
	})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}

	if !svc.DeleteRecord(ctx, rec.ID) {
		t.Fatalf("expected first delete true")
	}
	if svc.DeleteRecord(ctx, rec.ID) {
		t.Fatalf("expected second delete false")
	}
}

func TestService_DeleteByPet_RemovesOnlyThatPet(t *testing.T) {
	svc := NewService(kv.NewMemory(), nil)
	ctx := context.Background()

	for _, petID := range []string{"pet-1", "pet-1", "pet-2"} {
		if _, err := svc.AddRecord(ctx, AddInput{
			PetID: petID, Kind: records.KindTreatment, Title: "t",
		}); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}

	n, err := svc.DeleteByPet(ctx, "pet-1")
	if err != nil {
		t.Fatalf("DeleteByPet: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if got := svc.ListByPet(ctx, "pet-2"); len(got) != 1 {
		t.Fatalf("expected pet-2 records untouched, got %d", len(got))
	}
}

func TestService_ListByPet_UnreadableStorageReturnsEmpty(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set(context.Background(), "health_records", "{{{")

	svc := NewService(store, nil)
	if got := svc.ListByPet(context.Background(), "pet-1"); len(got) != 0 {
		t.Fatalf("expected empty on corrupt storage, got %d", len(got))
	}
}
