package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"pet-community-client/internal/devbackend"
	"pet-community-client/internal/domain/records"
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

func testApp(t *testing.T) (*app, func()) {
	t.Helper()

	ts := httptest.NewServer(devbackend.NewRouter(devbackend.Options{}))
	client, err := httpclient.New(httpclient.Config{BaseURL: ts.URL})
	if err != nil {
		ts.Close()
		t.Fatalf("httpclient.New: %v", err)
	}
	return &app{log: logger.Nop(), client: client}, ts.Close
}

func TestApp_AddRecord_Vaccine(t *testing.T) {
	a, done := testApp(t)
	defer done()
	ctx := context.Background()

	out, err := a.addRecord(ctx, "vaccines", "pet-1", recordForm{
		Name: "Kuduz", Date: "2024-05-01", Veterinarian: "Dr. A",
	})
	if err != nil {
		t.Fatalf("addRecord: %v", err)
	}
	v, ok := out.(records.Vaccination)
	if !ok {
		t.Fatalf("expected Vaccination, got %T", out)
	}
	// El backend confirma con {id} pelado; el resto sale del form
	if v.ID == "" || v.Name != "Kuduz" || v.Date != "2024-05-01" || v.Veterinarian != "Dr. A" {
		t.Fatalf("unexpected vaccination %+v", v)
	}

	listed, err := a.listRecords(ctx, "vaccines", "pet-1")
	if err != nil {
		t.Fatalf("listRecords: %v", err)
	}
	if vs, ok := listed.([]records.Vaccination); !ok || len(vs) != 1 {
		t.Fatalf("expected 1 listed vaccination, got %#v", listed)
	}
}

func TestApp_AddRecord_Appointment(t *testing.T) {
	a, done := testApp(t)
	defer done()

	out, err := a.addRecord(context.Background(), "appointments", "pet-1", recordForm{
		Title: "Kontrol", Date: "2026-09-10", Time: "14:30", Clinic: "PatiVet",
	})
	if err != nil {
		t.Fatalf("addRecord: %v", err)
	}
	ap, ok := out.(records.Appointment)
	if !ok {
		t.Fatalf("expected Appointment, got %T", out)
	}
	if ap.Title != "Kontrol" || ap.Time != "14:30" || ap.Clinic != "PatiVet" {
		t.Fatalf("unexpected appointment %+v", ap)
	}
}

func TestApp_AddRecord_UnknownKind(t *testing.T) {
	a, done := testApp(t)
	defer done()

	if _, err := a.addRecord(context.Background(), "potions", "pet-1", recordForm{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
