package records

import "testing"

func TestNormalize_PrecedenceOrder(t *testing.T) {
	rules := []Rule{
		{Target: "name", Sources: []string{"name", "vaccineName"}, Default: NotSpecified},
	}

	// Gana el primer candidato presente y no vacío
	got := Normalize(map[string]any{"name": "Kuduz", "vaccineName": "otro"}, rules)
	if got["name"] != "Kuduz" {
		t.Fatalf("expected first source to win, got %q", got["name"])
	}

	// name vacío => cae al siguiente candidato
	got = Normalize(map[string]any{"name": "  ", "vaccineName": "Karma"}, rules)
	if got["name"] != "Karma" {
		t.Fatalf("expected fallback source, got %q", got["name"])
	}

	// Ninguno presente => default
	got = Normalize(map[string]any{"x": 1}, rules)
	if got["name"] != NotSpecified {
		t.Fatalf("expected default, got %q", got["name"])
	}
}

func TestNormalize_NullCountsAsAbsent(t *testing.T) {
	rules := []Rule{
		{Target: "date", Sources: []string{"date", "vaccinationDate"}, Default: NotSpecified},
	}
	got := Normalize(map[string]any{"date": nil, "vaccinationDate": "2024-05-01"}, rules)
	if got["date"] != "2024-05-01" {
		t.Fatalf("expected null to fall through, got %q", got["date"])
	}
}

func TestNormalize_NumericID(t *testing.T) {
	// {"id": 42} llega como float64 del decoder y debe salir "42"
	rules := []Rule{{Target: "id", Sources: []string{"id"}}}
	got := Normalize(map[string]any{"id": float64(42)}, rules)
	if got["id"] != "42" {
		t.Fatalf("expected \"42\", got %q", got["id"])
	}
}

func TestNormalize_FloatValue(t *testing.T) {
	rules := []Rule{{Target: "weight", Sources: []string{"weight", "value"}, Default: "0"}}
	got := Normalize(map[string]any{"value": 4.25}, rules)
	if got["weight"] != "4.25" {
		t.Fatalf("expected \"4.25\", got %q", got["weight"])
	}
}
