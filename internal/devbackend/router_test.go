package devbackend_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-community-client/internal/devbackend"
)

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func TestRouter_DriftedListResponse(t *testing.T) {
	ts := httptest.NewServer(devbackend.NewRouter(devbackend.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/pets/p1/medical-records/vaccines", "", map[string]any{
		"name": "Kuduz", "date": "2024-05-01", "veterinarian": "Dr. A",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	// El create solo confirma id
	var created map[string]any
	_ = json.Unmarshal(body, &created)
	if len(created) != 1 || created["id"] == nil {
		t.Fatalf("expected sparse {id} echo, got %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/p1/medical-records/vaccines", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var items []map[string]any
	_ = json.Unmarshal(body, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %s", string(body))
	}
	// Responde con los nombres dríftados, no los del payload
	if items[0]["vaccineName"] != "Kuduz" || items[0]["vaccinationDate"] != "2024-05-01" || items[0]["vet"] != "Dr. A" {
		t.Fatalf("expected drifted field names, got %s", string(body))
	}
	if _, ok := items[0]["name"]; ok {
		t.Fatalf("canonical name must not appear in response")
	}
}

func TestRouter_ExpiredTokenGets401(t *testing.T) {
	ts := httptest.NewServer(devbackend.NewRouter(devbackend.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/pets/p1/medical-records/vaccines", "expired", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", st)
	}
}

func TestRouter_UnknownKindGets404(t *testing.T) {
	ts := httptest.NewServer(devbackend.NewRouter(devbackend.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/pets/p1/medical-records/potions", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", st)
	}
}
