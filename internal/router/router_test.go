package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-house/internal/adapters/storage/memory"
	"pet-house/internal/domain/assistant"
	"pet-house/internal/domain/petstore"
	"pet-house/internal/middleware"
	"pet-house/internal/platform/metrics"
	"pet-house/internal/router"

	"github.com/prometheus/client_golang/prometheus"
)

func fixedClock() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newServer(t *testing.T, rl *middleware.RateLimiter) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)

	store, err := petstore.Open(context.Background(), petstore.Options{
		Blobs:   memory.NewBlobStore(),
		Metrics: col,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Store:       store,
		Assistant:   assistant.NewService(nil, col),
		Gatherer:    reg,
		RateLimiter: rl,
		Clock:       fixedClock,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetVaccineReminderFlow(t *testing.T) {
	ts := newServer(t, nil)

	// 1) Alta de mascota
	petID := createPet(t, ts.URL, map[string]any{
		"name":    "Rex",
		"species": "dog",
		"gender":  "male",
		"breed":   "<b>Labrador</b>",
	})

	// 2) Vacuna con próxima dosis => recordatorio automático
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/vaccines", map[string]any{
			"name":     "Rabies",
			"date":     "2025-05-01",
			"nextDate": "2026-05-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add vaccine, got %d body=%s", st, string(body))
		}
	}

	var derived []reminderJSON
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders?pet_id="+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list reminders, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &derived)
		if len(derived) != 1 {
			t.Fatalf("expected 1 derived reminder, got %s", string(body))
		}
		r := derived[0]
		if r.Title != "Vaccine Rabies for Rex" || r.Date != "2026-05-01" || r.Type != "vaccine" {
			t.Fatalf("unexpected reminder %#v", r)
		}
		// 2026-05-01 < 2026-06-01 y pendiente
		if !r.Overdue {
			t.Fatalf("expected reminder to be overdue")
		}
	}

	// 3) Derivar de nuevo no crea nada
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders/derive", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty derive result, got %d body=%s", st, string(body))
		}
	}

	// 4) Recordatorio manual y completar
	var manualID string
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders", map[string]any{
			"petId": petID,
			"type":  "appointment",
			"title": "Checkup",
			"date":  "2026-07-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add reminder, got %d body=%s", st, string(body))
		}
		var r reminderJSON
		_ = json.Unmarshal(body, &r)
		manualID = r.ID
		if r.Completed || r.Overdue {
			t.Fatalf("new future reminder must be pending and not overdue: %#v", r)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders/"+manualID+"/complete", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"completed":true`) {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders?status=pending", nil)
		var got []reminderJSON
		_ = json.Unmarshal(body, &got)
		if st != http.StatusOK || len(got) != 1 || got[0].ID != derived[0].ID {
			t.Fatalf("expected only the vaccine reminder pending, got %d body=%s", st, string(body))
		}
	}

	// 5) Borrar la mascota borra sus recordatorios
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete pet, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected no reminders after cascade, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for deleted pet, got %d", st)
		}
	}

	// 6) Métricas expuestas
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `pethouse_store_mutations_total{found="true",op="delete_pet"} 1`) {
			t.Fatalf("expected delete_pet metric, got %d", st)
		}
	}
}

func TestHTTP_PetSanitizingAndPatch(t *testing.T) {
	ts := newServer(t, nil)

	petID := createPet(t, ts.URL, map[string]any{
		"name":    "  <script>x</script>Mia ",
		"species": "cat",
		"gender":  "female",
	})

	st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID, map[string]any{"weight": 4.2})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
	}
	var p struct {
		Name     string  `json:"name"`
		Weight   float64 `json:"weight"`
		Vaccines []any   `json:"vaccines"`
	}
	_ = json.Unmarshal(body, &p)
	if p.Name != "Mia" || p.Weight != 4.2 || p.Vaccines == nil {
		t.Fatalf("unexpected pet %s", string(body))
	}

	// id no es modificable
	st, _ = doReq(t, ts.URL, "PATCH", "/pets/"+petID, map[string]any{"id": "other"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for id in patch, got %d", st)
	}
}

func TestHTTP_VaccineSortAndClearNextDate(t *testing.T) {
	ts := newServer(t, nil)

	petID := createPet(t, ts.URL, map[string]any{"name": "Bolt", "species": "dog", "gender": "male"})

	var lastID string
	for _, v := range []map[string]any{
		{"name": "V10", "date": "2025-03-01"},
		{"name": "Giardia", "date": "2025-01-01"},
		{"name": "Rabies", "date": "2025-02-01"},
	} {
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/vaccines", v)
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		lastID = resp.ID
	}

	// sin sort: orden de alta
	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/vaccines", nil)
	var names []struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &names)
	if st != http.StatusOK || len(names) != 3 || names[0].Name != "V10" || names[1].Name != "Giardia" || names[2].Name != "Rabies" {
		t.Fatalf("expected insertion order without sort, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/"+petID+"/vaccines?sort=name&dir=asc", nil)
	names = nil
	_ = json.Unmarshal(body, &names)
	if st != http.StatusOK || len(names) != 3 || names[0].Name != "Giardia" || names[2].Name != "V10" {
		t.Fatalf("unexpected sort result %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/vaccines?sort=weight", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort key, got %d", st)
	}

	// set y luego null en nextDate
	st, body = doReq(t, ts.URL, "PATCH", "/pets/"+petID+"/vaccines/"+lastID, map[string]any{"nextDate": "2026-02-01"})
	if st != http.StatusOK || !strings.Contains(string(body), `"nextDate":"2026-02-01"`) {
		t.Fatalf("expected nextDate set, got %d body=%s", st, string(body))
	}
	st, body = doReq(t, ts.URL, "PATCH", "/pets/"+petID+"/vaccines/"+lastID, map[string]any{"nextDate": nil})
	if st != http.StatusOK || !strings.Contains(string(body), `"nextDate":null`) {
		t.Fatalf("expected nextDate cleared, got %d body=%s", st, string(body))
	}

	// el recordatorio derivado sobrevive al borrar la vacuna
	if st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID+"/vaccines/"+lastID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete vaccine, got %d", st)
	}
	_, body = doReq(t, ts.URL, "GET", "/reminders?pet_id="+petID, nil)
	if !strings.Contains(string(body), "Vaccine Rabies for Bolt") {
		t.Fatalf("expected derived reminder to survive, body=%s", string(body))
	}
}

func TestHTTP_NotFoundAndValidation(t *testing.T) {
	ts := newServer(t, nil)

	cases := []struct {
		method, path string
		body         any
		want         int
	}{
		{"GET", "/pets/nope", nil, http.StatusNotFound},
		{"PATCH", "/pets/nope", map[string]any{"name": "x"}, http.StatusNotFound},
		{"DELETE", "/pets/nope", nil, http.StatusNotFound},
		{"POST", "/pets/nope/vaccines", map[string]any{"name": "Rabies", "date": "2025-01-01"}, http.StatusNotFound},
		{"DELETE", "/pets/nope/vaccines/nope", nil, http.StatusNotFound},
		{"GET", "/reminders/nope", nil, http.StatusNotFound},
		{"POST", "/reminders/nope/complete", nil, http.StatusNotFound},
		{"DELETE", "/reminders/nope", nil, http.StatusNotFound},
		{"POST", "/reminders", map[string]any{"petId": "nope", "type": "appointment", "title": "x", "date": "2026-01-01"}, http.StatusNotFound},

		{"POST", "/pets", map[string]any{"species": "dog", "gender": "male"}, http.StatusBadRequest},
		{"POST", "/pets", map[string]any{"name": "Rex", "species": "bird", "gender": "male"}, http.StatusBadRequest},
		{"POST", "/pets", map[string]any{"name": "Rex", "species": "dog", "gender": "x"}, http.StatusBadRequest},
		{"POST", "/pets", map[string]any{"name": "Rex", "species": "dog", "gender": "male", "birthdate": "01/02/2020"}, http.StatusBadRequest},
		{"POST", "/pets", map[string]any{"name": "Rex", "species": "dog", "gender": "male", "weight": 0}, http.StatusBadRequest},
		{"POST", "/pets", map[string]any{"name": "Rex", "species": "dog", "gender": "male", "weight": -1.5}, http.StatusBadRequest},
		{"POST", "/reminders", map[string]any{"petId": "p", "type": "grooming", "title": "x", "date": "2026-01-01"}, http.StatusBadRequest},
		{"GET", "/reminders?status=late", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, tc.body)
		if st != tc.want {
			t.Fatalf("%s %s: expected %d, got %d body=%s", tc.method, tc.path, tc.want, st, string(body))
		}
	}
}

func TestHTTP_Assistant(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.PerMinute(2), nil)
	defer rl.Stop()
	ts := newServer(t, rl)

	st, body := doReq(t, ts.URL, "POST", "/assistant/messages", map[string]any{"message": "Meu pet está vomitando"})
	if st != http.StatusOK || !strings.Contains(string(body), `"topic":"vomit"`) {
		t.Fatalf("expected vomit reply, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/assistant/messages", map[string]any{"message": "   "})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", st)
	}

	// burst de 2 agotado (el 400 también consume) => 429
	st, _ = doReq(t, ts.URL, "POST", "/assistant/emergency", nil)
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", st)
	}

	// el resto de la API no está limitado
	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

type reminderJSON struct {
	ID        string `json:"id"`
	PetID     string `json:"petId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Overdue   bool   `json:"overdue"`
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
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

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
