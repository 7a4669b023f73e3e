package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"vet-management/internal/adapters/storage/memory"
)

// Recorrido completo sobre el store en memoria: alta de propietario,
// alta de mascota, registro de atención, lectura del historial y baja
// del propietario sin perder nada de lo registrado.
func TestRouter_FullClinicFlow(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Options{Store: memory.New()}))
	defer srv.Close()

	// salud
	resp := get(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// alta de propietario
	var owner struct {
		DNI    string `json:"dni"`
		Active bool   `json:"activo"`
		Name   string `json:"nombre"`
	}
	postJSON(t, srv.URL+"/owners", `{
		"dni": "38111222",
		"nombre": "Juan José Galván",
		"direccion": "Av. Siempreviva 742",
		"email": "jgalvan@example.com",
		"telefono_principal": "1155667788",
		"telefono_emergencia": "1199887766"
	}`, http.StatusCreated, &owner)
	if !owner.Active || owner.DNI != "38111222" {
		t.Fatalf("unexpected owner after create: %+v", owner)
	}

	// alta de mascota para ese propietario
	var pet struct {
		ID       string   `json:"id"`
		Active   bool     `json:"activo"`
		Name     string   `json:"nombre"`
		OwnerDNI string   `json:"propietario"`
		History  []string `json:"historial"`
	}
	postJSON(t, srv.URL+"/pets", `{
		"nombre": "Max",
		"sexo": "macho",
		"especie": "perro",
		"raza": "labrador",
		"edad": 4,
		"peso": "28.50",
		"propietario": "38111222"
	}`, http.StatusCreated, &pet)
	if len(pet.ID) != 8 {
		t.Fatalf("expected 8-digit pet id, got %q", pet.ID)
	}
	if pet.OwnerDNI != "38111222" || len(pet.History) != 0 {
		t.Fatalf("unexpected pet after create: %+v", pet)
	}

	// registro de una atención
	var visit struct {
		ID        string          `json:"id"`
		PetID     string          `json:"mascota"`
		OwnerDNI  string          `json:"propietario"`
		TotalCost decimal.Decimal `json:"costo"`
	}
	postJSON(t, srv.URL+"/visits", fmt.Sprintf(`{
		"mascota": %q,
		"motivo": "Control anual",
		"diagnostico": "Sano",
		"tratamiento": "Ninguno",
		"costo_veterinario": "1500.00",
		"costo_medicamentos": "1000.00"
	}`, pet.ID), http.StatusCreated, &visit)
	if visit.PetID != pet.ID || visit.OwnerDNI != "38111222" {
		t.Fatalf("unexpected visit after record: %+v", visit)
	}
	if !visit.TotalCost.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("expected total 2500.00, got %s", visit.TotalCost)
	}

	// el historial de la mascota referencia la atención
	var history struct {
		PetName string `json:"nombre"`
		Visits  []struct {
			ID        string          `json:"id"`
			Reason    string          `json:"motivo"`
			TotalCost decimal.Decimal `json:"costo"`
		} `json:"atenciones"`
	}
	getJSON(t, srv.URL+"/pets/"+pet.ID+"/history", http.StatusOK, &history)
	if history.PetName != "Max" || len(history.Visits) != 1 {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history.Visits[0].ID != visit.ID {
		t.Fatalf("history references %q, visit was %q", history.Visits[0].ID, visit.ID)
	}

	// mascota con historial no vacío
	getJSON(t, srv.URL+"/pets/"+pet.ID, http.StatusOK, &pet)
	if len(pet.History) != 1 || pet.History[0] != visit.ID {
		t.Fatalf("expected history [%s], got %v", visit.ID, pet.History)
	}

	// informes del período de la atención
	month := visit.ID[:7]
	var monthly []struct {
		Key       string `json:"id"`
		PetName   string `json:"mascota_nombre"`
		OwnerName string `json:"propietario_nombre"`
	}
	getJSON(t, srv.URL+"/reports/monthly/"+month, http.StatusOK, &monthly)
	if len(monthly) != 1 || monthly[0].PetName != "Max" || monthly[0].OwnerName != "Juan José Galván" {
		t.Fatalf("unexpected monthly report: %+v", monthly)
	}

	var counts []struct {
		PetID  string  `json:"mascota"`
		Months [12]int `json:"meses"`
	}
	getJSON(t, srv.URL+"/reports/annual/"+visit.ID[:4]+"/counts", http.StatusOK, &counts)
	if len(counts) != 1 || counts[0].PetID != pet.ID {
		t.Fatalf("unexpected annual counts: %+v", counts)
	}
	sum := 0
	for _, n := range counts[0].Months {
		sum += n
	}
	if sum != 1 {
		t.Fatalf("expected exactly one counted visit across the year, got %d", sum)
	}

	// baja del propietario: la mascota y su historial quedan intactos
	del(t, srv.URL+"/owners/38111222", http.StatusNoContent)

	var gone struct {
		Active bool `json:"activo"`
	}
	getJSON(t, srv.URL+"/owners/38111222", http.StatusOK, &gone)
	if gone.Active {
		t.Fatal("expected owner inactive after delete")
	}

	getJSON(t, srv.URL+"/pets/"+pet.ID, http.StatusOK, &pet)
	if !pet.Active || len(pet.History) != 1 {
		t.Fatalf("pet should survive owner deactivation intact: %+v", pet)
	}

	// pero ya no admite mascotas nuevas
	req := newRequest(t, http.MethodPost, srv.URL+"/pets", `{
		"nombre": "Luna",
		"sexo": "hembra",
		"especie": "gato",
		"edad": 2,
		"peso": "4.10",
		"propietario": "38111222"
	}`)
	resp = do(t, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 creating pet for inactive owner, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRouter_ValidationAndNotFound(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Options{Store: memory.New()}))
	defer srv.Close()

	// DNI inválido
	req := newRequest(t, http.MethodPost, srv.URL+"/owners", `{"dni": "12AB", "nombre": "X"}`)
	resp := do(t, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid dni, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// recursos inexistentes
	for _, url := range []string{
		srv.URL + "/owners/99999999",
		srv.URL + "/pets/99999999",
		srv.URL + "/pets/99999999/history",
	} {
		resp := get(t, url)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", url, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// período inválido en informes
	resp = get(t, srv.URL+"/reports/monthly/2023-05")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid period, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// listados vacíos son 200 con lista vacía
	var entries []json.RawMessage
	getJSON(t, srv.URL+"/visits", http.StatusOK, &entries)
	if len(entries) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(entries))
	}
}

// -------------------------
// Helpers HTTP
// -------------------------

func newRequest(t *testing.T, method, url, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func postJSON(t *testing.T, url, body string, wantStatus int, out any) {
	t.Helper()
	resp := do(t, newRequest(t, http.MethodPost, url, body))
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: expected %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("POST %s: decode response: %v", url, err)
	}
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp := get(t, url)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected %d, got %d", url, wantStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("GET %s: decode response: %v", url, err)
	}
}

func del(t *testing.T, url string, wantStatus int) {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp := do(t, req)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("DELETE %s: expected %d, got %d", url, wantStatus, resp.StatusCode)
	}
}
