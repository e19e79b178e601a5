package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petsafe-api/internal/domain/clinics"
	"petsafe-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-Clinic-ID
		SeedClinics: []clinics.Clinic{
			{ID: "clinic-a", Name: "Clínica A", Phone: "111", Address: "Calle A 1"},
			{ID: "clinic-b", Name: "Clínica B", Phone: "222", Address: "Calle B 2"},
		},
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_TenantIsolation_PetReads(t *testing.T) {
	ts := newTestServer(t)

	// 1) Clínica A registra a Rex
	petID := createPet(t, ts.URL, "clinic-a", map[string]any{
		"name":        "Rex",
		"species":     "dog",
		"breed":       "mixed",
		"gender":      "male",
		"age":         "3",
		"color":       "brown",
		"owner_name":  "Ana",
		"owner_phone": "555-1234",
	})

	// 2) Clínica B por la ruta autenticada => 404, nunca 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, "clinic-b", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 cross-tenant read, got %d", st)
		}
	}

	// 3) La misma mascota por la ruta pública (sin sesión) => 200
	{
		st, body := doReq(t, ts.URL, "GET", "/p/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 public read, got %d body=%s", st, string(body))
		}
		var resp struct {
			Pet struct {
				Name string `json:"name"`
			} `json:"pet"`
			Clinic struct {
				Name string `json:"name"`
			} `json:"clinic"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Pet.Name != "Rex" || resp.Clinic.Name != "Clínica A" {
			t.Fatalf("unexpected public profile: %s", string(body))
		}
	}

	// 4) Sin sesión, la ruta autenticada exige auth
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
	}

	// 5) El listado de B no filtra mascotas de A
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", "clinic-b", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty list for clinic-b, got %d items", len(items))
		}
	}
}

func TestHTTP_DocumentAccess_ForbiddenVsNotFound(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, "clinic-a", map[string]any{
		"name":        "Rex",
		"species":     "dog",
		"owner_name":  "Ana",
		"owner_phone": "555-1234",
	})

	// A sube un documento
	var docID string
	{
		st, body := doReq(t, ts.URL, "POST", "/documents", "clinic-a", map[string]any{
			"pet_id":    petID,
			"name":      "vacunas.pdf",
			"file_path": "/uploads/vacunas.pdf",
			"file_type": "application/pdf",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create document, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		docID = resp.ID
	}

	// B intenta borrar por id => 403 (la existencia ya quedó probada)
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/documents/"+docID, "clinic-b", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 cross-tenant document delete, got %d", st)
		}
	}

	// B intenta crear un documento para la mascota de A => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/documents", "clinic-b", map[string]any{
			"pet_id":    petID,
			"name":      "x.pdf",
			"file_path": "/uploads/x.pdf",
			"file_type": "application/pdf",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 creating document for foreign pet, got %d", st)
		}
	}

	// A borra la mascota: los documentos se purgan en cascada
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, "clinic-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete pet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/documents?pet_id="+petID, "clinic-a", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 listing documents of deleted pet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/documents/"+docID, "clinic-a", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for purged document, got %d", st)
		}
	}
}

func TestHTTP_Appointments_PublicAndAuthenticatedCreation(t *testing.T) {
	ts := newTestServer(t)

	// Público sin clinic_id => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments?public=true", "", map[string]any{
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Rex",
			"owner_name":  "Ana",
			"owner_phone": "555-1234",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 public without clinic_id, got %d", st)
		}
	}

	// Público con clínica inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments?public=true", "", map[string]any{
			"clinic_id":   "clinic-zzz",
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Rex",
			"owner_name":  "Ana",
			"owner_phone": "555-1234",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 public with unknown clinic, got %d", st)
		}
	}

	// Público válido => 201 pending
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments?public=true", "", map[string]any{
			"clinic_id":   "clinic-a",
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Rex",
			"owner_name":  "Ana",
			"owner_phone": "555-1234",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 public creation, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status   string `json:"status"`
			ClinicID string `json:"clinic_id"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Status != "pending" || resp.ClinicID != "clinic-a" {
			t.Fatalf("unexpected public appointment: %s", string(body))
		}
	}

	// Autenticado: el clinic_id del body se ignora, manda la sesión
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", "clinic-b", map[string]any{
			"clinic_id":   "clinic-a", // debe ser ignorado
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Milo",
			"owner_name":  "Bea",
			"owner_phone": "555-5678",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 authenticated creation, got %d body=%s", st, string(body))
		}
		var resp struct {
			ClinicID string `json:"clinic_id"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.ClinicID != "clinic-b" {
			t.Fatalf("expected session tenant to win, got %s", resp.ClinicID)
		}
	}
}

func TestHTTP_Appointments_StatusLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var apptID string
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments", "clinic-a", map[string]any{
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Rex",
			"owner_name":  "Ana",
			"owner_phone": "555-1234",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		apptID = resp.ID
	}

	// pending -> confirmed
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID, "clinic-a", map[string]any{"status": "confirmed"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm, got %d", st)
		}
	}

	// confirmed -> pending: rechazado
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID, "clinic-a", map[string]any{"status": "pending"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid transition, got %d", st)
		}
	}

	// confirmed -> canceled -> confirmed (reactivación)
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID, "clinic-a", map[string]any{"status": "canceled"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PUT", "/appointments/"+apptID, "clinic-a", map[string]any{"status": "confirmed"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 reactivation, got %d", st)
		}
	}

	// otra clínica no toca el agendamiento
	{
		st, _ := doReq(t, ts.URL, "PUT", "/appointments/"+apptID, "clinic-b", map[string]any{"status": "canceled"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 cross-tenant transition, got %d", st)
		}
	}
}

func TestHTTP_LostPets_PublicCrossTenant(t *testing.T) {
	ts := newTestServer(t)

	petA := createPet(t, ts.URL, "clinic-a", map[string]any{
		"name": "Rex", "species": "dog", "owner_name": "Ana", "owner_phone": "555-1234",
	})
	petB := createPet(t, ts.URL, "clinic-b", map[string]any{
		"name": "Milo", "species": "cat", "owner_name": "Bea", "owner_phone": "555-5678",
	})

	for clinic, pet := range map[string]string{"clinic-a": petA, "clinic-b": petB} {
		st, _ := doReq(t, ts.URL, "PUT", "/pets/lost", clinic, map[string]any{
			"pet_id": pet, "lost_status": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark lost, got %d", st)
		}
	}

	// Listado público: cruza tenants y trae contacto de la clínica
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/lost?public=true", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 public lost list, got %d", st)
		}
		var items []struct {
			Pet struct {
				Name string `json:"name"`
			} `json:"pet"`
			Clinic struct {
				Phone string `json:"phone"`
			} `json:"clinic"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 lost pets across tenants, got %d", len(items))
		}
		for _, it := range items {
			if it.Clinic.Phone == "" {
				t.Fatalf("expected clinic contact in public lost list: %s", string(body))
			}
		}
	}

	// Listado autenticado: solo el propio tenant
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/lost", "clinic-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 clinic lost list, got %d", st)
		}
		var items []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Rex" {
			t.Fatalf("expected only clinic-a lost pets, got %s", string(body))
		}
	}
}

func TestHTTP_ReportsAndDashboard(t *testing.T) {
	ts := newTestServer(t)

	createPet(t, ts.URL, "clinic-a", map[string]any{
		"name": "Rex", "species": "dog", "owner_name": "Ana", "owner_phone": "555-1234",
	})
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments", "clinic-a", map[string]any{
			"date_time":   time.Now().UTC().Format(time.RFC3339),
			"pet_name":    "Rex",
			"owner_name":  "Ana",
			"owner_phone": "555-1234",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d", st)
		}
	}

	// Export de mascotas con claves y token localizados
	{
		st, body := doReq(t, ts.URL, "GET", "/reports/export?type=pets", "clinic-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pets export, got %d", st)
		}
		var rows []map[string]any
		if err := json.Unmarshal(body, &rows); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(rows) != 1 || rows[0]["nome"] != "Rex" || rows[0]["status_perdido"] != "Não" {
			t.Fatalf("unexpected pets export: %s", string(body))
		}
	}

	// Tipo no soportado => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/reports/export?type=bogus", "clinic-a", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unsupported export type, got %d", st)
		}
	}

	// Export exige sesión
	{
		st, _ := doReq(t, ts.URL, "GET", "/reports/export?type=pets", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", st)
		}
	}

	// Dashboard scopeado al tenant
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard/stats", "clinic-a", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d", st)
		}
		var resp struct {
			TotalPets           int `json:"total_pets"`
			TotalAppointments   int `json:"total_appointments"`
			PendingAppointments int `json:"pending_appointments"`
			LostPets            int `json:"lost_pets"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.TotalPets != 1 || resp.TotalAppointments != 1 || resp.PendingAppointments != 1 || resp.LostPets != 0 {
			t.Fatalf("unexpected stats: %s", string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/dashboard/stats", "clinic-b", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats for clinic-b, got %d", st)
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.TotalPets != 0 || resp.TotalAppointments != 0 {
			t.Fatalf("expected empty stats for clinic-b, got %s", string(body))
		}
	}
}

func TestHTTP_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	st, _ := doReq(t, ts.URL, "PATCH", "/reports/export", "clinic-a", nil)
	if st != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", st)
	}
}

func TestHTTP_PublicClinicContact(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/clinics/clinic-a", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 clinic contact, got %d", st)
	}
	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["name"] != "Clínica A" || resp["phone"] != "111" {
		t.Fatalf("unexpected contact: %s", string(body))
	}
	if _, leaked := resp["id"]; leaked {
		t.Fatalf("contact must not expose internal fields: %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/clinics/clinic-zzz", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown clinic, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func doReq(t *testing.T, base, method, path, clinicID string, payload map[string]any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, base+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clinicID != "" {
		req.Header.Set("X-Debug-Clinic-ID", clinicID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

func createPet(t *testing.T, base, clinicID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, base, "POST", "/pets", clinicID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal pet: %v", err)
	}
	return resp.ID
}
