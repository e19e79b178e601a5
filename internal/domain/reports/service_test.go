package reports

import (
	"context"
	"testing"
	"time"

	mem "petsafe-api/internal/adapters/storage/memory"
	"petsafe-api/internal/domain/appointments"
	"petsafe-api/internal/domain/clinics"
	"petsafe-api/internal/domain/pets"
)

type fakeClinicDir struct{}

func (fakeClinicDir) Contact(ctx context.Context, clinicID string) (clinics.Contact, error) {
	return clinics.Contact{Name: "Clínica"}, nil
}

func (fakeClinicDir) Exists(ctx context.Context, clinicID string) (bool, error) {
	return true, nil
}

func newTestServices() (*pets.Service, *appointments.Service, *Service) {
	petsSvc := pets.NewService(mem.NewPetsRepo(), fakeClinicDir{})
	apptsSvc := appointments.NewService(mem.NewAppointmentsRepo(), fakeClinicDir{}, petsSvc)
	return petsSvc, apptsSvc, NewService(petsSvc, apptsSvc)
}

func TestService_ExportPets_TokensAndOrdering(t *testing.T) {
	petsSvc, _, svc := newTestServices()
	ctx := context.Background()

	base := pets.CreateInput{
		Species:    "dog",
		Breed:      "mixed",
		Gender:     "male",
		Age:        "2",
		Color:      "black",
		OwnerName:  "Ana",
		OwnerPhone: "555-1234",
	}

	inZ := base
	inZ.Name = "Zeus"
	z, err := petsSvc.Create(ctx, "clinic-a", inZ)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	inB := base
	inB.Name = "Bolt"
	if _, err := petsSvc.Create(ctx, "clinic-a", inB); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// mascota de otro tenant: jamás aparece en el export
	inO := base
	inO.Name = "Ajena"
	if _, err := petsSvc.Create(ctx, "clinic-b", inO); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := petsSvc.SetLostStatus(ctx, "clinic-a", z.ID, true); err != nil {
		t.Fatalf("SetLostStatus error: %v", err)
	}

	rows, err := svc.ExportPets(ctx, "clinic-a")
	if err != nil {
		t.Fatalf("ExportPets error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (tenant scoped), got %d", len(rows))
	}
	// orden por nombre ascendente
	if rows[0].Nome != "Bolt" || rows[1].Nome != "Zeus" {
		t.Fatalf("expected name-ascending order, got %s / %s", rows[0].Nome, rows[1].Nome)
	}
	if rows[0].StatusPerdido != "Não" || rows[1].StatusPerdido != "Sim" {
		t.Fatalf("expected localized lost tokens, got %q / %q", rows[0].StatusPerdido, rows[1].StatusPerdido)
	}
	// fecha truncada a día calendario
	if want := z.CreatedAt.UTC().Format("2006-01-02"); rows[1].DataCadastro != want {
		t.Fatalf("expected %s, got %s", want, rows[1].DataCadastro)
	}
}

func TestService_ExportAppointments_Shape(t *testing.T) {
	_, apptsSvc, svc := newTestServices()
	ctx := context.Background()

	early := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

	if _, err := apptsSvc.Create(ctx, appointments.ByClinic("clinic-a"), appointments.CreateInput{
		DateTime:   early,
		PetName:    "Rex",
		OwnerName:  "Ana",
		OwnerPhone: "555-1234",
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := apptsSvc.Create(ctx, appointments.ByClinic("clinic-a"), appointments.CreateInput{
		DateTime:   late,
		PetName:    "Milo",
		OwnerName:  "Bea",
		OwnerPhone: "555-5678",
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	rows, err := svc.ExportAppointments(ctx, "clinic-a")
	if err != nil {
		t.Fatalf("ExportAppointments error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// dateTime descendente
	if rows[0].NomePet != "Milo" || rows[1].NomePet != "Rex" {
		t.Fatalf("expected datetime-descending order, got %s / %s", rows[0].NomePet, rows[1].NomePet)
	}
	if rows[0].DataHora != late.Format(time.RFC3339) {
		t.Fatalf("expected RFC3339 timestamp, got %s", rows[0].DataHora)
	}
	if rows[0].Status != "pending" {
		t.Fatalf("expected status token, got %s", rows[0].Status)
	}
	// notes ausente => string vacío, no null
	if rows[0].Observacoes != "" {
		t.Fatalf("expected empty observacoes, got %q", rows[0].Observacoes)
	}
}
