package documents

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Document
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Document{}}
}

func (r *testRepo) Create(ctx context.Context, d Document) error {
	if d.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Document, error) {
	d, ok := r.byID[id]
	if !ok {
		return Document{}, errRepoNotFound
	}
	return d, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Document, error) {
	out := make([]Document, 0)
	for _, d := range r.byID {
		if d.PetID == petID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	for id, d := range r.byID {
		if d.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

// -------------------------
// Fake pets
// -------------------------

type fakePets struct {
	// petID -> clinicID dueño
	owners map[string]string
}

func (f *fakePets) ExistsInClinic(ctx context.Context, petID, clinicID string) (bool, error) {
	return f.owners[petID] == clinicID, nil
}

func (f *fakePets) ClinicOf(ctx context.Context, petID string) (string, error) {
	owner, ok := f.owners[petID]
	if !ok {
		return "", errors.New("pet not found")
	}
	return owner, nil
}

func newTestService(repo *testRepo, pets *fakePets) *Service {
	if pets == nil {
		pets = &fakePets{owners: map[string]string{"pet-a": "clinic-a", "pet-b": "clinic-b"}}
	}
	return NewService(repo, pets)
}

func validInput() CreateInput {
	return CreateInput{
		PetID:    "pet-a",
		Name:     "vacunas.pdf",
		FilePath: "/uploads/vacunas.pdf",
		FileType: "application/pdf",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RequiresFields(t *testing.T) {
	svc := newTestService(newTestRepo(), nil)

	cases := []CreateInput{
		func() CreateInput { in := validInput(); in.PetID = ""; return in }(),
		func() CreateInput { in := validInput(); in.Name = ""; return in }(),
		func() CreateInput { in := validInput(); in.FilePath = ""; return in }(),
		func() CreateInput { in := validInput(); in.FileType = " "; return in }(),
	}

	for i, in := range cases {
		if _, err := svc.Create(context.Background(), "clinic-a", in); err != ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_Create_PetOfOtherClinicIsNotFound(t *testing.T) {
	// En creación el caller no tiene un id de documento: NotFound
	// uniforme, sin confirmar existencia ajena.
	svc := newTestService(newTestRepo(), nil)

	in := validInput()
	in.PetID = "pet-b"

	if _, err := svc.Create(context.Background(), "clinic-a", in); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_GetByID_OtherTenantIsForbidden(t *testing.T) {
	// Con un id de documento en la mano la existencia ya está
	// confirmada: acá sí corresponde Forbidden.
	repo := newTestRepo()
	svc := newTestService(repo, nil)

	d, err := svc.Create(context.Background(), "clinic-a", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), "clinic-b", d.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_GetByID_MissingIsNotFound(t *testing.T) {
	svc := newTestService(newTestRepo(), nil)

	if _, err := svc.GetByID(context.Background(), "clinic-a", "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_OtherTenantIsForbidden(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, nil)

	d, err := svc.Create(context.Background(), "clinic-a", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), "clinic-b", d.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// el dueño sí puede
	if err := svc.Delete(context.Background(), "clinic-a", d.ID); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
}

func TestService_ListByPet_AfterPetDeleted_IsNotFound(t *testing.T) {
	repo := newTestRepo()
	pets := &fakePets{owners: map[string]string{"pet-a": "clinic-a"}}
	svc := newTestService(repo, pets)

	if _, err := svc.Create(context.Background(), "clinic-a", validInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// cascade: la mascota se borra y purga sus documentos
	delete(pets.owners, "pet-a")
	if err := svc.PurgeByPet(context.Background(), "pet-a"); err != nil {
		t.Fatalf("PurgeByPet error: %v", err)
	}

	if _, err := svc.ListByPet(context.Background(), "clinic-a", "pet-a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound listing documents of deleted pet, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no orphan documents, got %d", len(repo.byID))
	}
}
