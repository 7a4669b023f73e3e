package pets

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"vet-management/internal/domain/owners"
)

// -------------------------
// Test repo y registro de propietarios
// -------------------------

type testRepo struct {
	byID  map[string]Pet
	saves int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) LoadAll(ctx context.Context) (map[string]Pet, error) {
	out := make(map[string]Pet, len(r.byID))
	for k, v := range r.byID {
		out[k] = v
	}
	return out, nil
}

func (r *testRepo) SaveAll(ctx context.Context, all map[string]Pet) error {
	r.saves++
	r.byID = all
	return nil
}

type testOwners struct {
	byDNI map[string]owners.Owner
}

func (o *testOwners) Get(ctx context.Context, dni string) (owners.Owner, error) {
	ow, ok := o.byDNI[dni]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	ow.DNI = dni
	return ow, nil
}

func activeOwners(dnis ...string) *testOwners {
	out := &testOwners{byDNI: map[string]owners.Owner{}}
	for _, dni := range dnis {
		out.byDNI[dni] = owners.Owner{Active: true, Name: "Dueño"}
	}
	return out
}

func validCreate() CreateInput {
	return CreateInput{
		Name:     "Max",
		Sex:      "Masculino",
		Species:  "Perro",
		Breed:    "Labrador",
		Age:      5,
		Weight:   decimal.RequireFromString("28.5"),
		OwnerDNI: "38111222",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RequiresActiveOwner(t *testing.T) {
	repo := newTestRepo()

	// propietario ausente
	svc := NewService(repo, activeOwners())
	if _, err := svc.Create(context.Background(), validCreate()); !errors.Is(err, ErrOwnerUnavailable) {
		t.Fatalf("expected ErrOwnerUnavailable for absent owner, got %v", err)
	}

	// propietario inactivo
	reg := activeOwners("38111222")
	reg.byDNI["38111222"] = owners.Owner{Active: false}
	svc = NewService(repo, reg)
	if _, err := svc.Create(context.Background(), validCreate()); !errors.Is(err, ErrOwnerUnavailable) {
		t.Fatalf("expected ErrOwnerUnavailable for inactive owner, got %v", err)
	}

	// propietario activo
	svc = NewService(repo, activeOwners("38111222"))
	p, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !p.Active || p.OwnerDNI != "38111222" {
		t.Fatalf("unexpected pet: %#v", p)
	}
	if p.History == nil || len(p.History) != 0 {
		t.Fatalf("expected empty initialized history, got %#v", p.History)
	}
}

func TestService_Create_GeneratedIDIs8Digits(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, activeOwners("38111222"))

	p, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(p.ID) != 8 {
		t.Fatalf("expected 8-digit id, got %q", p.ID)
	}
	for _, c := range p.ID {
		if c < '0' || c > '9' {
			t.Fatalf("expected numeric id, got %q", p.ID)
		}
	}
}

func TestService_Create_ResamplesOnCollision(t *testing.T) {
	repo := newTestRepo()
	repo.byID["10000001"] = Pet{Active: true, Name: "Max"}
	repo.byID["10000002"] = Pet{Active: false, Name: "Luna"} // inactiva también bloquea

	svc := NewService(repo, activeOwners("38111222"))

	// secuencia determinística: dos colisiones y recién después un id libre
	seq := []string{"10000001", "10000002", "10000003"}
	svc.newID = func() string {
		id := seq[0]
		if len(seq) > 1 {
			seq = seq[1:]
		}
		return id
	}

	p, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.ID != "10000003" {
		t.Fatalf("expected resampled id 10000003, got %s", p.ID)
	}
}

func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"nombre vacío", func(in *CreateInput) { in.Name = " " }},
		{"nombre con dígitos", func(in *CreateInput) { in.Name = "Max 2" }},
		{"sexo vacío", func(in *CreateInput) { in.Sex = "" }},
		{"especie con dígitos", func(in *CreateInput) { in.Species = "Perro1" }},
		{"raza con dígitos", func(in *CreateInput) { in.Breed = "Labrador 3" }},
		{"edad negativa", func(in *CreateInput) { in.Age = -1 }},
		{"peso negativo", func(in *CreateInput) { in.Weight = decimal.RequireFromString("-0.5") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(newTestRepo(), activeOwners("38111222"))

			in := validCreate()
			tc.mutate(&in)

			if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestService_Create_EmptyBreedIsAllowed(t *testing.T) {
	svc := NewService(newTestRepo(), activeOwners("38111222"))

	in := validCreate()
	in.Breed = ""

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("Create with empty breed should succeed, got %v", err)
	}
}

func TestService_Update_PartialAndNumericPointers(t *testing.T) {
	repo := newTestRepo()
	repo.byID["10000001"] = Pet{
		Active: true, Name: "Max", Sex: "Masculino", Species: "Perro",
		Breed: "Labrador", Age: 5, Weight: decimal.RequireFromString("28.5"),
		OwnerDNI: "38111222", History: []string{"2023.05.10 10.30.00"},
	}
	svc := NewService(repo, activeOwners("38111222"))

	age := 6
	p, err := svc.Update(context.Background(), "10000001", UpdateInput{Age: &age})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if p.Age != 6 {
		t.Fatalf("expected age 6, got %d", p.Age)
	}
	if p.Name != "Max" || !p.Weight.Equal(decimal.RequireFromString("28.5")) {
		t.Fatalf("expected untouched fields preserved, got %#v", p)
	}
	if len(p.History) != 1 {
		t.Fatalf("update must not touch history, got %#v", p.History)
	}

	// numérico inválido aborta la operación
	bad := -2
	if _, err := svc.Update(context.Background(), "10000001", UpdateInput{Age: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative age, got %v", err)
	}
}

func TestService_Update_NotFoundOrInactive(t *testing.T) {
	repo := newTestRepo()
	repo.byID["10000002"] = Pet{Active: false, Name: "Luna"}
	svc := NewService(repo, activeOwners())

	if _, err := svc.Update(context.Background(), "99999999", UpdateInput{Name: "Otro"}); !errors.Is(err, ErrNotFoundOrInactive) {
		t.Fatalf("expected ErrNotFoundOrInactive for absent pet, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "10000002", UpdateInput{Name: "Otro"}); !errors.Is(err, ErrNotFoundOrInactive) {
		t.Fatalf("expected ErrNotFoundOrInactive for inactive pet, got %v", err)
	}
}

func TestService_Deactivate_KeepsHistory(t *testing.T) {
	repo := newTestRepo()
	repo.byID["10000001"] = Pet{
		Active: true, Name: "Max",
		History: []string{"2023.05.10 10.30.00", "2023.06.15 11.00.00"},
	}
	svc := NewService(repo, activeOwners())

	if err := svc.Deactivate(context.Background(), "10000001"); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	p := repo.byID["10000001"]
	if p.Active {
		t.Fatalf("expected pet inactive")
	}
	if len(p.History) != 2 {
		t.Fatalf("deactivation must not prune history, got %#v", p.History)
	}

	if err := svc.Deactivate(context.Background(), "10000001"); !errors.Is(err, ErrNotFoundOrInactive) {
		t.Fatalf("expected ErrNotFoundOrInactive on repeat, got %v", err)
	}
}

func TestService_ListActive(t *testing.T) {
	repo := newTestRepo()
	repo.byID["10000002"] = Pet{Active: true, Name: "Luna"}
	repo.byID["10000001"] = Pet{Active: true, Name: "Max"}
	repo.byID["10000003"] = Pet{Active: false, Name: "Bella"}
	svc := NewService(repo, activeOwners())

	out, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 active pets, got %d", len(out))
	}
	if out[0].ID != "10000001" || out[1].ID != "10000002" {
		t.Fatalf("expected ID order, got %s, %s", out[0].ID, out[1].ID)
	}
}
