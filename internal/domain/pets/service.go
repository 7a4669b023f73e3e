package pets

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"vet-management/internal/domain/owners"
	"vet-management/internal/validate"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("pet not found")
	ErrNotFoundOrInactive = errors.New("pet not found or inactive")
	ErrOwnerUnavailable   = errors.New("owner not found or inactive")
)

// OwnerRegistry es la vista mínima del registro de propietarios que
// necesita este módulo (evita acoplar el service completo).
type OwnerRegistry interface {
	Get(ctx context.Context, dni string) (owners.Owner, error)
}

type Service struct {
	repo   Repository
	owners OwnerRegistry
	newID  func() string
}

func NewService(repo Repository, owners OwnerRegistry) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		newID:  randomID,
	}
}

// randomID sortea un ID de 8 dígitos en [10000000, 99999999].
func randomID() string {
	return strconv.Itoa(rand.Intn(90000000) + 10000000)
}

type CreateInput struct {
	Name     string
	Sex      string
	Species  string
	Breed    string
	Age      int
	Weight   decimal.Decimal
	OwnerDNI string
}

// Create da de alta una mascota activa asociada a un propietario
// activo. El ID se sortea y se re-sortea hasta no colisionar con
// ninguna clave existente, activa o no.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	o, err := s.owners.Get(ctx, strings.TrimSpace(in.OwnerDNI))
	if err != nil {
		if errors.Is(err, owners.ErrNotFound) {
			return Pet{}, ErrOwnerUnavailable
		}
		return Pet{}, err
	}
	if !o.Active {
		return Pet{}, ErrOwnerUnavailable
	}

	if !validate.Name(in.Name) || !validate.Name(in.Sex) || !validate.Name(in.Species) {
		return Pet{}, ErrInvalidInput
	}
	if breed := strings.TrimSpace(in.Breed); breed != "" && validate.ContainsDigits(breed) {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 || in.Weight.IsNegative() {
		return Pet{}, ErrInvalidInput
	}

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Pet{}, err
	}

	id := s.newID()
	for {
		if _, taken := all[id]; !taken {
			break
		}
		id = s.newID()
	}

	p := Pet{
		ID:       id,
		Active:   true,
		Name:     strings.TrimSpace(in.Name),
		Sex:      strings.TrimSpace(in.Sex),
		Species:  strings.TrimSpace(in.Species),
		Breed:    strings.TrimSpace(in.Breed),
		Age:      in.Age,
		Weight:   in.Weight,
		OwnerDNI: o.DNI,
		History:  []string{},
	}
	all[id] = p

	if err := s.repo.SaveAll(ctx, all); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Campo vacío / nil = mantener el valor actual.
	Name    string
	Sex     string
	Species string
	Breed   string
	Age     *int
	Weight  *decimal.Decimal
}

// Update modifica campo a campo una mascota activa. El propietario y
// el historial no se tocan por esta vía.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Pet{}, err
	}

	p, ok := all[id]
	if !ok || !p.Active {
		return Pet{}, ErrNotFoundOrInactive
	}
	p.ID = id

	if name := strings.TrimSpace(in.Name); name != "" {
		if !validate.Name(name) {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if sex := strings.TrimSpace(in.Sex); sex != "" {
		if !validate.Name(sex) {
			return Pet{}, ErrInvalidInput
		}
		p.Sex = sex
	}
	if species := strings.TrimSpace(in.Species); species != "" {
		if !validate.Name(species) {
			return Pet{}, ErrInvalidInput
		}
		p.Species = species
	}
	if breed := strings.TrimSpace(in.Breed); breed != "" {
		if validate.ContainsDigits(breed) {
			return Pet{}, ErrInvalidInput
		}
		p.Breed = breed
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Weight != nil {
		if in.Weight.IsNegative() {
			return Pet{}, ErrInvalidInput
		}
		p.Weight = *in.Weight
	}

	all[id] = p
	if err := s.repo.SaveAll(ctx, all); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Deactivate marca la mascota como inactiva. El historial queda tal cual.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	p, ok := all[id]
	if !ok || !p.Active {
		return ErrNotFoundOrInactive
	}

	p.Active = false
	all[id] = p
	return s.repo.SaveAll(ctx, all)
}

// Get devuelve la mascota por ID, activa o no.
func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Pet{}, err
	}
	p, ok := all[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

// ListActive devuelve las mascotas activas ordenadas por ID.
func (s *Service) ListActive(ctx context.Context) ([]Pet, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Pet, 0)
	for id, p := range all {
		if !p.Active {
			continue
		}
		p.ID = id
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
