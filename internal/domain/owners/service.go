package owners

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-management/internal/validate"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateDNI       = errors.New("dni already registered")
	ErrNotFound           = errors.New("owner not found")
	ErrNotFoundOrInactive = errors.New("owner not found or inactive")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	DNI            string
	Name           string
	Address        string
	Email          string
	PhonePrimary   string
	PhoneEmergency string
}

// Create da de alta un propietario activo. El DNI debe ser único
// contra todo el registro, incluidos los inactivos.
func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	dni := strings.TrimSpace(in.DNI)
	if !validate.DNI(dni) {
		return Owner{}, ErrInvalidInput
	}
	if !validate.Name(in.Name) {
		return Owner{}, ErrInvalidInput
	}
	if !validate.Email(strings.TrimSpace(in.Email)) {
		return Owner{}, ErrInvalidInput
	}
	if !validate.Phone(in.PhonePrimary) || !validate.Phone(in.PhoneEmergency) {
		return Owner{}, ErrInvalidInput
	}

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Owner{}, err
	}
	if _, exists := all[dni]; exists {
		return Owner{}, ErrDuplicateDNI
	}

	o := Owner{
		DNI:     dni,
		Active:  true,
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Email:   strings.TrimSpace(in.Email),
		Phones: Phones{
			Primary:   in.PhonePrimary,
			Emergency: in.PhoneEmergency,
		},
	}
	all[dni] = o

	if err := s.repo.SaveAll(ctx, all); err != nil {
		return Owner{}, err
	}
	return o, nil
}

type UpdateInput struct {
	// Campo vacío = mantener el valor actual. Nunca se interpreta
	// como "borrar".
	Name           string
	Address        string
	Email          string
	PhonePrimary   string
	PhoneEmergency string
}

// Update modifica campo a campo un propietario activo. Un campo
// provisto con formato inválido aborta la operación completa.
func (s *Service) Update(ctx context.Context, dni string, in UpdateInput) (Owner, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Owner{}, err
	}

	o, ok := all[dni]
	if !ok || !o.Active {
		return Owner{}, ErrNotFoundOrInactive
	}
	o.DNI = dni

	if name := strings.TrimSpace(in.Name); name != "" {
		if !validate.Name(name) {
			return Owner{}, ErrInvalidInput
		}
		o.Name = name
	}
	if addr := strings.TrimSpace(in.Address); addr != "" {
		o.Address = addr
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if !validate.Email(email) {
			return Owner{}, ErrInvalidInput
		}
		o.Email = email
	}
	if tel := strings.TrimSpace(in.PhonePrimary); tel != "" {
		if !validate.Phone(tel) {
			return Owner{}, ErrInvalidInput
		}
		o.Phones.Primary = tel
	}
	if tel := strings.TrimSpace(in.PhoneEmergency); tel != "" {
		if !validate.Phone(tel) {
			return Owner{}, ErrInvalidInput
		}
		o.Phones.Emergency = tel
	}

	all[dni] = o
	if err := s.repo.SaveAll(ctx, all); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// Deactivate marca el propietario como inactivo. No hay baja física
// ni camino de reactivación.
func (s *Service) Deactivate(ctx context.Context, dni string) error {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	o, ok := all[dni]
	if !ok || !o.Active {
		return ErrNotFoundOrInactive
	}

	o.Active = false
	all[dni] = o
	return s.repo.SaveAll(ctx, all)
}

// Get devuelve el propietario por DNI, activo o no.
func (s *Service) Get(ctx context.Context, dni string) (Owner, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Owner{}, err
	}
	o, ok := all[dni]
	if !ok {
		return Owner{}, ErrNotFound
	}
	o.DNI = dni
	return o, nil
}

// ListActive devuelve los propietarios activos ordenados por DNI.
func (s *Service) ListActive(ctx context.Context) ([]Owner, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Owner, 0)
	for dni, o := range all {
		if !o.Active {
			continue
		}
		o.DNI = dni
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DNI < out[j].DNI
	})
	return out, nil
}
