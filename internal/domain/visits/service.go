package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vet-management/internal/domain/pets"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrPetUnavailable = errors.New("pet not found or inactive")
)

type Service struct {
	repo Repository
	pets pets.Repository
	now  func() time.Time
}

func NewService(repo Repository, petsRepo pets.Repository) *Service {
	return &Service{
		repo: repo,
		pets: petsRepo,
		now:  time.Now,
	}
}

type RecordInput struct {
	PetID     string
	Reason    string
	Diagnosis string
	Treatment string
	VetCost   decimal.Decimal
	MedCost   decimal.Decimal
}

// Record da de alta una atención para una mascota activa y agrega su
// clave al historial de la mascota en el mismo commit. No existe
// modificación ni baja de atenciones.
func (s *Service) Record(ctx context.Context, in RecordInput) (Visit, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return Visit{}, ErrInvalidInput
	}
	if in.VetCost.IsNegative() || in.MedCost.IsNegative() {
		return Visit{}, ErrInvalidInput
	}

	allPets, err := s.pets.LoadAll(ctx)
	if err != nil {
		return Visit{}, err
	}
	p, ok := allPets[strings.TrimSpace(in.PetID)]
	if !ok || !p.Active {
		return Visit{}, ErrPetUnavailable
	}
	p.ID = strings.TrimSpace(in.PetID)

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Visit{}, err
	}

	key := s.nextKey(all)
	v := Visit{
		ID:        key,
		PetID:     p.ID,
		OwnerDNI:  p.OwnerDNI,
		Reason:    strings.TrimSpace(in.Reason),
		Diagnosis: strings.TrimSpace(in.Diagnosis),
		Treatment: strings.TrimSpace(in.Treatment),
		VetCost:   in.VetCost,
		MedCost:   in.MedCost,
		TotalCost: in.VetCost.Add(in.MedCost),
	}

	all[key] = v
	p.History = append(p.History, key)
	allPets[p.ID] = p

	if err := s.repo.SaveWithPets(ctx, all, allPets); err != nil {
		return Visit{}, err
	}
	return v, nil
}

// nextKey arma la clave desde el reloj. Si dos altas caen en el mismo
// segundo, la segunda recibe un sufijo numérico que conserva el orden
// lexicográfico (".01" ordena antes que el segundo siguiente) y deja
// intactos los prefijos AAAA.MM / AAAA que usan los informes.
func (s *Service) nextKey(existing map[string]Visit) string {
	base := s.now().Format(KeyLayout)
	key := base
	for n := 1; ; n++ {
		if _, taken := existing[key]; !taken {
			return key
		}
		key = fmt.Sprintf("%s.%02d", base, n)
	}
}
