// Package reports es el motor de informes: agregaciones de solo
// lectura sobre las tres colecciones. Ninguna operación muta estado y
// un resultado vacío es un resultado válido, no un error.
package reports

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"vet-management/internal/domain/owners"
	"vet-management/internal/domain/pets"
	"vet-management/internal/domain/visits"
	"vet-management/internal/validate"
)

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrPetNotFound   = errors.New("pet not found")
)

// Las vistas de solo lectura que necesita el motor. Los repos
// concretos de cada colección las satisfacen.
type (
	VisitSource interface {
		LoadAll(ctx context.Context) (map[string]visits.Visit, error)
	}
	PetSource interface {
		LoadAll(ctx context.Context) (map[string]pets.Pet, error)
	}
	OwnerSource interface {
		LoadAll(ctx context.Context) (map[string]owners.Owner, error)
	}
)

type Service struct {
	visits VisitSource
	pets   PetSource
	owners OwnerSource
}

func NewService(visits VisitSource, pets PetSource, owners OwnerSource) *Service {
	return &Service{visits: visits, pets: pets, owners: owners}
}

// Monthly lista las atenciones de un período AAAA.MM, ordenadas por
// clave (lexicográfico = cronológico).
func (s *Service) Monthly(ctx context.Context, yearMonth string) ([]Entry, error) {
	if !validate.YearMonth(yearMonth) {
		return nil, ErrInvalidPeriod
	}
	return s.listing(ctx, func(key string) bool {
		return len(key) >= 7 && key[:7] == yearMonth
	})
}

// All lista todas las atenciones registradas, ordenadas por clave.
func (s *Service) All(ctx context.Context) ([]Entry, error) {
	return s.listing(ctx, func(string) bool { return true })
}

func (s *Service) listing(ctx context.Context, match func(key string) bool) ([]Entry, error) {
	allVisits, err := s.visits.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	allPets, err := s.pets.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	allOwners, err := s.owners.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0)
	for key, v := range allVisits {
		if !match(key) {
			continue
		}
		out = append(out, Entry{
			Key:       key,
			PetID:     v.PetID,
			PetName:   allPets[v.PetID].Name,
			OwnerDNI:  v.OwnerDNI,
			OwnerName: allOwners[v.OwnerDNI].Name,
			Reason:    v.Reason,
			VetCost:   v.VetCost,
			MedCost:   v.MedCost,
			TotalCost: v.TotalCost,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// AnnualCounts arma la matriz mascota × mes con la cantidad de
// atenciones del año pedido. Cubre todas las mascotas del registro,
// activas o no; los meses sin actividad quedan en cero. Las filas se
// indexan por ID de mascota y el nombre se resuelve solo para mostrar,
// así dos mascotas con el mismo nombre nunca se funden en una fila.
func (s *Service) AnnualCounts(ctx context.Context, year string) ([]CountRow, error) {
	if !validate.Year(year) {
		return nil, ErrInvalidPeriod
	}

	allPets, allVisits, err := s.loadForMatrix(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*CountRow, len(allPets))
	for id, p := range allPets {
		rows[id] = &CountRow{PetID: id, PetName: p.Name}
	}

	for key, v := range allVisits {
		m, ok := monthOf(key, year)
		if !ok {
			continue
		}
		row, ok := rows[v.PetID]
		if !ok {
			// atención de una mascota que ya no está en el registro
			continue
		}
		row.Months[m-1]++
	}

	return sortedRows(rows, func(r *CountRow) (string, string) { return r.PetName, r.PetID }), nil
}

// AnnualTotals arma la misma matriz pero acumulando el costo total de
// cada atención en lugar de contarlas.
func (s *Service) AnnualTotals(ctx context.Context, year string) ([]TotalRow, error) {
	if !validate.Year(year) {
		return nil, ErrInvalidPeriod
	}

	allPets, allVisits, err := s.loadForMatrix(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*TotalRow, len(allPets))
	for id, p := range allPets {
		rows[id] = &TotalRow{PetID: id, PetName: p.Name}
	}

	for key, v := range allVisits {
		m, ok := monthOf(key, year)
		if !ok {
			continue
		}
		row, ok := rows[v.PetID]
		if !ok {
			continue
		}
		row.Months[m-1] = row.Months[m-1].Add(v.TotalCost)
	}

	return sortedRows(rows, func(r *TotalRow) (string, string) { return r.PetName, r.PetID }), nil
}

// History devuelve la mascota (activa o no) y cada atención de su
// historial en orden de alta. Una entrada del historial cuya atención
// ya no existe se saltea, no es un error.
func (s *Service) History(ctx context.Context, petID string) (History, error) {
	allPets, err := s.pets.LoadAll(ctx)
	if err != nil {
		return History{}, err
	}
	p, ok := allPets[petID]
	if !ok {
		return History{}, ErrPetNotFound
	}
	p.ID = petID

	allVisits, err := s.visits.LoadAll(ctx)
	if err != nil {
		return History{}, err
	}

	h := History{Pet: p, Visits: make([]visits.Visit, 0, len(p.History))}
	for _, key := range p.History {
		v, ok := allVisits[key]
		if !ok {
			continue
		}
		v.ID = key
		h.Visits = append(h.Visits, v)
	}
	return h, nil
}

func (s *Service) loadForMatrix(ctx context.Context) (map[string]pets.Pet, map[string]visits.Visit, error) {
	allPets, err := s.pets.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	allVisits, err := s.visits.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return allPets, allVisits, nil
}

// monthOf extrae el mes calendario de una clave de atención si
// pertenece al año pedido: el año son los caracteres 0-3 y el mes los
// 5-6, por el formato fijo AAAA.MM.DD HH.MM.SS.
func monthOf(key, year string) (int, bool) {
	if len(key) < 7 || key[:4] != year {
		return 0, false
	}
	m, err := strconv.Atoi(key[5:7])
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

func sortedRows[R any](rows map[string]*R, sortKey func(*R) (string, string)) []R {
	out := make([]R, 0, len(rows))
	ptrs := make([]*R, 0, len(rows))
	for _, r := range rows {
		ptrs = append(ptrs, r)
	}
	sort.Slice(ptrs, func(i, j int) bool {
		ni, ii := sortKey(ptrs[i])
		nj, ij := sortKey(ptrs[j])
		if ni != nj {
			return ni < nj
		}
		return ii < ij
	})
	for _, r := range ptrs {
		out = append(out, *r)
	}
	return out
}
