package reports

import (
	"github.com/shopspring/decimal"

	"vet-management/internal/domain/pets"
	"vet-management/internal/domain/visits"
)

// Entry es una atención enriquecida para listados: los nombres de
// mascota y propietario se resuelven al momento de render, nunca se
// guardan en el registro.
type Entry struct {
	Key       string
	PetID     string
	PetName   string
	OwnerDNI  string
	OwnerName string
	Reason    string
	VetCost   decimal.Decimal
	MedCost   decimal.Decimal
	TotalCost decimal.Decimal
}

// CountRow es la fila de la matriz anual de cantidades para una
// mascota: un contador por mes calendario, siempre los 12 presentes.
type CountRow struct {
	PetID   string
	PetName string
	Months  [12]int
}

// TotalRow es la fila de la matriz anual de montos ($ por mes).
type TotalRow struct {
	PetID   string
	PetName string
	Months  [12]decimal.Decimal
}

// History es el historial clínico completo de una mascota: sus datos
// identificatorios más las atenciones referenciadas, en orden de alta.
type History struct {
	Pet    pets.Pet
	Visits []visits.Visit
}
