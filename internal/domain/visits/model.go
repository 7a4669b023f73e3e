package visits

import "github.com/shopspring/decimal"

// KeyLayout es el formato de la clave de atención: marca de tiempo a
// resolución de segundo cuyo orden lexicográfico coincide con el
// cronológico. Los primeros 7 caracteres llevan el período AAAA.MM y
// los primeros 4 el año.
const KeyLayout = "2006.01.02 15.04.05"

// Visit es una atención registrada. Inmutable: no hay modificación ni
// baja. La clave (timestamp) es la clave de la colección y no viaja
// dentro del registro.
type Visit struct {
	ID string `json:"-"`

	PetID string `json:"mascota"`

	// Copia desnormalizada del propietario de la mascota al momento
	// de la atención. No se vuelve a derivar.
	OwnerDNI string `json:"propietario"`

	Reason    string `json:"motivo"`
	Diagnosis string `json:"diagnostico"`
	Treatment string `json:"tratamiento"`

	VetCost decimal.Decimal `json:"costo_veterinario"`
	MedCost decimal.Decimal `json:"costo_medicamentos"`

	// Suma de los dos costos, calculada una sola vez al registrar.
	TotalCost decimal.Decimal `json:"costo"`
}
