package pets

import "github.com/shopspring/decimal"

// Pet representa una mascota registrada. El ID (8 dígitos, asignado al
// azar) es la clave de la colección y no viaja dentro del registro.
type Pet struct {
	ID string `json:"-"`

	Active  bool            `json:"activo"`
	Name    string          `json:"nombre"`
	Sex     string          `json:"sexo"`
	Species string          `json:"especie"`
	Breed   string          `json:"raza"`
	Age     int             `json:"edad"`
	Weight  decimal.Decimal `json:"peso"`

	// DNI del propietario. Se exige activo al crear la mascota; una
	// baja posterior del propietario no invalida la mascota.
	OwnerDNI string `json:"propietario"`

	// Claves de atención en orden de inserción. Solo se agrega al
	// final; nunca se reordena ni se poda.
	History []string `json:"historial"`
}
