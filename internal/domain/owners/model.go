package owners

// Phones agrupa los teléfonos de contacto de un propietario.
type Phones struct {
	Primary   string `json:"principal"`
	Emergency string `json:"emergencia"`
}

// Owner representa un propietario registrado, identificado por su DNI.
// El DNI es la clave de la colección y no viaja dentro del registro.
type Owner struct {
	DNI string `json:"-"`

	Active  bool   `json:"activo"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Email   string `json:"email"`
	Phones  Phones `json:"telefonos"`
}
