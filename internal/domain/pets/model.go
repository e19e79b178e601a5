package pets

import (
	"time"

	"petsafe-api/internal/domain/clinics"
)

// Pet representa un animal registrado por una clínica.
// ClinicID es inmutable después de la creación: la mascota pertenece
// siempre a exactamente una clínica.
type Pet struct {
	ID       string
	ClinicID string

	Name    string
	Species string
	Breed   string
	Gender  string
	Age     string
	Color   string

	OwnerName  string
	OwnerPhone string

	Photo        string
	Observations string

	// LostStatus es el único campo mutable fuera del update completo
	// (ver SetLostStatus).
	LostStatus bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicProfile es lo que ve un visitante que escanea el QR:
// la mascota más el contacto público de su clínica.
type PublicProfile struct {
	Pet    Pet
	Clinic clinics.Contact
}

// LostPet es una fila del listado público de animales perdidos.
// Es la única lectura pública cross-tenant del sistema.
type LostPet struct {
	Pet    Pet
	Clinic clinics.Contact
}
