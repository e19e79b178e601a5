package clinics

import "time"

// Clinic es el tenant del sistema: toda mascota y todo agendamiento
// pertenecen a exactamente una clínica. Se crea al provisionar la
// cuenta (fuera de este servicio) y nunca se borra desde aquí.
type Clinic struct {
	ID      string
	Name    string
	Phone   string
	Address string

	CreatedAt time.Time
}

// Contact es la proyección pública de una clínica: lo único visible
// sin sesión (página pública de mascota, listado de perdidos).
type Contact struct {
	Name    string
	Phone   string
	Address string
}
