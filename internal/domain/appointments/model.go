package appointments

import "time"

// Status del agendamiento.
// @Enum pending, confirmed, canceled
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// transitions define la máquina de estados. pending es el único estado
// inicial y no hay estado terminal: una cancelación por error se puede
// revertir (canceled => confirmed).
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCanceled},
	StatusCanceled:  {StatusConfirmed},
}

// CanTransition valida un cambio de estado. Quedarse en el mismo
// estado no cuenta como transición (el update parcial lo permite).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return true
	}
	return false
}

// Appointment representa una solicitud de cita. PetID es opcional:
// el visitante puede pedir cita para un animal todavía no registrado.
// Los campos PetName/OwnerName/OwnerPhone son un snapshot tomado al
// crear, independientes del Pet vinculado.
type Appointment struct {
	ID       string
	PetID    string // vacío = sin mascota vinculada
	ClinicID string

	DateTime time.Time

	PetName    string
	OwnerName  string
	OwnerPhone string

	Notes  string
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
