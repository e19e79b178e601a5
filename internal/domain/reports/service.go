package reports

import (
	"context"
	"errors"
	"sort"
	"time"

	"petsafe-api/internal/domain/appointments"
	"petsafe-api/internal/domain/pets"
)

var (
	ErrUnsupportedType = errors.New("unsupported report type")
)

// Service es un proyector de solo lectura: transforma lecturas ya
// autorizadas de pets y appointments en filas planas para exportar.
// No tiene estado propio.
type Service struct {
	pets         *pets.Service
	appointments *appointments.Service
}

func NewService(petsSvc *pets.Service, apptsSvc *appointments.Service) *Service {
	return &Service{
		pets:         petsSvc,
		appointments: apptsSvc,
	}
}

// PetRow usa las claves del CSV histórico (en portugués); el token
// de perdido también es el localizado ("Sim"/"Não").
type PetRow struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Especie       string `json:"especie"`
	Raca          string `json:"raca"`
	Sexo          string `json:"sexo"`
	Idade         string `json:"idade"`
	Cor           string `json:"cor"`
	NomeTutor     string `json:"nome_tutor"`
	TelefoneTutor string `json:"telefone_tutor"`
	StatusPerdido string `json:"status_perdido"`
	DataCadastro  string `json:"data_cadastro"` // YYYY-MM-DD
}

type AppointmentRow struct {
	ID            string `json:"id"`
	DataHora      string `json:"data_hora"` // RFC3339
	NomePet       string `json:"nome_pet"`
	NomeTutor     string `json:"nome_tutor"`
	TelefoneTutor string `json:"telefone_tutor"`
	Status        string `json:"status"`
	Observacoes   string `json:"observacoes"` // "" si no hay
}

// ExportPets devuelve todas las mascotas del tenant ordenadas por
// nombre, con la fecha de alta truncada a día calendario.
func (s *Service) ExportPets(ctx context.Context, clinicID string) ([]PetRow, error) {
	items, err := s.pets.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	out := make([]PetRow, 0, len(items))
	for _, p := range items {
		out = append(out, PetRow{
			ID:            p.ID,
			Nome:          p.Name,
			Especie:       p.Species,
			Raca:          p.Breed,
			Sexo:          p.Gender,
			Idade:         p.Age,
			Cor:           p.Color,
			NomeTutor:     p.OwnerName,
			TelefoneTutor: p.OwnerPhone,
			StatusPerdido: lostToken(p.LostStatus),
			DataCadastro:  p.CreatedAt.UTC().Format("2006-01-02"),
		})
	}

	return out, nil
}

// ExportAppointments devuelve todos los agendamientos del tenant,
// dateTime descendente (mismo orden que el listado).
func (s *Service) ExportAppointments(ctx context.Context, clinicID string) ([]AppointmentRow, error) {
	items, err := s.appointments.ListByClinic(ctx, clinicID, appointments.ListFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentRow, 0, len(items))
	for _, a := range items {
		out = append(out, AppointmentRow{
			ID:            a.ID,
			DataHora:      a.DateTime.UTC().Format(time.RFC3339),
			NomePet:       a.PetName,
			NomeTutor:     a.OwnerName,
			TelefoneTutor: a.OwnerPhone,
			Status:        string(a.Status),
			Observacoes:   a.Notes,
		})
	}

	return out, nil
}

func lostToken(lost bool) string {
	if lost {
		return "Sim"
	}
	return "Não"
}
