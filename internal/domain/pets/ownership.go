package pets

import "context"

// ClinicOf expone el clinicId dueño de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> documents):
// un Document no tiene tenant propio, hereda el de su Pet.
func (s *Service) ClinicOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", ErrNotFound
	}
	return p.ClinicID, nil
}

// ExistsInClinic valida que la mascota exista dentro del tenant, sin
// revelar nada sobre mascotas de otras clínicas. Lo consumen
// appointments (creación autenticada con petId) y documents.
func (s *Service) ExistsInClinic(ctx context.Context, petID, clinicID string) (bool, error) {
	_, err := s.repo.GetByIDForClinic(ctx, petID, clinicID)
	if err != nil {
		return false, nil
	}
	return true, nil
}
