package documents

import "time"

// Document es un adjunto 1:N de una mascota. No tiene tenant propio:
// su clínica efectiva es la de su Pet, y la autorización se resuelve
// siempre de forma transitiva.
type Document struct {
	ID    string
	PetID string

	Name     string
	FilePath string
	FileType string

	UploadedAt time.Time
}
