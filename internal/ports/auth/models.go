package auth

// Claims representa la identidad extraída del token de sesión.
// ClinicID es el tenant: toda operación autenticada se scopea por él.
type Claims struct {
	ClinicID string
	Email    string
}
