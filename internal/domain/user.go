package domain

import (
	"regexp"
	"time"
)

// MediumEmail es el único medio de validación soportado.
const MediumEmail = "email"

// ValidationToken guarda el token enviado y el recibido para un medio.
type ValidationToken struct {
	Sent     string `json:"sent,omitempty"`
	Received string `json:"received,omitempty"`
}

// Validation agrupa el estado de validación por medio.
type Validation struct {
	Email ValidationToken `json:"email"`
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Nickname     string     `json:"nickname"`
	PasswordHash string     `json:"-"`
	Validation   Validation `json:"validation"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsMediumValidated indica si el usuario completó la validación del medio.
func (u User) IsMediumValidated(medium string) bool {
	switch medium {
	case MediumEmail:
		v := u.Validation.Email
		return v.Received != "" && v.Received == v.Sent
	default:
		return false
	}
}

// IsValidated indica si el correo del usuario fue validado.
func (u User) IsValidated() bool {
	return u.IsMediumValidated(MediumEmail)
}

// IsKnownMedium valida el medio contra la lista soportada.
func IsKnownMedium(medium string) bool {
	return medium == MediumEmail
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// IsValidEmail verifica el formato del correo.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
