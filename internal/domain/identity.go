package domain

import "strings"

// IdentityKind enumera los selectores de identidad soportados.
type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentityByID
	IdentityByEmail
	IdentityByNickname
)

// Identity selecciona un usuario por id, email o nickname.
type Identity struct {
	Kind  IdentityKind
	Value string
}

// IdentityFromInput resuelve el selector una sola vez en el borde HTTP.
// La prioridad es id, luego email, luego nickname.
func IdentityFromInput(id, email, nickname string) Identity {
	if v := strings.TrimSpace(id); v != "" {
		return Identity{Kind: IdentityByID, Value: v}
	}
	if v := strings.ToLower(strings.TrimSpace(email)); v != "" {
		return Identity{Kind: IdentityByEmail, Value: v}
	}
	if v := strings.TrimSpace(nickname); v != "" {
		return Identity{Kind: IdentityByNickname, Value: v}
	}
	return Identity{}
}

// IsZero indica que ningún campo de identidad fue provisto.
func (i Identity) IsZero() bool {
	return i.Kind == IdentityNone
}
