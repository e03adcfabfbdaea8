package entity

import "time"

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (pertenece a una empresa).
// Role coincide con los roles del token: admin, almoxarife, seguranca, colaborador.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
