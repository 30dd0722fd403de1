package entity

import "time"

// Roles válidos para User.
const (
	RoleAdministrator = "administrator"
	RoleEmployee      = "employee"
)

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleEmployee
}

// User representa un usuario del punto de venta.
// Las respuestas de seguridad se guardan hasheadas igual que la contraseña.
type User struct {
	ID                  int64
	Username            string
	PasswordHash        string
	Role                string // administrator, employee
	SecurityQuestion1   string
	SecurityAnswer1Hash string
	SecurityQuestion2   string
	SecurityAnswer2Hash string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasSecurityQuestions indica si el usuario configuró ambas preguntas de recuperación.
func (u *User) HasSecurityQuestions() bool {
	return u.SecurityQuestion1 != "" && u.SecurityQuestion2 != "" &&
		u.SecurityAnswer1Hash != "" && u.SecurityAnswer2Hash != ""
}

// UserPatch actualización parcial de un usuario: solo se aplican los campos no nil.
type UserPatch struct {
	Username            *string
	PasswordHash        *string
	Role                *string
	SecurityQuestion1   *string
	SecurityAnswer1Hash *string
	SecurityQuestion2   *string
	SecurityAnswer2Hash *string
}

// Empty indica si el patch no trae cambios.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.PasswordHash == nil && p.Role == nil &&
		p.SecurityQuestion1 == nil && p.SecurityAnswer1Hash == nil &&
		p.SecurityQuestion2 == nil && p.SecurityAnswer2Hash == nil
}
