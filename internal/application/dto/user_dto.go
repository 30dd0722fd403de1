package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username          string `json:"username" validate:"notblank,max=100"`
	Password          string `json:"password" validate:"required,min=4"`
	Role              string `json:"role" validate:"required,oneof=administrator employee"`
	SecurityQuestion1 string `json:"security_question_1,omitempty" validate:"required_with=SecurityAnswer1"`
	SecurityAnswer1   string `json:"security_answer_1,omitempty" validate:"required_with=SecurityQuestion1"`
	SecurityQuestion2 string `json:"security_question_2,omitempty" validate:"required_with=SecurityAnswer2"`
	SecurityAnswer2   string `json:"security_answer_2,omitempty" validate:"required_with=SecurityQuestion2"`
}

// UpdateUserRequest actualización parcial (solo campos presentes).
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,notblank,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=administrator employee"`
}

// UserResponse salida de un usuario (sin hashes).
type UserResponse struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Role                 string    `json:"role"`
	HasSecurityQuestions bool      `json:"has_security_questions"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión + resumen del usuario con sus permisos efectivos.
type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}

// RecoveryQuestionsRequest usuario del que se piden las preguntas.
type RecoveryQuestionsRequest struct {
	Username string `json:"username" validate:"notblank"`
}

// RecoveryQuestionsResponse preguntas de seguridad (nunca las respuestas).
type RecoveryQuestionsResponse struct {
	Username  string `json:"username"`
	Question1 string `json:"question_1"`
	Question2 string `json:"question_2"`
}

// ResetPasswordRequest restablece la contraseña respondiendo ambas preguntas.
type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"notblank"`
	Answer1     string `json:"answer_1" validate:"notblank"`
	Answer2     string `json:"answer_2" validate:"notblank"`
	NewPassword string `json:"new_password" validate:"required,min=4"`
}

// ChangePasswordRequest cambio de contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=4"`
}

// SecurityQuestionsRequest reemplaza las preguntas propias (requiere contraseña actual).
type SecurityQuestionsRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	Question1       string `json:"question_1" validate:"notblank"`
	Answer1         string `json:"answer_1" validate:"notblank"`
	Question2       string `json:"question_2" validate:"notblank,nefield=Question1"`
	Answer2         string `json:"answer_2" validate:"notblank"`
}
