package request

import (
	"studysync-api/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=student librarian admin"`
}

func (r *RegisterRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

// GetRole defaults to student when the field is omitted. Role elevation
// is validated in the usecase layer against the acting user.
func (r *RegisterRequest) GetRole() string {
	if r.Role == "" {
		return user.RoleStudent.String()
	}
	return r.Role
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
