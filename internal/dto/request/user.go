package request

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,bcrypt"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// UpdateUserRequest replaces the listed fields of a user. An empty Password
// keeps the stored hash, a nil IsActive keeps the stored flag.
type UpdateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password,omitempty" validate:"omitempty,bcrypt"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// MissingRequired reports whether any of the fields an update cannot go
// without is empty.
func (r *UpdateUserRequest) MissingRequired() bool {
	return r.Email == "" || r.FirstName == "" || r.LastName == "" || r.Role == ""
}
