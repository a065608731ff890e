package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

// UserChanges lists the columns an update writes. Nil pointers are left
// untouched in the stored row.
type UserChanges struct {
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	Role         UserRole
	IsActive     *bool
}

// NewUser holds the columns supplied on insert. A nil IsActive lets the
// column default apply.
type NewUser struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         UserRole
	IsActive     *bool
}
