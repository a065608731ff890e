package repository

import (
	"context"
	"errors"
	"fmt"

	"users-api/internal/data/entity"
	"users-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateEmail is returned when a write hits the unique email index
var ErrDuplicateEmail = errors.New("email already exists")

const (
	usersTable  = "users"
	userColumns = "id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at"

	uniqueViolation = "23505"
)

//go:generate mockgen -source=user_repo.go -destination=mocks/mock_user_repo.go -package=mocks

// UserRepository reads and writes the users table. Lookups that match no
// row return a nil user and a nil error.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	Create(ctx context.Context, user *entity.NewUser) (*entity.User, error)
	Update(ctx context.Context, id int64, changes *entity.UserChanges) (*entity.User, error)
	Delete(ctx context.Context, id int64) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

// FindAll returns every user ordered by id
func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := ur.db.Query(ctx, query)
	if err != nil {
		ur.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	return user, nil
}

// Create inserts a new user and returns the stored row
func (ur *userRepository) Create(ctx context.Context, user *entity.NewUser) (*entity.User, error) {
	query, args := buildInsert(usersTable, []column{
		setColumn("email", user.Email),
		setColumn("password_hash", user.PasswordHash),
		setColumn("first_name", user.FirstName),
		setColumn("last_name", user.LastName),
		setColumn("role", string(user.Role)),
		optionalColumn("is_active", user.IsActive),
	}, userColumns)

	created, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return nil, fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return created, nil
}

// Update writes changes to the user row and refreshes updated_at. Nil
// fields of changes are omitted from the statement.
func (ur *userRepository) Update(ctx context.Context, id int64, changes *entity.UserChanges) (*entity.User, error) {
	query, args := buildUpdate(usersTable, []column{
		setColumn("email", changes.Email),
		optionalColumn("password_hash", changes.PasswordHash),
		setColumn("first_name", changes.FirstName),
		setColumn("last_name", changes.LastName),
		setColumn("role", string(changes.Role)),
		optionalColumn("is_active", changes.IsActive),
	}, []string{"updated_at = NOW()"}, setColumn("id", id), userColumns)

	updated, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.String("email", changes.Email),
		)
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	return updated, nil
}

// Delete removes the row and returns what it held
func (ur *userRepository) Delete(ctx context.Context, id int64) (*entity.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	deleted, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}

	ur.log.Info("User deleted", zap.Int64("user_id", id))
	return deleted, nil
}

// scanUser reads one row laid out as userColumns
func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = entity.UserRole(role)
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
