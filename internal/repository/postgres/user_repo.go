package postgres

import (
	"context"
	"fmt"

	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/repository"
)

// userRepository implements repository.UserRepository for PostgreSQL.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user. The unique index on email_address makes the
// insert atomic: a duplicate email rejects the whole write.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email_address, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(domain.MsgEmailTaken)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email_address, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(ctx, query, id)
}

// GetByEmail retrieves a user by email address (case-sensitive exact match).
func (r *userRepository) GetByEmail(ctx context.Context, emailAddress string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email_address, password_hash, created_at, updated_at
		FROM users
		WHERE email_address = $1
	`
	return r.scanUser(ctx, query, emailAddress)
}

// ExistsByEmail checks if a user with the given email address exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, emailAddress string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email_address = $1)`, emailAddress).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// scanUser runs a single-user query and scans the row.
func (r *userRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
