package users

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// inserts a user; a duplicate email yields errors.ErrConflict
func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		queryCreate,
		params.FirstName,
		params.LastName,
		NormalizeEmail(params.Email),
		params.MobileNumber,
		params.PasswordHash,
		params.Role,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("email already exists: %w", errors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	return user, nil
}

// finds a user by email (case-insensitive)
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryFindByEmail, NormalizeEmail(email)))
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	return user, nil
}

// replaces the password hash of the user with this email
func (r *Repository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	tag, err := r.db.Exec(ctx, queryUpdatePassword, passwordHash, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", errors.ErrNotFound)
	}

	return nil
}

// updates a user's name and phone number
func (r *Repository) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryUpdateProfile, req.FirstName, req.LastName, req.MobileNumber, userID))
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	return user, nil
}

// returns the user with this email, creating it when missing
func (r *Repository) FindOrCreateByEmail(ctx context.Context, params CreateParams) (*User, error) {
	user, err := scanUser(r.db.QueryRow(
		ctx,
		queryFindOrCreateByEmail,
		params.FirstName,
		params.LastName,
		NormalizeEmail(params.Email),
		params.PasswordHash,
		params.Role,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to find or create user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.MobileNumber,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func notFound(err error, msg string) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, errors.ErrNotFound)
	}

	return err
}
