package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookhive/bookhive-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, email, first_name, last_name, password_hash, role, active, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserFilter narrows List and Count. String fields match
// case-insensitively on substrings; zero values are ignored.
type UserFilter struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

func (f UserFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.ID != 0 {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Email != "" {
		conds = append(conds, "LOWER(email) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Email)+"%")
	}
	if f.FirstName != "" {
		conds = append(conds, "LOWER(first_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.FirstName)+"%")
	}
	if f.LastName != "" {
		conds = append(conds, "LOWER(last_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.LastName)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create inserts a new user inside a transaction and fills in the
// generated ID and timestamps. A unique-key violation on email maps to
// ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, password_hash, role, active) VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, user.Role, user.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id), user); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByEmail retrieves a user by exact email match. Callers are
// expected to lowercase the email first.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns users matching the filter ordered by ID, with
// LIMIT/OFFSET pagination.
func (r *UserRepository) List(ctx context.Context, filter UserFilter, limit, offset int) ([]model.User, error) {
	where, args := filter.where()
	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Count returns the number of users matching the filter.
func (r *UserRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	where, args := filter.where()
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&n)
	return n, err
}

// Update writes the full user row inside a transaction and refreshes
// the struct's timestamps.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET email = ?, first_name = ?, last_name = ?, password_hash = ?, role = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, user.Role, user.Active, user.ID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, user.ID), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	return tx.Commit()
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
}
