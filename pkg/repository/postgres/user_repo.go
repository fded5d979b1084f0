package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crystalices/backend/pkg/auth"
)

const userColumns = `id, name, email, password_hash, role, is_verified, bio, phone, created_at`

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_verified, bio, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, string(user.Role),
		user.IsVerified, user.Bio, user.Phone, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Update applies the non-empty fields of patch. is_verified is only ever set to TRUE.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch auth.UserPatch) (auth.User, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", strings.ToLower(*patch.Email))
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.Role != nil {
		add("role", string(*patch.Role))
	}
	if patch.Bio.Set {
		add("bio", patch.Bio.Value)
	}
	if patch.Phone.Set {
		add("phone", patch.Phone.Value)
	}
	if patch.MarkVerified {
		sets = append(sets, "is_verified = TRUE")
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil && isUniqueViolation(err) {
		return auth.User{}, auth.ErrDuplicateEmail
	}
	return user, err
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter auth.ListFilter) ([]auth.User, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.Role != nil {
		rows, err = r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, string(*filter.Role))
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []auth.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (auth.User, error) {
	var (
		u    auth.User
		role string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.IsVerified, &u.Bio, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	u.Role = auth.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
