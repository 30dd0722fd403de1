package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, password_hash, role,
	COALESCE(security_question_1, ''), COALESCE(security_answer_1_hash, ''),
	COALESCE(security_question_2, ''), COALESCE(security_answer_2_hash, ''),
	created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y completa ID y fechas.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, role,
			security_question_1, security_answer_1_hash, security_question_2, security_answer_2_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Role,
		nullIfEmpty(user.SecurityQuestion1), nullIfEmpty(user.SecurityAnswer1Hash),
		nullIfEmpty(user.SecurityQuestion2), nullIfEmpty(user.SecurityAnswer2Hash),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByUsername busca sin distinguir mayúsculas (usa el índice sobre lower(username)).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// List devuelve todos los usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update aplica solo los campos no nil del patch.
func (r *UserRepo) Update(ctx context.Context, id int64, p entity.UserPatch) error {
	b := newUpdate("users")
	if p.Username != nil {
		b.set("username", *p.Username)
	}
	if p.PasswordHash != nil {
		b.set("password_hash", *p.PasswordHash)
	}
	if p.Role != nil {
		b.set("role", *p.Role)
	}
	if p.SecurityQuestion1 != nil {
		b.set("security_question_1", nullIfEmpty(*p.SecurityQuestion1))
	}
	if p.SecurityAnswer1Hash != nil {
		b.set("security_answer_1_hash", nullIfEmpty(*p.SecurityAnswer1Hash))
	}
	if p.SecurityQuestion2 != nil {
		b.set("security_question_2", nullIfEmpty(*p.SecurityQuestion2))
	}
	if p.SecurityAnswer2Hash != nil {
		b.set("security_answer_2_hash", nullIfEmpty(*p.SecurityAnswer2Hash))
	}
	if b.empty() {
		return nil
	}
	b.setRaw("updated_at = now()")

	query, args := b.build(id)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete borra el usuario; si tiene ventas registradas devuelve ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CountByRole cuenta los usuarios de un rol.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.SecurityQuestion1, &u.SecurityAnswer1Hash,
		&u.SecurityQuestion2, &u.SecurityAnswer2Hash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
