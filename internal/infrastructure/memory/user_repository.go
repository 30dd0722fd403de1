package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El username es único sin distinguir mayúsculas, como el índice en PostgreSQL.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) usernameTaken(username string, exceptID int64) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.create"); err != nil {
		return err
	}
	if r.usernameTaken(user.Username, 0) {
		return domain.ErrUsernameTaken
	}
	now := r.s.Now()
	user.ID = r.s.next("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.get"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUsername obtiene un usuario por nombre.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// List lista usuarios ordenados por username.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Update aplica el patch.
func (r *UserRepo) Update(_ context.Context, id int64, p entity.UserPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.Username != nil {
		if r.usernameTaken(*p.Username, id) {
			return domain.ErrUsernameTaken
		}
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.SecurityQuestion1 != nil {
		u.SecurityQuestion1 = *p.SecurityQuestion1
	}
	if p.SecurityAnswer1Hash != nil {
		u.SecurityAnswer1Hash = *p.SecurityAnswer1Hash
	}
	if p.SecurityQuestion2 != nil {
		u.SecurityQuestion2 = *p.SecurityQuestion2
	}
	if p.SecurityAnswer2Hash != nil {
		u.SecurityAnswer2Hash = *p.SecurityAnswer2Hash
	}
	u.UpdatedAt = r.s.Now()
	r.s.users[id] = u
	return nil
}

// Delete elimina el usuario y sus overrides (ON DELETE CASCADE).
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, sale := range r.s.sales {
		if sale.UserID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	delete(r.s.overrides, id)
	return nil
}

// CountByRole cuenta usuarios con el rol dado.
func (r *UserRepo) CountByRole(_ context.Context, role string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
