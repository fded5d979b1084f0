package auth_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/crystalices/backend/pkg/auth"
)

// memRepo is an in-memory auth.UserRepository with the same contract as the SQL one.
type memRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]auth.User
	err   error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uuid.UUID]auth.User{}}
}

func (r *memRepo) Create(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return auth.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return auth.User{}, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, p auth.UserPatch) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	if p.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *p.Email {
				return auth.User{}, auth.ErrDuplicateEmail
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.MarkVerified {
		u.IsVerified = true
	}
	if p.Bio.Set {
		u.Bio = p.Bio.Value
	}
	if p.Phone.Set {
		u.Phone = p.Phone.Value
	}
	r.users[id] = u
	return u, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return auth.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memRepo) List(_ context.Context, f auth.ListFilter) ([]auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]auth.User, 0, len(r.users))
	for _, u := range r.users {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) byEmail(email string) auth.User {
	u, _ := r.FindByEmail(context.Background(), email)
	return u
}
