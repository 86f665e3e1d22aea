package memory

import (
	"context"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

// UserRepository is the in-memory staff user repository
type UserRepository struct {
	store *Store
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

// conflict reports a unique violation against any user other than skipID
func (r *UserRepository) conflict(u *models.User, skipID string) error {
	for _, existing := range r.store.users {
		if existing.ID == skipID {
			continue
		}
		if existing.Username == u.Username {
			return apperrors.ErrUsernameExists
		}
		if existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.conflict(user, user.ID); err != nil {
		return err
	}
	r.store.users = append(r.store.users, cloneUser(user))
	return nil
}

func (r *UserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByLogin(_ context.Context, login string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == login || u.Email == login })
}

// List returns users newest first
func (r *UserRepository) List(_ context.Context) ([]*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*models.User, 0, len(r.store.users))
	for i := len(r.store.users) - 1; i >= 0; i-- {
		users = append(users, cloneUser(r.store.users[i]))
	}
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.users {
		if existing.ID != user.ID {
			continue
		}
		if err := r.conflict(user, user.ID); err != nil {
			return err
		}
		updated := cloneUser(user)
		updated.CreatedAt = existing.CreatedAt
		r.store.users[i] = updated
		return nil
	}
	return apperrors.ErrUserNotFound
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, u := range r.store.users {
		if u.ID == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}
