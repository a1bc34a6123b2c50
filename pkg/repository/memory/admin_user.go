package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type adminUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*model.AdminUser
	nextID int64
}

func newAdminUserRepository() *adminUserRepository {
	return &adminUserRepository{
		users:  make(map[int64]*model.AdminUser),
		nextID: 1,
	}
}

func (r *adminUserRepository) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V("id", id))
	}
	c := *user
	return &c, nil
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user := r.findByUsername(username); user != nil {
		c := *user
		return &c, nil
	}
	return nil, goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V(model.UsernameKey, username))
}

func (r *adminUserRepository) Save(ctx context.Context, username, passwordHash string) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByUsername(username)
	if user == nil {
		user = &model.AdminUser{
			ID:        r.nextID,
			Username:  username,
			CreatedAt: time.Now().UTC(),
		}
		r.nextID++
		r.users[user.ID] = user
	}
	user.PasswordHash = passwordHash

	c := *user
	return &c, nil
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return goerr.Wrap(model.ErrNotFound, "admin user not found", goerr.V("id", id))
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *adminUserRepository) findByUsername(username string) *model.AdminUser {
	for _, user := range r.users {
		if user.Username == username {
			return user
		}
	}
	return nil
}
