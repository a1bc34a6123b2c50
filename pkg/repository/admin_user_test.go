package repository_test

import (
	"context"
	"testing"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func runAdminUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Save creates then replaces password", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.AdminUser().Save(ctx, "admin", "hash-1")
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Value(t, created.Username).Equal("admin")

		again, err := repo.AdminUser().Save(ctx, "admin", "hash-2")
		gt.NoError(t, err).Required()
		gt.Value(t, again.ID).Equal(created.ID)

		got, err := repo.AdminUser().GetByUsername(ctx, "admin")
		gt.NoError(t, err).Required()
		gt.Value(t, got.PasswordHash).Equal("hash-2")
	})

	t.Run("Get and UpdatePassword by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.AdminUser().Save(ctx, "owner", "old")
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.AdminUser().UpdatePassword(ctx, created.ID, "new")).Required()

		got, err := repo.AdminUser().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Username).Equal("owner")
		gt.Value(t, got.PasswordHash).Equal("new")
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.AdminUser().GetByUsername(ctx, "nobody")
		gt.Error(t, err).Is(model.ErrNotFound)
		_, err = repo.AdminUser().Get(ctx, 987654)
		gt.Error(t, err).Is(model.ErrNotFound)
		gt.Error(t, repo.AdminUser().UpdatePassword(ctx, 987654, "x")).Is(model.ErrNotFound)
	})
}

func TestAdminUserRepository(t *testing.T) {
	runOnAllBackends(t, runAdminUserRepositoryTest)
}
