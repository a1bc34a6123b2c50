package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func runSubmissionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID, unread flag and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		before := time.Now().Add(-time.Second)
		created, err := repo.Submission().Create(ctx, &model.Submission{
			Name:            "Ada Lovelace",
			Email:           "ada@example.com",
			Company:         "Analytical Engines",
			PreferredDate:   "2025-03-10",
			PreferredTime:   "14:00",
			DurationMinutes: 45,
			Timezone:        "Europe/London",
			Message:         "Looking forward to it",
			Read:            true,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Bool(t, created.Read).False()
		gt.Bool(t, created.CreatedAt.After(before)).True()

		got, err := repo.Submission().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Ada Lovelace")
		gt.Value(t, got.Email).Equal("ada@example.com")
		gt.Value(t, got.Company).Equal("Analytical Engines")
		gt.Value(t, got.PreferredDate).Equal("2025-03-10")
		gt.Value(t, got.PreferredTime).Equal("14:00")
		gt.Number(t, got.DurationMinutes).Equal(45)
		gt.Value(t, got.Timezone).Equal("Europe/London")
		gt.Value(t, got.Message).Equal("Looking forward to it")
		gt.Bool(t, got.Read).False()
	})

	t.Run("Create keeps empty optional fields as empty strings", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Submission().Create(ctx, &model.Submission{
			Name:            "Grace",
			Email:           "grace@example.com",
			DurationMinutes: model.DefaultDurationMinutes,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Submission().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Company).Equal("")
		gt.Value(t, got.PreferredDate).Equal("")
		gt.Value(t, got.PreferredTime).Equal("")
		gt.Value(t, got.Message).Equal("")
	})

	t.Run("IDs are unique", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Submission().Create(ctx, &model.Submission{Name: "A", Email: "a@example.com"})
		gt.NoError(t, err).Required()
		b, err := repo.Submission().Create(ctx, &model.Submission{Name: "B", Email: "b@example.com"})
		gt.NoError(t, err).Required()
		gt.Value(t, a.ID).NotEqual(b.ID)
	})

	t.Run("List returns newest first and filters unread", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Submission().Create(ctx, &model.Submission{Name: "First", Email: "1@example.com"})
		gt.NoError(t, err).Required()
		time.Sleep(10 * time.Millisecond)
		second, err := repo.Submission().Create(ctx, &model.Submission{Name: "Second", Email: "2@example.com"})
		gt.NoError(t, err).Required()

		all, err := repo.Submission().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2).Required()
		gt.Value(t, all[0].ID).Equal(second.ID)
		gt.Value(t, all[1].ID).Equal(first.ID)

		gt.NoError(t, repo.Submission().MarkRead(ctx, second.ID)).Required()

		unread, err := repo.Submission().List(ctx, interfaces.WithUnreadOnly())
		gt.NoError(t, err).Required()
		gt.Array(t, unread).Length(1).Required()
		gt.Value(t, unread[0].ID).Equal(first.ID)
	})

	t.Run("MarkRead sets flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Submission().Create(ctx, &model.Submission{Name: "R", Email: "r@example.com"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Submission().MarkRead(ctx, created.ID)).Required()
		got, err := repo.Submission().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, got.Read).True()
	})

	t.Run("MarkRead and Delete on missing ID return not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.Error(t, repo.Submission().MarkRead(ctx, 999999)).Is(model.ErrNotFound)
		gt.Error(t, repo.Submission().Delete(ctx, 999999)).Is(model.ErrNotFound)
		_, err := repo.Submission().Get(ctx, 999999)
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("Delete removes submission", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Submission().Create(ctx, &model.Submission{Name: "D", Email: "d@example.com"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Submission().Delete(ctx, created.ID)).Required()
		_, err = repo.Submission().Get(ctx, created.ID)
		gt.Error(t, err).Is(model.ErrNotFound)
	})
}

func TestSubmissionRepository(t *testing.T) {
	runOnAllBackends(t, runSubmissionRepositoryTest)
}
