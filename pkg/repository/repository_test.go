package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/repository/firestore"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/repository/postgres"
	"github.com/m-mizutani/gt"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

// newPostgresRepository gives every test its own schema so tables start empty.
func newPostgresRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	schemaName := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := postgres.New(ctx, dsn, postgres.WithSearchPath(schemaName), postgres.WithMaxConns(2))
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Migrate(ctx)).Required()

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close postgres repository: %v", err)
		}
	})
	return repo
}

var backends = map[string]func(t *testing.T) interfaces.Repository{
	"Memory":    newMemoryRepository,
	"Firestore": newFirestoreRepository,
	"Postgres":  newPostgresRepository,
}

func runOnAllBackends(t *testing.T, run func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			run(t, newRepo)
		})
	}
}

func TestPing(t *testing.T) {
	runOnAllBackends(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		gt.NoError(t, repo.Ping(context.Background()))
	})
}
