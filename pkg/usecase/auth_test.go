package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestAuthUseCase(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithJWTSecret([]byte("test-secret")))

	created, err := uc.Auth.CreateAdmin(ctx, "owner", "hunter22")
	gt.NoError(t, err).Required()
	gt.Value(t, created.PasswordHash).NotEqual("hunter22")

	t.Run("login returns token that authenticates", func(t *testing.T) {
		token, admin, err := uc.Auth.Login(ctx, "owner", "hunter22")
		gt.NoError(t, err).Required()
		gt.Value(t, admin.ID).Equal(created.ID)

		got, err := uc.Auth.Authenticate(ctx, token)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.Username).Equal("owner")
	})

	t.Run("wrong password and unknown user are invalid credentials", func(t *testing.T) {
		_, _, err := uc.Auth.Login(ctx, "owner", "wrong")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)

		_, _, err = uc.Auth.Login(ctx, "nobody", "hunter22")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
	})

	t.Run("tampered or foreign tokens are rejected", func(t *testing.T) {
		token, _, err := uc.Auth.Login(ctx, "owner", "hunter22")
		gt.NoError(t, err).Required()

		_, err = uc.Auth.Authenticate(ctx, token+"x")
		gt.Error(t, err).Is(usecase.ErrUnauthorized)

		other := usecase.New(repo, usecase.WithJWTSecret([]byte("other-secret")))
		_, err = other.Auth.Authenticate(ctx, token)
		gt.Error(t, err).Is(usecase.ErrUnauthorized)

		_, err = uc.Auth.Authenticate(ctx, "")
		gt.Error(t, err).Is(usecase.ErrUnauthorized)
	})

	t.Run("change password", func(t *testing.T) {
		_, admin, err := uc.Auth.Login(ctx, "owner", "hunter22")
		gt.NoError(t, err).Required()

		gt.Error(t, uc.Auth.ChangePassword(ctx, admin, "hunter22", "short")).Is(model.ErrValidation)
		gt.Error(t, uc.Auth.ChangePassword(ctx, admin, "hunter22", strings.Repeat("x", 80))).Is(model.ErrValidation)
		gt.Error(t, uc.Auth.ChangePassword(ctx, admin, "wrong", "longenough")).Is(usecase.ErrInvalidCredentials)

		gt.NoError(t, uc.Auth.ChangePassword(ctx, admin, "hunter22", "longenough")).Required()

		_, _, err = uc.Auth.Login(ctx, "owner", "hunter22")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
		_, _, err = uc.Auth.Login(ctx, "owner", "longenough")
		gt.NoError(t, err)
	})

	t.Run("create admin validates input", func(t *testing.T) {
		_, err := uc.Auth.CreateAdmin(ctx, "", "password")
		gt.Error(t, err).Is(model.ErrValidation)
		_, err = uc.Auth.CreateAdmin(ctx, "x", "12345")
		gt.Error(t, err).Is(model.ErrValidation)
		_, err = uc.Auth.CreateAdmin(ctx, "x", strings.Repeat("x", model.MaxPasswordLength+1))
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("password at the bcrypt limit is accepted", func(t *testing.T) {
		password := strings.Repeat("y", model.MaxPasswordLength)
		_, err := uc.Auth.CreateAdmin(ctx, "limit", password)
		gt.NoError(t, err).Required()
		_, _, err = uc.Auth.Login(ctx, "limit", password)
		gt.NoError(t, err)
	})
}
