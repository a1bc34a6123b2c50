package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/domain/model/auth"
	"github.com/hireme-dev/hireme/pkg/repository/memory"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestAccountLink_LinkUnlink(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithGoogle(&mockGoogleService{}))

	linked, err := uc.AccountLink.IsLinked(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, linked).False()
	gt.Value(t, uc.AccountLink.LinkedIdentity(ctx)).Equal("")

	gt.NoError(t, uc.AccountLink.Link(ctx, "1//first")).Required()
	gt.NoError(t, uc.AccountLink.Link(ctx, "1//second")).Required()

	values, err := repo.Settings().GetAll(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, values[model.SettingGoogleRefreshToken]).Equal("1//second")

	linked, err = uc.AccountLink.IsLinked(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, linked).True()
	gt.Value(t, uc.AccountLink.LinkedIdentity(ctx)).Equal("owner@gmail.example.com")

	gt.NoError(t, uc.AccountLink.Unlink(ctx)).Required()
	gt.NoError(t, uc.AccountLink.Unlink(ctx)).Required()

	linked, err = uc.AccountLink.IsLinked(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, linked).False()
}

func TestAccountLink_LinkRequiresToken(t *testing.T) {
	uc := usecase.New(memory.New())
	gt.Error(t, uc.AccountLink.Link(context.Background(), " ")).Is(model.ErrValidation)
}

func TestAccountLink_LinkedIdentityFailure(t *testing.T) {
	ctx := context.Background()
	svc := &mockGoogleService{
		newSessionFn: func(ctx context.Context, refreshToken string) (google.Session, error) {
			return &mockSession{
				identityFn: func(ctx context.Context) (string, error) {
					return "", errors.New("token revoked")
				},
			}, nil
		},
	}
	uc := usecase.New(memory.New(), usecase.WithGoogle(svc))
	gt.NoError(t, uc.AccountLink.Link(ctx, "1//token")).Required()

	gt.Value(t, uc.AccountLink.LinkedIdentity(ctx)).Equal("")

	status, err := uc.AccountLink.Status(ctx)
	gt.NoError(t, err).Required()
	gt.Bool(t, status.Connected).True()
	gt.Value(t, status.Email).Equal("")
}

func TestAccountLink_OAuthFlow(t *testing.T) {
	ctx := context.Background()
	admin := &auth.Admin{ID: 1, Username: "owner"}

	var issuedState string
	svc := &mockGoogleService{
		authURLFn: func(state string) string {
			issuedState = state
			return "https://accounts.example.com/auth"
		},
	}

	t.Run("callback with issued state links account", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithGoogle(svc), usecase.WithJWTSecret([]byte("secret")))

		u, err := uc.AccountLink.AuthURL(ctx, admin)
		gt.NoError(t, err).Required()
		gt.Value(t, u).Equal("https://accounts.example.com/auth")
		gt.Value(t, issuedState).NotEqual("")

		gt.NoError(t, uc.AccountLink.HandleCallback(ctx, "code123", issuedState)).Required()

		values, err := repo.Settings().GetAll(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, values[model.SettingGoogleRefreshToken]).Equal("1//refresh-code123")
		gt.Value(t, values[model.SettingGoogleConnected]).Equal("true")
	})

	t.Run("forged state is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithGoogle(svc), usecase.WithJWTSecret([]byte("secret")))
		gt.Error(t, uc.AccountLink.HandleCallback(ctx, "code123", "not-a-token")).Is(usecase.ErrInvalidState)

		other := usecase.New(memory.New(), usecase.WithGoogle(svc), usecase.WithJWTSecret([]byte("other")))
		_, err := other.AccountLink.AuthURL(ctx, admin)
		gt.NoError(t, err).Required()
		gt.Error(t, uc.AccountLink.HandleCallback(ctx, "code123", issuedState)).Is(usecase.ErrInvalidState)
	})

	t.Run("admin token is not accepted as state", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithGoogle(svc), usecase.WithJWTSecret([]byte("secret")))
		_, err := uc.Auth.CreateAdmin(ctx, "owner", "password")
		gt.NoError(t, err).Required()
		token, _, err := uc.Auth.Login(ctx, "owner", "password")
		gt.NoError(t, err).Required()

		gt.Error(t, uc.AccountLink.HandleCallback(ctx, "code123", token)).Is(usecase.ErrInvalidState)
	})

	t.Run("missing refresh token fails without linking", func(t *testing.T) {
		repo := memory.New()
		noRefresh := &mockGoogleService{
			authURLFn: svc.authURLFn,
			exchangeFn: func(ctx context.Context, code string) (string, error) {
				return "", nil
			},
		}
		uc := usecase.New(repo, usecase.WithGoogle(noRefresh), usecase.WithJWTSecret([]byte("secret")))
		_, err := uc.AccountLink.AuthURL(ctx, admin)
		gt.NoError(t, err).Required()

		gt.Error(t, uc.AccountLink.HandleCallback(ctx, "code123", issuedState)).Is(usecase.ErrNoRefreshToken)
		linked, err := uc.AccountLink.IsLinked(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, linked).False()
	})

	t.Run("google not configured", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.AccountLink.AuthURL(ctx, admin)
		gt.Error(t, err).Is(usecase.ErrGoogleUnavailable)

		status, err := uc.AccountLink.Status(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, status.Configured).False()
	})
}
