package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/domain/model/auth"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is the lifetime of an admin token.
const SessionTTL = 24 * time.Hour

type AuthUseCase struct {
	repo   interfaces.Repository
	signer *tokenSigner
	now    func() time.Time
}

func NewAuthUseCase(repo interfaces.Repository, signer *tokenSigner) *AuthUseCase {
	return &AuthUseCase{
		repo:   repo,
		signer: signer,
		now:    time.Now,
	}
}

// Login verifies the password and returns a signed admin token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, *auth.Admin, error) {
	user, err := uc.repo.AdminUser().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", nil, goerr.Wrap(ErrInvalidCredentials, "unknown admin", goerr.V(model.UsernameKey, username))
		}
		return "", nil, goerr.Wrap(err, "failed to look up admin", goerr.V(model.UsernameKey, username))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch", goerr.V(model.UsernameKey, username))
	}

	admin := &auth.Admin{ID: user.ID, Username: user.Username}
	token, err := uc.signer.sign(audienceAdmin, tokenClaims{
		Subject:  adminSubject(user.ID),
		Username: user.Username,
	}, SessionTTL, uc.now())
	if err != nil {
		return "", nil, err
	}

	logging.From(ctx).Info("admin logged in", "username", user.Username)
	return token, admin, nil
}

// Authenticate validates an admin token and returns the admin it was issued to.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*auth.Admin, error) {
	claims, err := uc.signer.verify(audienceAdmin, token, uc.now())
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, err.Error())
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "malformed token subject", goerr.V("subject", claims.Subject))
	}

	return &auth.Admin{ID: id, Username: claims.Username}, nil
}

// ChangePassword replaces the admin's password after checking the current one.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, admin *auth.Admin, current, next string) error {
	if admin == nil {
		return goerr.Wrap(ErrUnauthorized, "no authenticated admin")
	}
	if len(next) < model.MinPasswordLength {
		return goerr.Wrap(model.ErrValidation, "New password must be at least 6 characters")
	}
	if len(next) > model.MaxPasswordLength {
		return goerr.Wrap(model.ErrValidation, "New password must be at most 72 bytes")
	}

	user, err := uc.repo.AdminUser().Get(ctx, admin.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to look up admin", goerr.V("id", admin.ID))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return goerr.Wrap(ErrInvalidCredentials, "current password mismatch", goerr.V("id", admin.ID))
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := uc.repo.AdminUser().UpdatePassword(ctx, admin.ID, hash); err != nil {
		return goerr.Wrap(err, "failed to update password", goerr.V("id", admin.ID))
	}
	return nil
}

// CreateAdmin stores an admin, replacing the password if the username exists.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, username, password string) (*model.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, goerr.Wrap(model.ErrValidation, "username is required")
	}
	if len(password) < model.MinPasswordLength {
		return nil, goerr.Wrap(model.ErrValidation, "password must be at least 6 characters")
	}
	if len(password) > model.MaxPasswordLength {
		return nil, goerr.Wrap(model.ErrValidation, "password must be at most 72 bytes")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.AdminUser().Save(ctx, username, hash)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save admin", goerr.V(model.UsernameKey, username))
	}
	return user, nil
}

// HashPassword returns the bcrypt hash stored for an admin password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", goerr.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}
