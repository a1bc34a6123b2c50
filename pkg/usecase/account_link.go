package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/domain/model/auth"
	"github.com/hireme-dev/hireme/pkg/service/google"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// stateTTL bounds how long the owner may take on the Google consent page.
const stateTTL = 10 * time.Minute

// AccountLinkUseCase owns the linked Google account. Link state is read from
// storage on every call and never cached.
type AccountLinkUseCase struct {
	repo    interfaces.Repository
	google  google.Service
	signer  *tokenSigner
	timeout time.Duration
	now     func() time.Time
}

// LinkStatus is the account link state shown to the owner.
type LinkStatus struct {
	Configured bool
	Connected  bool
	Email      string
}

func NewAccountLinkUseCase(repo interfaces.Repository, svc google.Service, signer *tokenSigner, timeout time.Duration) *AccountLinkUseCase {
	return &AccountLinkUseCase{
		repo:    repo,
		google:  svc,
		signer:  signer,
		timeout: timeout,
		now:     time.Now,
	}
}

func (uc *AccountLinkUseCase) current(ctx context.Context) (*model.AccountLink, error) {
	values, err := uc.repo.Settings().GetAll(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read account link")
	}
	return model.AccountLinkFromSettings(values), nil
}

// IsLinked reports whether a usable credential is stored.
func (uc *AccountLinkUseCase) IsLinked(ctx context.Context) (bool, error) {
	link, err := uc.current(ctx)
	if err != nil {
		return false, err
	}
	return link.IsLinked(), nil
}

// session opens a fresh authorized client, or returns nil when automation is unavailable.
func (uc *AccountLinkUseCase) session(ctx context.Context) (google.Session, error) {
	if uc.google == nil {
		return nil, nil
	}

	link, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}
	if !link.IsLinked() {
		return nil, nil
	}

	sess, err := uc.google.NewSession(ctx, link.RefreshToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open google session")
	}
	return sess, nil
}

// identity looks up the linked address, returning "" on any failure.
func (uc *AccountLinkUseCase) identity(ctx context.Context, sess google.Session) string {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	email, err := sess.Identity(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to resolve linked account identity")
		return ""
	}
	return email
}

// LinkedIdentity returns the linked account's address, or "" when not linked
// or when the lookup fails.
func (uc *AccountLinkUseCase) LinkedIdentity(ctx context.Context) string {
	sess, err := uc.session(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to open session for identity lookup")
		return ""
	}
	if sess == nil {
		return ""
	}
	return uc.identity(ctx, sess)
}

// Link stores refreshToken as the linked credential, replacing any previous one in one write.
func (uc *AccountLinkUseCase) Link(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return goerr.Wrap(model.ErrValidation, "refresh token is required")
	}

	link := &model.AccountLink{RefreshToken: refreshToken, Connected: true}
	if err := uc.repo.Settings().Upsert(ctx, link.Settings()); err != nil {
		return goerr.Wrap(err, "failed to store account link")
	}

	logging.From(ctx).Info("google account linked")
	return nil
}

// Unlink removes the credential and the linked marker. It succeeds when nothing is linked.
func (uc *AccountLinkUseCase) Unlink(ctx context.Context) error {
	if err := uc.repo.Settings().Delete(ctx, model.AccountLinkKeys()...); err != nil {
		return goerr.Wrap(err, "failed to remove account link")
	}

	logging.From(ctx).Info("google account unlinked")
	return nil
}

// Status reports whether Google is configured and linked, with the linked address.
func (uc *AccountLinkUseCase) Status(ctx context.Context) (*LinkStatus, error) {
	linked, err := uc.IsLinked(ctx)
	if err != nil {
		return nil, err
	}

	status := &LinkStatus{
		Configured: uc.google != nil,
		Connected:  linked,
	}
	if linked {
		status.Email = uc.LinkedIdentity(ctx)
	}
	return status, nil
}

// AuthURL returns the consent page URL for admin, carrying a signed state.
func (uc *AccountLinkUseCase) AuthURL(ctx context.Context, admin *auth.Admin) (string, error) {
	if uc.google == nil {
		return "", goerr.Wrap(ErrGoogleUnavailable, "cannot build auth URL")
	}
	if admin == nil {
		return "", goerr.Wrap(ErrUnauthorized, "no authenticated admin")
	}

	state, err := uc.signer.sign(audienceGoogleState, tokenClaims{
		Subject:  adminSubject(admin.ID),
		Username: admin.Username,
	}, stateTTL, uc.now())
	if err != nil {
		return "", err
	}
	return uc.google.AuthURL(state), nil
}

// HandleCallback completes the consent flow: it checks state, exchanges the
// code and links the returned refresh token.
func (uc *AccountLinkUseCase) HandleCallback(ctx context.Context, code, state string) error {
	if uc.google == nil {
		return goerr.Wrap(ErrGoogleUnavailable, "cannot handle callback")
	}
	if _, err := uc.signer.verify(audienceGoogleState, state, uc.now()); err != nil {
		return goerr.Wrap(ErrInvalidState, err.Error())
	}
	if code == "" {
		return goerr.Wrap(model.ErrValidation, "authorization code is required")
	}

	refreshToken, err := uc.google.Exchange(ctx, code)
	if err != nil {
		return goerr.Wrap(err, "failed to exchange authorization code")
	}
	if refreshToken == "" {
		return goerr.Wrap(ErrNoRefreshToken, "google returned no refresh token")
	}

	return uc.Link(ctx, refreshToken)
}
