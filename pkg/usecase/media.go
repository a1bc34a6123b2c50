package usecase

import (
	"context"
	"io"

	"github.com/hireme-dev/hireme/pkg/service/media"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type MediaUseCase struct {
	media media.Service
}

func NewMediaUseCase(svc media.Service) *MediaUseCase {
	return &MediaUseCase{media: svc}
}

// Enabled reports whether uploads are configured.
func (uc *MediaUseCase) Enabled() bool {
	return uc.media != nil
}

// Upload stores an image and returns its public URL.
func (uc *MediaUseCase) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if uc.media == nil {
		return "", goerr.Wrap(ErrMediaUnavailable, "cannot upload")
	}

	url, err := uc.media.Upload(ctx, filename, contentType, r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload media", goerr.V("filename", filename))
	}

	logging.From(ctx).Info("media uploaded", "url", url)
	return url, nil
}
