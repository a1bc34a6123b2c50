package media

import (
	"context"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// MaxUploadBytes bounds a single uploaded file. The HTTP layer enforces it.
const MaxUploadBytes = 10 << 20

var allowedContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service stores uploaded images and returns their public URL
type Service interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type client struct {
	storage   *storage.Client
	bucket    string
	prefix    string
	publicURL string
}

type Option func(*client)

// WithPrefix sets the object name prefix. Default is "media".
func WithPrefix(prefix string) Option {
	return func(c *client) {
		c.prefix = strings.Trim(prefix, "/")
	}
}

// WithPublicURL sets the base URL objects are served from, e.g. a CDN in front of the bucket
func WithPublicURL(base string) Option {
	return func(c *client) {
		c.publicURL = strings.TrimRight(base, "/")
	}
}

// New creates a Cloud Storage backed media service.
func New(ctx context.Context, bucket string, opts []Option, clientOpts ...option.ClientOption) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("storage bucket is required")
	}

	sc, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	c := &client{
		storage:   sc,
		bucket:    bucket,
		prefix:    "media",
		publicURL: "https://storage.googleapis.com/" + bucket,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ext, err := extensionFor(filename, contentType)
	if err != nil {
		return "", err
	}

	name := objectName(c.prefix, uuid.NewString(), ext)
	w := c.storage.Bucket(c.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object", goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("object", name), goerr.V("bucket", c.bucket))
	}

	return c.publicURL + "/" + (&url.URL{Path: name}).EscapedPath(), nil
}

// extensionFor accepts only image types and picks the stored file extension.
func extensionFor(filename, contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", goerr.Wrap(model.ErrValidation, "invalid content type", goerr.V("content_type", contentType))
	}

	ext, ok := allowedContentTypes[mediaType]
	if !ok {
		return "", goerr.Wrap(model.ErrValidation, "unsupported media type", goerr.V("content_type", mediaType))
	}

	if given := strings.ToLower(path.Ext(filename)); given == ".jpeg" && ext == ".jpg" {
		return given, nil
	}
	return ext, nil
}

func objectName(prefix, id, ext string) string {
	if prefix == "" {
		return id + ext
	}
	return prefix + "/" + id + ext
}
