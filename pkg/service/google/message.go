package google

import (
	"bytes"
	"encoding/base64"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// encodeMessage renders msg as an RFC 5322 message in the base64url form Gmail expects.
// An empty From is left out and Gmail fills in the account address.
func encodeMessage(msg *model.MailMessage, now time.Time) (string, error) {
	if msg.To == "" {
		return "", goerr.New("mail recipient is required")
	}

	var h mail.Header
	h.SetDate(now)
	if msg.From != "" {
		h.SetAddressList("From", []*mail.Address{{Address: msg.From}})
	}
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create mail writer")
	}
	if _, err := io.WriteString(w, msg.HTMLBody); err != nil {
		return "", goerr.Wrap(err, "failed to write mail body")
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finish mail")
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}
