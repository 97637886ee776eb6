package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/integrations"
)

const requestTimeout = 30 * time.Second

// Message is one webhook post: a text caption plus a PNG attachment.
type Message struct {
	Content  string
	Filename string
	Image    []byte
}

// Webhook delivers messages to a single webhook URL.
type Webhook struct {
	*integrations.Client
	url string
}

// NewWebhook creates a webhook client for url.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		Client: integrations.NewClient(requestTimeout, nil),
		url:    url,
	}
}

// Name identifies the delivery target in logs and hooks.
func (w *Webhook) Name() string { return "discord" }

// Send posts msg. Transient failures are retried; a post that still fails
// returns a DELIVERY_FAILED error.
func (w *Webhook) Send(ctx context.Context, msg Message) error {
	body, contentType, err := encodeMessage(msg)
	if err != nil {
		return err
	}

	_, err = w.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "post webhook")
	}
	return nil
}

type payload struct {
	Content string `json:"content"`
}

// encodeMessage builds the multipart body once so every retry resends the
// same bytes.
func encodeMessage(msg Message) ([]byte, string, error) {
	if len(msg.Image) == 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "message has no image")
	}
	if err := errors.ValidateFilename(msg.Filename); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	payloadJSON, err := json.Marshal(payload{Content: msg.Content})
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "encode payload")
	}
	if err := mw.WriteField("payload_json", string(payloadJSON)); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "write payload")
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename=%q`, msg.Filename))
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "create attachment")
	}
	if _, err := part.Write(msg.Image); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "write attachment")
	}
	if err := mw.Close(); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "close multipart")
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
