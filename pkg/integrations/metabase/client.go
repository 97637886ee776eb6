package metabase

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/integrations"
)

const requestTimeout = 15 * time.Second

// Client fetches rows from one card query URL.
type Client struct {
	*integrations.Client
	url string
}

// NewClient creates a client for the card query at url, authenticating with
// an API key and a Basic auth credential (already base64 encoded).
func NewClient(url, apiKey, basicAuth string) *Client {
	return &Client{
		Client: integrations.NewClient(requestTimeout, map[string]string{
			"x-api-key":     apiKey,
			"Authorization": "Basic " + basicAuth,
		}),
		url: url,
	}
}

// Name identifies the source in logs and hooks.
func (c *Client) Name() string { return "metabase" }

type queryResponse struct {
	Data struct {
		Rows [][]any `json:"rows"`
	} `json:"data"`
}

// Fetch runs the query and returns its rows as strings.
func (c *Client) Fetch(ctx context.Context) ([][]string, error) {
	body, err := c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode metabase response")
	}

	rows := make([][]string, len(resp.Data.Rows))
	for i, raw := range resp.Data.Rows {
		rows[i] = make([]string, len(raw))
		for j, v := range raw {
			rows[i][j] = Stringify(v)
		}
	}
	return rows, nil
}

// Stringify renders a decoded JSON scalar the way it should appear in a
// cell: null is empty, numbers keep their literal form, nested values are
// re-encoded as JSON.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
