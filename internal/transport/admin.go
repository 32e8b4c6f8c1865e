package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// AdminClient carries the token the admin guard validated server-side
// instead of reading the script-readable cookie, so admin calls keep working
// even if page script can no longer be trusted with the token. Built per
// request from guard.AdminToken.
type AdminClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewAdminClient(baseURL, token string, log zerolog.Logger) *AdminClient {
	return &AdminClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// Do issues method path with the held token. Auth failures are logged only;
// the admin guard owns the redirect on the next navigation.
func (c *AdminClient) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("admin API call rejected")
	}

	return resp, nil
}
