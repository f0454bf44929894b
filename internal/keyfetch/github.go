package keyfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kimor79/jass/internal/keys"
)

// DefaultAPIBase is the public GitHub API endpoint.
const DefaultAPIBase = "https://api.github.com"

// githubKey is one entry of the /users/<name>/keys response.
type githubKey struct {
	ID  int64  `json:"id"`
	Key string `json:"key"`
}

// Client fetches the public keys users have published on GitHub or a
// compatible key directory.
type Client struct {
	// APIBase is the directory root, without a trailing slash.
	APIBase string

	// HTTP performs the requests with transient-failure retries. Tests
	// tune its backoff directly.
	HTTP *retryablehttp.Client
}

// NewClient returns a Client against the given API base URL. An empty
// base selects the public GitHub API.
func NewClient(apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil

	return &Client{
		APIBase: strings.TrimRight(apiBase, "/"),
		HTTP:    httpClient,
	}
}

// ForUser fetches the keys user has published, one RawKey per key, with
// provenance "github:<user>#<id>". A user with no published keys yields
// an empty result without error; an unknown user is an error.
func (c *Client) ForUser(ctx context.Context, user string) ([]keys.RawKey, error) {
	endpoint := fmt.Sprintf("%s/users/%s/keys", c.APIBase, url.PathEscape(user))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keys for %s: %w", user, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("github user not found: %s", user)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, endpoint, strings.TrimSpace(string(body)))
	}

	var published []githubKey
	if err := json.NewDecoder(resp.Body).Decode(&published); err != nil {
		return nil, fmt.Errorf("failed to parse key response for %s: %w", user, err)
	}

	raw := make([]keys.RawKey, 0, len(published))
	for _, k := range published {
		raw = append(raw, keys.RawKey{
			Data:   []byte(k.Key + "\n"),
			Source: fmt.Sprintf("github:%s#%d", user, k.ID),
		})
	}
	return raw, nil
}
