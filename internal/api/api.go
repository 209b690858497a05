package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rig-cli/internal/model"
)

// DefaultHost is the hosted backend the rig talks to when no host override
// is configured.
const DefaultHost = "api.twitch.tv"

// Client wraps the rig's three backend lookups. All calls are one-shot:
// retry policy, if any, belongs to the caller.
type Client struct {
	Host string
	HTTP *http.Client
}

func NewClient(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		Host: host,
		HTTP: &http.Client{Timeout: 30 * time.Second},
	}
}

// User is the backend's user record, as much of it as the rig reads.
type User struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

type usersEnvelope struct {
	Data []User `json:"data"`
}

// FetchUserByName resolves a login name to a user record.
func (c *Client) FetchUserByName(ctx context.Context, clientID, name string) (User, error) {
	u := c.baseURL() + "/helix/users?login=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Client-ID", clientID)

	var env usersEnvelope
	if err := c.doJSON(req, &env); err != nil {
		return User{}, fmt.Errorf("fetch user %q: %w", name, err)
	}
	if len(env.Data) == 0 {
		return User{}, fmt.Errorf("fetch user %q: not found", name)
	}
	return env.Data[0], nil
}

// FetchExtensionManifest fetches the manifest for one extension version.
// bearer is a rig-role credential signed with the project secret.
func (c *Client) FetchExtensionManifest(ctx context.Context, clientID, version, bearer string) (model.Manifest, error) {
	u := c.baseURL() + "/extensions/" + url.PathEscape(clientID) + "/" + url.PathEscape(version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Manifest{}, err
	}
	req.Header.Set("Client-ID", clientID)
	req.Header.Set("Authorization", "Bearer "+bearer)

	body, err := c.do(req)
	if err != nil {
		return model.Manifest{}, fmt.Errorf("fetch manifest: %w", err)
	}
	var m model.Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return model.Manifest{}, fmt.Errorf("fetch manifest: decode: %w", err)
	}
	m.Raw = json.RawMessage(body)
	return m, nil
}

// FetchUserInfo resolves an OAuth access token to the signed-in user.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/helix/users", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var env usersEnvelope
	if err := c.doJSON(req, &env); err != nil {
		return User{}, fmt.Errorf("fetch user info: %w", err)
	}
	if len(env.Data) == 0 {
		return User{}, fmt.Errorf("fetch user info: empty response")
	}
	return env.Data[0], nil
}

func (c *Client) baseURL() string {
	host := strings.TrimRight(c.Host, "/")
	if host == "" {
		host = DefaultHost
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	httpc := c.HTTP
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func (c *Client) doJSON(req *http.Request, v any) error {
	body, err := c.do(req)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
