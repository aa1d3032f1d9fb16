package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/config"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"
	userAgent      = "devconnector-profile"
	reposPerPage   = "5"
	reposSort      = "created:asc"
	maxBodyBytes   = 4 << 20
)

// Client lists public repositories through the GitHub REST API. It is safe for
// concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       logger.Logger
}

func NewClient(cfg config.Config, log logger.Logger) *Client {
	baseURL := cfg.Github.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Github.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     cfg.Github.ClientID,
		clientSecret: cfg.Github.ClientSecret,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: log,
	}
}

func (c *Client) reposURL(handle string) string {
	q := url.Values{}
	q.Set("per_page", reposPerPage)
	q.Set("sort", reposSort)
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
	}
	if c.clientSecret != "" {
		q.Set("client_secret", c.clientSecret)
	}
	return fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(handle), q.Encode())
}

// FetchPublicRepos returns the five oldest public repositories of handle. Any status
// other than 200 becomes an upstream error carrying that status.
func (c *Client) FetchPublicRepos(ctx context.Context, handle string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reposURL(handle), nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream("github", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.logger.Warn("GitHub returned non-OK status", zap.String("handle", handle), zap.Int("status", resp.StatusCode))
		return nil, apperror.NewUpstream("github", resp.StatusCode, nil)
	}

	var repos []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&repos); err != nil {
		return nil, apperror.NewUpstream("github", resp.StatusCode, err)
	}
	return repos, nil
}
