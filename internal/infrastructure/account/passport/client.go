// Package passport verifies bearer tokens against the account service's
// introspection endpoint and resolves them to profile principals.
package passport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/birdieboard/birdieboard/internal/domain/profile"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
	"github.com/birdieboard/birdieboard/internal/platform/resilience"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		breaker:       breaker,
		logger:        logger,
	}
}

func (c *Client) allow() error {
	if c.breaker == nil {
		return nil
	}
	return c.breaker.Allow()
}

func (c *Client) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active    bool   `json:"active"`
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (profile.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return profile.Principal{}, errors.Mark(errors.New("token is required"), usecase.ErrUnauthorized)
	}

	if err := c.allow(); err != nil {
		return profile.Principal{}, errors.Mark(errors.Wrap(err, "account service unavailable"), usecase.ErrDependencyUnavailable)
	}

	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return profile.Principal{}, errors.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return profile.Principal{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return profile.Principal{}, errors.Mark(errors.Wrap(err, "request token introspection"), usecase.ErrDependencyUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.recordSuccess()
		return profile.Principal{}, errors.Mark(errors.New("introspection denied"), usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.recordFailure()
		return profile.Principal{}, errors.Wrap(err, "read introspect response")
	}
	if resp.StatusCode != http.StatusOK {
		c.recordFailure()
		c.logger.WarnContext(ctx, "passport introspection non-200", "status_code", resp.StatusCode)
		return profile.Principal{}, errors.Mark(
			errors.Newf("introspection failed with status %d", resp.StatusCode),
			usecase.ErrDependencyUnavailable,
		)
	}
	c.recordSuccess()

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return profile.Principal{}, errors.Wrap(err, "unmarshal introspect response")
	}
	if !decoded.Active {
		return profile.Principal{}, errors.Mark(errors.New("inactive token"), usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.ProfileID) == "" {
		return profile.Principal{}, errors.New("invalid introspect response: profile_id is empty")
	}

	return profile.Principal{
		ProfileID: decoded.ProfileID,
		Email:     decoded.Email,
	}, nil
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
