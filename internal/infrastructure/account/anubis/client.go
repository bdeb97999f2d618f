package anubis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/user"
	"github.com/riskibarqy/club-manager/internal/platform/cache"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/resilience"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

const maxResponseBytes = 1 << 20

var errAnubisTransient = errors.New("anubis transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Retry          resilience.RetryConfig
	// PrincipalCacheTTL <= 0 disables principal caching.
	PrincipalCacheTTL        time.Duration
	PrincipalCacheMaxEntries int
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	policy        *resilience.Policy[user.Principal]
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("anubis")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var principals *cache.Store
	if cfg.PrincipalCacheTTL > 0 {
		principals = cache.NewBoundedStore(cfg.PrincipalCacheTTL, cfg.PrincipalCacheMaxEntries)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		policy: resilience.NewPolicy[user.Principal](
			"anubis",
			cfg.CircuitBreaker,
			cfg.Retry,
			isTransientFailure,
			logger,
		),
		principals: principals,
		logger:     logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return cache.Load(ctx, c.principals, "principal:"+hashToken(token), func(ctx context.Context) (user.Principal, error) {
		principal, err := c.policy.Get(ctx, func(ctx context.Context) (user.Principal, error) {
			return c.introspect(ctx, token)
		})
		if err != nil {
			return user.Principal{}, c.mapError(ctx, err)
		}
		return principal, nil
	})
}

// CircuitState exposes the breaker state for health reporting.
func (c *Client) CircuitState() resilience.CircuitState {
	return c.policy.State()
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return user.Principal{}, ctx.Err()
		}
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", errAnubisTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errAnubisTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return user.Principal{}, fmt.Errorf("%w: status %d", errAnubisTransient, resp.StatusCode)
	default:
		// 403 means the admin key was rejected; the caller's token is not at fault.
		c.logger.WarnContext(ctx, "anubis introspection rejected", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: anubis introspection status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: decode introspect response: %v", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", usecase.ErrDependencyUnavailable)
	}

	return decoded.toPrincipal(), nil
}

func (c *Client) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable)
	case errors.Is(err, errAnubisTransient):
		c.logger.WarnContext(ctx, "anubis introspection failed", "error", err)
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return err
	}
}

func isTransientFailure(_ user.Principal, err error) bool {
	return errors.Is(err, errAnubisTransient)
}
