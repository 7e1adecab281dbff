package petservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// HTTPClient talks to a pet service gateway over JSON/HTTP.
// Reads are retried with exponential backoff; mutations are sent once.
type HTTPClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewHTTPClient creates a client for the gateway at baseURL
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

type createPetRequest struct {
	Name string `json:"name"`
}

type coinsResponse struct {
	Coins int64 `json:"coins"`
}

type updateCoinsRequest struct {
	Delta int64 `json:"delta"`
}

func ownerPath(route, owner string) string {
	return strings.Replace(route, "{owner}", url.PathEscape(owner), 1)
}

func (c *HTTPClient) backoff(attempt int) time.Duration {
	return c.RetryDelay << (attempt - 1)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeJSON)
	if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
	}
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return c.Client.Do(req)
}

// doRequest sends one request. With retry set, transport failures and 5xx responses are
// retried MaxRetries times with doubling delays.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, retry bool) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
	}

	retries := 0
	if retry {
		retries = c.MaxRetries
	}

	log := logger.FromContext(ctx)
	var lastErr error
	for attempt := range retries + 1 {
		if attempt > 0 {
			delay := c.backoff(attempt)
			log.Info(LogMsgRetryingRequest, "attempt", attempt, "path", path, "delay", delay)
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, ctx.Err())
			}
		}

		resp, err := c.send(ctx, method, path, payload)
		switch {
		case err != nil:
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", path)
		case !retry || resp.StatusCode < http.StatusInternalServerError:
			return resp, nil
		default:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("gateway returned %d", resp.StatusCode)
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt, "path", path)
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, lastErr)
}

// decode reads a success body into out, or turns an error body into a domain error
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: malformed response: %v", domain.ErrRemoteUnavailable, err)
		}
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errResp); err != nil || errResp.Code == "" {
		return fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	if sentinel := errorForCode(errResp.Code); sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, errResp.Error)
	}
	return fmt.Errorf("%w: %s", domain.ErrRemoteUnavailable, errResp.Error)
}

func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any, retry bool) (T, error) {
	var out T
	resp, err := c.doRequest(ctx, method, path, body, retry)
	if err != nil {
		return out, err
	}
	err = decode(resp, &out)
	return out, err
}

func (c *HTTPClient) petCall(ctx context.Context, method, path string, body any, retry bool) (*domain.Pet, error) {
	pet, err := call[domain.Pet](ctx, c, method, path, body, retry)
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *HTTPClient) CreatePet(ctx context.Context, owner, name string) (*domain.Pet, error) {
	return c.petCall(ctx, http.MethodPost, ownerPath(RoutePet, owner), createPetRequest{Name: name}, false)
}

func (c *HTTPClient) GetPet(ctx context.Context, owner string) (*domain.Pet, error) {
	pet, err := c.petCall(ctx, http.MethodGet, ownerPath(RoutePet, owner), nil, true)
	if errors.Is(err, domain.ErrPetNotFound) {
		return nil, nil
	}
	return pet, err
}

func (c *HTTPClient) GetCoins(ctx context.Context, owner string) (int64, error) {
	out, err := call[coinsResponse](ctx, c, http.MethodGet, ownerPath(RouteCoins, owner), nil, true)
	return out.Coins, err
}

func (c *HTTPClient) action(ctx context.Context, owner string, kind domain.ActionKind) (*domain.Pet, error) {
	path := strings.Replace(ownerPath(RouteAction, owner), "{kind}", string(kind), 1)
	return c.petCall(ctx, http.MethodPost, path, nil, false)
}

func (c *HTTPClient) Feed(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.action(ctx, owner, domain.ActionFeed)
}

func (c *HTTPClient) Play(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.action(ctx, owner, domain.ActionPlay)
}

func (c *HTTPClient) Work(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.action(ctx, owner, domain.ActionWork)
}

func (c *HTTPClient) Sleep(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.action(ctx, owner, domain.ActionSleep)
}

func (c *HTTPClient) Exercise(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.action(ctx, owner, domain.ActionExercise)
}

func (c *HTTPClient) MintGlasses(ctx context.Context, owner string) (*domain.Pet, error) {
	return c.petCall(ctx, http.MethodPost, ownerPath(RouteGlasses, owner), nil, false)
}

func (c *HTTPClient) UpdateCoins(ctx context.Context, owner string, delta int64) (int64, error) {
	out, err := call[coinsResponse](ctx, c, http.MethodPost, ownerPath(RouteCoins, owner), updateCoinsRequest{Delta: delta}, false)
	return out.Coins, err
}

var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*Simulator)(nil)
)

// CheckHealth probes the gateway without retries
func (c *HTTPClient) CheckHealth(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, RouteHealth, nil, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}
