package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const LoginPath = "/login"

const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID makes every API call made under ctx carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Credentials is the slice of the session the gateway needs.
type Credentials interface {
	Token() string
	Revoke(ctx context.Context, token string) (bool, error)
}

type Notifier interface {
	Error(message string)
}

type Navigator interface {
	Navigate(ctx context.Context, path string)
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	CSRFCookieName string
	Transport      http.RoundTripper
}

// Client is the single HTTP client every resource call goes through.
type Client struct {
	baseURL    string
	origin     *url.URL
	http       *http.Client
	csrfCookie string
	creds      Credentials
	notifier   Notifier
	navigator  Navigator
	log        zerolog.Logger
}

func New(cfg Config, creds Credentials, notifier Notifier, navigator Navigator, log zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	origin, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cookieName := cfg.CSRFCookieName
	if cookieName == "" {
		cookieName = "csrftoken"
	}

	return &Client{
		baseURL: base,
		origin:  origin,
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: cfg.Transport,
		},
		csrfCookie: cookieName,
		creds:      creds,
		notifier:   notifier,
		navigator:  navigator,
		log:        log,
	}, nil
}

// Jar exposes the cookie jar the CSRF token is read from.
func (c *Client) Jar() http.CookieJar {
	return c.http.Jar
}

type Option func(*requestOptions)

type requestOptions struct {
	query  url.Values
	header http.Header
}

func WithQuery(q url.Values) Option {
	return func(o *requestOptions) {
		o.query = q
	}
}

func WithHeader(key, value string) Option {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Set(key, value)
	}
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do sends one request. Every failure comes back as *Error after its side
// effect (notice, session clear, redirect) has run exactly once.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...Option) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	token := c.creds.Token()
	req, err := c.newRequest(ctx, method, path, body, token, o)
	if err != nil {
		return c.fail(ctx, method, path, token, &Error{Class: ClassRequest, Err: err})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		class := ClassNetwork
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			class = ClassCanceled
		}
		return c.fail(ctx, method, path, token, &Error{Class: class, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(ctx, method, path, token, &Error{Class: ClassNetwork, Status: resp.StatusCode, Err: err})
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, method, path, token, statusError(resp.StatusCode, data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return c.fail(ctx, method, path, token, &Error{
			Class:  ClassHTTP,
			Status: resp.StatusCode,
			Body:   data,
			Err:    fmt.Errorf("decode response: %w", err),
		})
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, token string, o requestOptions) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	if len(o.query) > 0 {
		u.RawQuery = o.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range o.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if csrf := c.csrfToken(u); csrf != "" {
		req.Header.Set("X-CSRFToken", csrf)
	}
	return req, nil
}

func (c *Client) csrfToken(u *url.URL) string {
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == c.csrfCookie {
			return cookie.Value
		}
	}
	return ""
}
