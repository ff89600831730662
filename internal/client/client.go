package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/logger"
)

// LoginPath is the single endpoint that goes out without a bearer token.
const LoginPath = "/auth/user/login/"

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  *TokenStore
	// OnUnauthorized fires when any non-login request comes back 401.
	// The stored token is already cleared when it runs.
	OnUnauthorized func()
}

// Client is the REST backend adapter. Paths are passed relative to BaseURL.
// Every failure surfaces as *common.Error carrying the backend detail, the
// status code and the raw decoded payload.
type Client struct {
	baseURL        string
	timeout        time.Duration
	tokens         *TokenStore
	onUnauthorized func()
	http           *fasthttp.Client
	log            *logrus.Logger
}

// New builds a Client over a shared fasthttp transport.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Tokens == nil {
		opts.Tokens = NewTokenStore()
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		timeout:        opts.Timeout,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
		http: &fasthttp.Client{
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: 30 * time.Second,
			MaxConnsPerHost:     64,
		},
		log: logger.GetAppLogger(),
	}
}

// Tokens exposes the credential store bound to this client.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// Get issues a GET and decodes the response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE. A body is sent when non-nil; some endpoints
// require one (account removal re-checks the caller's password).
func (c *Client) Delete(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if path != LoginPath {
		token := c.tokens.Token()
		if token == "" {
			return common.ErrTokenMissing
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return common.NewError(common.ErrCodeInternal,
				fmt.Sprintf("encoding %s %s body: %v", method, path, err),
				common.StatusInternalServerError, nil)
		}
		req.SetBody(data)
	}

	if err := c.send(ctx, req, resp); err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).
			WithError(err).Warn("backend unreachable")
		return transportError(err)
	}

	status := resp.StatusCode()
	respBody := append([]byte(nil), resp.Body()...)

	if status >= 200 && status < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := sonic.Unmarshal(respBody, out); err != nil {
			return common.NewError(common.ErrCodeInternal,
				fmt.Sprintf("decoding %s %s response: %v", method, path, err),
				status, string(respBody))
		}
		return nil
	}

	if status == common.StatusUnauthorized && path != LoginPath {
		c.tokens.Remove()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	c.log.WithFields(logrus.Fields{"method": method, "path": path, "status": status}).
		Warn("backend rejected request")
	return backendError(path, status, respBody)
}

// send runs the blocking fasthttp call on its own goroutine so the context
// deadline still wins when the transport hangs.
func (c *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- c.http.DoTimeout(req, resp, c.timeout)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

func transportError(err error) *common.Error {
	msg := common.MsgOperationFailed
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		msg = "Le serveur met trop de temps à répondre"
	}
	e := common.NewError(common.ErrCodeTransport, msg, 0, nil)
	e.Detail = err.Error()
	return e
}

// backendError normalizes a non-2xx response: the decoded payload rides
// along raw, and its detail/message field (when one exists) becomes the
// text shown verbatim to the user.
func backendError(path string, status int, body []byte) *common.Error {
	var payload any
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &payload); err != nil {
			payload = string(body)
		}
	}

	code := common.ErrCodeBackend
	msg := common.MsgOperationFailed
	switch {
	case status == common.StatusUnauthorized && path == LoginPath:
		code = common.ErrCodeAuthCredentials
		msg = common.MsgLoginFailed
	case status == common.StatusUnauthorized:
		code = common.ErrCodeAuthToken
		msg = common.MsgSessionExpired
	case status == common.StatusForbidden:
		msg = common.MsgForbidden
	}

	e := common.NewError(code, msg, status, payload)
	e.Detail = detailOf(payload)
	return e
}

// detailOf digs the human-readable field out of a backend error payload.
func detailOf(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"detail", "message", "error"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
