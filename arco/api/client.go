package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco"
	"github.com/arco365/go-arco-pos/arco/util"
)

var logger = log.WithField("component", "arco.api")

// TokenSource yields the current session token, if a valid one exists.
type TokenSource interface {
	Token() (string, bool)
}

type Client interface {
	GetJson(ctx context.Context, endpoint string, result interface{}) error
	PostJson(ctx context.Context, endpoint string, body interface{}, result interface{}) error
	PostJsonNoAuth(ctx context.Context, endpoint string, body interface{}, result interface{}) error
}

type client struct {
	rest         *resty.Client
	baseURL      string
	tokens       TokenSource
	onAuthReject func()
}

type Option func(*client)

// WithAuthRejectHook registers a callback fired on every 401 response,
// whichever call produced it. The hook runs before the error is returned.
func WithAuthRejectHook(fn func()) Option {
	return func(c *client) { c.onAuthReject = fn }
}

// WithBaseURL overrides the environment URL, for on-premise ERP installs.
func WithBaseURL(url string) Option {
	return func(c *client) { c.baseURL = url }
}

// New builds a client for the given environment. The http.Client carries
// the request timeout; tokens supplies the Authorization header value.
func New(env arco.Environment, httpClient *http.Client, tokens TokenSource, opts ...Option) Client {
	restyClient := resty.NewWithClient(httpClient).
		SetHeader("Content-Type", "application/json")

	c := &client{rest: restyClient, baseURL: env.BaseURL(), tokens: tokens}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) GetJson(ctx context.Context, endpoint string, result interface{}) error {

	token, ok := c.tokens.Token()
	if !ok {
		return arco.ErrUnauthorized
	}

	r := c.rest.R()
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}

	resp, err := r.
		SetContext(ctx).
		SetHeader("Authorization", token).
		SetResult(result).
		Get(c.baseURL + endpoint)

	c.printTraceInfo(endpoint, err, resp)
	return c.checkError(resp, err)
}

func (c *client) PostJson(ctx context.Context, endpoint string, body interface{}, result interface{}) error {

	token, ok := c.tokens.Token()
	if !ok {
		return arco.ErrUnauthorized
	}

	r := c.rest.R()
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}

	resp, err := r.
		SetContext(ctx).
		SetHeader("Authorization", token).
		SetBody(body).
		SetResult(result).
		Post(c.baseURL + endpoint)

	c.printTraceInfo(endpoint, err, resp)
	return c.checkError(resp, err)
}

func (c *client) PostJsonNoAuth(ctx context.Context, endpoint string, body interface{}, result interface{}) error {

	r := c.rest.R()
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}

	resp, err := r.
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(c.baseURL + endpoint)

	c.printTraceInfo(endpoint, err, resp)
	return c.checkError(resp, err)
}

func (c *client) checkError(resp *resty.Response, err error) error {
	if err != nil {
		// transport failure or unreadable body, no usable status
		return &arco.RequestError{Err: err}
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized && c.onAuthReject != nil {
			logger.Debug("authentication rejected by remote, firing hook")
			c.onAuthReject()
		}

		body := resp.String()
		var errorMap map[string]any
		if body != "" {
			_ = json.Unmarshal([]byte(body), &errorMap)
		}

		return &arco.RequestError{
			StatusCode:   resp.StatusCode(),
			Body:         body,
			ErrorDetails: errorMap,
		}
	}
	return nil
}

func (c *client) printTraceInfo(endpoint string, err error, resp *resty.Response) {

	if !util.HttpTraceEnabled() || resp == nil {
		return
	}

	logger.Debug("Response Info:")
	logger.Debug("  URL        : ", c.baseURL+endpoint)
	logger.Debug("  Error      : ", err)
	logger.Debug("  Status Code: ", resp.StatusCode())
	logger.Debug("  Status     : ", resp.Status())
	logger.Debug("  Time       : ", resp.Time())
	logger.Debug("  Received At: ", resp.ReceivedAt())

	ti := resp.Request.TraceInfo()
	logger.Debug("Request Trace Info:")
	logger.Debug("  DNSLookup     : ", ti.DNSLookup)
	logger.Debug("  ConnTime      : ", ti.ConnTime)
	logger.Debug("  ServerTime    : ", ti.ServerTime)
	logger.Debug("  ResponseTime  : ", ti.ResponseTime)
	logger.Debug("  TotalTime     : ", ti.TotalTime)
	logger.Debug("  IsConnReused  : ", ti.IsConnReused)
}
