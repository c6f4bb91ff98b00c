package api

import (
	"context"
	"net/http"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/infrastructure/session"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client is the shared HTTP transport to the showroom backend. It injects
// the bearer token from the session on every request and tears the session
// down when the server answers 401.
type Client struct {
	http    *resty.Client
	session *session.Session
	logger  *zap.Logger
}

// NewClient creates a transport bound to baseURL and the given session.
func NewClient(baseURL string, timeout time.Duration, sess *session.Session, logger *zap.Logger) *Client {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:    hc,
		session: sess,
		logger:  logger,
	}
}

// Close releases transport resources.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.session.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check normalizes transport errors and non-2xx responses into the
// application error taxonomy. A 401 additionally tears the session down:
// the in-flight operation aborts as a forced logout.
func (c *Client) check(res *resty.Response, err error, action string) error {
	if err != nil {
		c.logger.Error("request failed", zap.String("action", action), zap.Error(err))
		return apperror.NewSubmissionError("could not reach the sales server", err)
	}

	switch {
	case res.StatusCode() == http.StatusUnauthorized:
		c.logger.Warn("session rejected by server, logging out", zap.String("action", action))
		if terr := c.session.Teardown(); terr != nil {
			c.logger.Error("session teardown failed", zap.Error(terr))
		}
		return apperror.NewUnauthorizedError("session expired, please log in again")
	case res.StatusCode() == http.StatusNotFound:
		return apperror.NewNotFoundError(action)
	case res.IsError():
		c.logger.Error("server rejected request",
			zap.String("action", action),
			zap.Int("status", res.StatusCode()),
		)
		return apperror.NewSubmissionError("the sales server rejected the request", nil)
	}

	return nil
}
