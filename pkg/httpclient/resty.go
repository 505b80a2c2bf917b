package httpclient

import (
	"context"
	"time"

	"stock-scoring/pkg/logger"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
	log    *logger.Logger
}

type Option func(*resty.Client)

// WithRetry retries transport errors and 429/5xx responses.
func WithRetry(count int, wait time.Duration) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(count).
			SetRetryWaitTime(wait).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
			})
	}
}

// WithHeaders sets headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *resty.Client) {
		c.SetHeaders(headers)
	}
}

func New(log *logger.Logger, baseURL string, timeout time.Duration, bearerToken string, opts ...Option) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if bearerToken != "" {
		client.SetAuthToken(bearerToken)
	}
	for _, opt := range opts {
		opt(client)
	}

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.DebugContext(resp.Request.Context(), "HTTP request completed",
			logger.StringField("method", resp.Request.Method),
			logger.StringField("url", resp.Request.URL),
			logger.IntField("status_code", resp.StatusCode()),
			logger.DurationField("elapsed", resp.Time()),
		)
		return nil
	})

	return &RestyClient{client: client, log: log}
}

func (rc *RestyClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(endpoint)
	return toBaseResponse(resp), err
}

func (rc *RestyClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().
		SetContext(ctx).
		SetBody(body)
	if result != nil {
		req.SetResult(result)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Post(endpoint)
	return toBaseResponse(resp), err
}

func toBaseResponse(resp *resty.Response) *BaseResponse {
	if resp == nil {
		return &BaseResponse{}
	}
	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}
}
