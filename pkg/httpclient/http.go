package httpclient

import (
	"context"
	"net/http"
)

type BaseResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// IsSuccess reports a 2xx status.
func (r *BaseResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient is the outbound transport used by repositories. endpoint may be a path relative to the
// client's base URL or an absolute URL.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error)
	Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error)
}
