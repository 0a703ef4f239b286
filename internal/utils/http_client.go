package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so adapters can call its request
// builders directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client. A non-zero timeout is
// applied to every request.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
