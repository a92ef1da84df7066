package httpclient

import "context"

// Poster abstracts POST calls so callers can inject mocks or different transports.
type Poster interface {
	Post(ctx context.Context, endpoint string, body any) (*Response, error)
}
