package mock

import (
	"context"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of leanscrap.DocumentSource.
type DocumentSource struct {
	FetchFn func(ctx context.Context, url string) (*leanscrap.Response, error)
	CloseFn func() error
}

func (s *DocumentSource) Fetch(ctx context.Context, url string) (*leanscrap.Response, error) {
	return s.FetchFn(ctx, url)
}

func (s *DocumentSource) Close() error {
	return s.CloseFn()
}
