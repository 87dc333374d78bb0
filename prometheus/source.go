package prometheus

import (
	"context"

	"github.com/fwojciec/leanscrap"
)

var _ leanscrap.DocumentSource = (*Source)(nil)

// Source counts fetches by status class and the bytes they returned.
type Source struct {
	next    leanscrap.DocumentSource
	metrics *Metrics
}

// NewSource wraps next with metrics.
func NewSource(next leanscrap.DocumentSource, metrics *Metrics) *Source {
	return &Source{next: next, metrics: metrics}
}

func (s *Source) Fetch(ctx context.Context, url string) (*leanscrap.Response, error) {
	resp, err := s.next.Fetch(ctx, url)
	if err != nil {
		s.metrics.fetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.fetchesTotal.WithLabelValues(StatusClass(resp.StatusCode)).Inc()
	s.metrics.fetchBytes.Add(float64(len(resp.Content)))
	return resp, nil
}

func (s *Source) Close() error {
	return s.next.Close()
}

// StatusClass buckets an HTTP status code into "2xx", "3xx" and so on.
func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 600:
		return string(rune('0'+code/100)) + "xx"
	default:
		return "unknown"
	}
}
