package provider

import (
	"errors"
	"fmt"
)

// ErrPricesNotReady is returned when the upstream has not finished computing
// prices after the bounded completion poll. Callers should retry the whole
// search later; this maps to HTTP 202, not an error response.
var ErrPricesNotReady = errors.New("upstream price computation not completed")

// UpstreamError carries a non-success upstream status, its verbatim body,
// and the body's content type so the API layer can pass all three through
// unchanged.
type UpstreamError struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
