package hub

import (
	"io"
	"net/http"
)

// Result wraps a successful response. Which fields are populated depends on
// the request's ResponseType:
//   - json: Data is decoded from Raw (Raw empty leaves Data at its zero value)
//   - text, blob, arraybuffer: Raw holds the body and so does Data, which
//     must be a string or byte slice type (ErrResponseTypeMismatch otherwise)
//   - stream: Stream holds the unread body and must be closed by the caller
type Result[T any] struct {
	StatusCode int
	Headers    http.Header
	Data       T
	Raw        []byte
	Stream     io.ReadCloser
}

// Text returns the raw body as a string.
func (r *Result[T]) Text() string {
	return string(r.Raw)
}

// Close closes Stream if present.
func (r *Result[T]) Close() error {
	if r.Stream == nil {
		return nil
	}

	return r.Stream.Close()
}
