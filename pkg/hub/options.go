package hub

import "net/url"

// ResponseType selects how a response body is exposed in a Result.
type ResponseType string

const (
	// ResponseTypeJSON decodes the body into Result.Data. It is the default.
	ResponseTypeJSON ResponseType = "json"
	// ResponseTypeText keeps the body as text, see Result.Text.
	ResponseTypeText ResponseType = "text"
	// ResponseTypeBlob keeps the raw body bytes in Result.Raw.
	ResponseTypeBlob ResponseType = "blob"
	// ResponseTypeArrayBuffer is an alias of ResponseTypeBlob.
	ResponseTypeArrayBuffer ResponseType = "arraybuffer"
	// ResponseTypeStream leaves the body unread in Result.Stream.
	ResponseTypeStream ResponseType = "stream"
)

// Valid reports whether t is a known response type. The empty value is valid
// and means ResponseTypeJSON.
func (t ResponseType) Valid() bool {
	switch t {
	case "", ResponseTypeJSON, ResponseTypeText, ResponseTypeBlob, ResponseTypeArrayBuffer, ResponseTypeStream:
		return true
	default:
		return false
	}
}

// OrDefault returns t, or ResponseTypeJSON when t is empty.
func (t ResponseType) OrDefault() ResponseType {
	if t == "" {
		return ResponseTypeJSON
	}

	return t
}

// RequestOptions are per-call options. Cancellation is carried by the
// context passed to each operation.
type RequestOptions struct {
	// RequiresAuth attaches "Authorization: Bearer <token>" when the client's
	// token source yields a token.
	RequiresAuth bool
	// SubEndpoint replaces the "/{id}" path suffix, e.g. "/featured".
	SubEndpoint string
	// Params are encoded into the query string.
	Params map[string]string
	// CustomHeaders are merged after the auth header; last write wins.
	CustomHeaders map[string]string
	// ResponseType defaults to ResponseTypeJSON.
	ResponseType ResponseType
}

// NewRequestOptions returns empty options ready for chaining.
func NewRequestOptions() *RequestOptions {
	return &RequestOptions{}
}

// WithAuth marks the request as authenticated.
func (o *RequestOptions) WithAuth() *RequestOptions {
	o.RequiresAuth = true

	return o
}

// WithSubEndpoint sets the path suffix override.
func (o *RequestOptions) WithSubEndpoint(subEndpoint string) *RequestOptions {
	o.SubEndpoint = subEndpoint

	return o
}

// WithParam adds a query parameter.
func (o *RequestOptions) WithParam(key, value string) *RequestOptions {
	if o.Params == nil {
		o.Params = make(map[string]string)
	}

	o.Params[key] = value

	return o
}

// WithHeader adds a custom header.
func (o *RequestOptions) WithHeader(key, value string) *RequestOptions {
	if o.CustomHeaders == nil {
		o.CustomHeaders = make(map[string]string)
	}

	o.CustomHeaders[key] = value

	return o
}

// WithResponseType sets the response type.
func (o *RequestOptions) WithResponseType(responseType ResponseType) *RequestOptions {
	o.ResponseType = responseType

	return o
}

// Values returns the query parameters as url.Values. Nil options or empty
// params yield nil.
func (o *RequestOptions) Values() url.Values {
	if o == nil || len(o.Params) == 0 {
		return nil
	}

	values := make(url.Values, len(o.Params))
	for key, value := range o.Params {
		values.Set(key, value)
	}

	return values
}
