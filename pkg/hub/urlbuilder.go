package hub

import "strconv"

// URLBuilder composes request URLs for one endpoint. It performs plain string
// concatenation and does not validate BaseURL.
type URLBuilder struct {
	BaseURL  string
	Endpoint string
}

// NewURLBuilder returns a builder for endpoint under baseURL.
func NewURLBuilder(baseURL, endpoint string) URLBuilder {
	return URLBuilder{BaseURL: baseURL, Endpoint: endpoint}
}

// Build returns BaseURL + Path(opts, id...) + QueryString(opts). Only the
// first id is used.
func (b URLBuilder) Build(opts *RequestOptions, id ...int64) string {
	return b.BaseURL + b.Path(opts, id...) + QueryString(opts)
}

// Path returns Endpoint followed by opts.SubEndpoint, or "/{id}" when no
// sub-endpoint is set and an id is given.
func (b URLBuilder) Path(opts *RequestOptions, id ...int64) string {
	return b.Endpoint + pathSuffix(opts, id...)
}

func pathSuffix(opts *RequestOptions, id ...int64) string {
	if opts != nil && opts.SubEndpoint != "" {
		return opts.SubEndpoint
	}

	if len(id) > 0 {
		return "/" + strconv.FormatInt(id[0], 10)
	}

	return ""
}

// QueryString returns "?" followed by the URL-encoded params, or "" when
// there are none. Key order carries no meaning.
func QueryString(opts *RequestOptions) string {
	values := opts.Values()
	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}
