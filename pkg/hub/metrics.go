package hub

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsStartKey = "metrics_start_time"

// MetricsCollector records API call counts and latencies as Prometheus
// metrics labelled by method and resource endpoint. Requests made outside a
// resource are labelled "other" so the label set stays bounded.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetricsCollector creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetricsCollector(reg prometheus.Registerer) (*MetricsCollector, error) {
	collector := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ps2hub",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of API requests by method, endpoint and status code",
		}, []string{"method", "endpoint", "code"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ps2hub",
			Subsystem: "client",
			Name:      "errors_total",
			Help:      "Total number of failed API requests",
		}, []string{"method", "endpoint"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ps2hub",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{collector.requests, collector.errors, collector.latency} {
			err := reg.Register(c)
			if err != nil {
				return nil, err
			}
		}
	}

	return collector, nil
}

// Requests returns the request counter.
func (m *MetricsCollector) Requests() *prometheus.CounterVec {
	return m.requests
}

// Errors returns the error counter.
func (m *MetricsCollector) Errors() *prometheus.CounterVec {
	return m.errors
}

// Latency returns the latency histogram.
func (m *MetricsCollector) Latency() *prometheus.HistogramVec {
	return m.latency
}

// MetricsRequestInterceptor records request start time.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		code := strconv.Itoa(resp.StatusCode)
		if resp.StatusCode == 0 {
			code = "none"
		}

		endpoint := endpointLabel(req)

		collector.requests.WithLabelValues(req.Method, endpoint, code).Inc()

		if startTime, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			collector.latency.WithLabelValues(req.Method, endpoint).Observe(time.Since(startTime).Seconds())
		}

		if resp.Error != nil || resp.StatusCode >= 400 {
			collector.errors.WithLabelValues(req.Method, endpoint).Inc()
		}

		return nil
	}
}

func endpointLabel(req *Request) string {
	if req.Endpoint == "" {
		return "other"
	}

	return req.Endpoint
}

// Interceptors returns the request/response interceptor pair for the chain.
func (m *MetricsCollector) Interceptors() (RequestInterceptor, ResponseInterceptor) {
	return MetricsRequestInterceptor(m), MetricsResponseInterceptor(m)
}
