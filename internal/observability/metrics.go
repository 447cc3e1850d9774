package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	PrometheusPath string `mapstructure:"prometheus_path"`
}

// DefaultMetricsConfig returns default metrics configuration
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled:        true,
		ServiceName:    "user-data-service",
		PrometheusPath: "/metrics",
	}
}

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

type dbInstruments struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// MetricsProvider exports OpenTelemetry metrics through a private Prometheus
// registry. A disabled provider records nothing and serves 404 on its handler.
type MetricsProvider struct {
	config        *MetricsConfig
	meterProvider *sdkmetric.MeterProvider
	handler       http.Handler

	http *httpInstruments
	db   *dbInstruments
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(config *MetricsConfig, logger *zap.Logger) (*MetricsProvider, error) {
	if !config.Enabled {
		return &MetricsProvider{config: config}, nil
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(config.ServiceName)
	httpInst, err := newHTTPInstruments(meter)
	if err != nil {
		return nil, err
	}
	dbInst, err := newDBInstruments(meter)
	if err != nil {
		return nil, err
	}

	logger.Info("OpenTelemetry metrics initialized",
		zap.String("service", config.ServiceName),
		zap.String("prometheus_path", config.PrometheusPath),
	)

	return &MetricsProvider{
		config:        config,
		meterProvider: meterProvider,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		http:          httpInst,
		db:            dbInst,
	}, nil
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	requests, err := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	inFlight, err := meter.Int64UpDownCounter("http_requests_in_flight",
		metric.WithDescription("Number of HTTP requests being served"))
	if err != nil {
		return nil, err
	}
	return &httpInstruments{requests: requests, duration: duration, inFlight: inFlight}, nil
}

func newDBInstruments(meter metric.Meter) (*dbInstruments, error) {
	operations, err := meter.Int64Counter("db_operations_total",
		metric.WithDescription("Total number of database operations"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("db_operation_duration_seconds",
		metric.WithDescription("Database operation duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &dbInstruments{operations: operations, duration: duration}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (mp *MetricsProvider) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if mp.http == nil {
		return
	}

	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.Int(statusCode),
	)
	mp.http.requests.Add(ctx, 1, attrs)
	mp.http.duration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDBOperation records a database operation metric.
// The operation name is prefixed with the access variant, e.g. "native.insert".
func (mp *MetricsProvider) RecordDBOperation(ctx context.Context, operation string, success bool, duration time.Duration) {
	if mp.db == nil {
		return
	}

	outcome := "ok"
	if !success {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		AttrDBSystem.String("mongodb"),
		AttrDBOperation.String(operation),
		AttrOutcome.String(outcome),
	)
	mp.db.operations.Add(ctx, 1, attrs)
	mp.db.duration.Record(ctx, duration.Seconds(), attrs)
}

// TrackInFlight counts a request as in flight until the returned func runs.
func (mp *MetricsProvider) TrackInFlight(ctx context.Context) func() {
	if mp.http == nil {
		return func() {}
	}
	mp.http.inFlight.Add(ctx, 1)
	return func() { mp.http.inFlight.Add(ctx, -1) }
}

// Handler returns an HTTP handler for Prometheus metrics
func (mp *MetricsProvider) Handler() http.Handler {
	if mp.handler != nil {
		return mp.handler
	}
	return http.NotFoundHandler()
}

// Path returns the route the Prometheus handler is mounted on.
func (mp *MetricsProvider) Path() string {
	return mp.config.PrometheusPath
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}
