package slotor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/x"

	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/model/types"
	"github.com/viant/slotor/monitoring"
	"github.com/viant/slotor/runtime/handle"
	"github.com/viant/slotor/service/dao"
	"github.com/viant/slotor/service/event"
	"github.com/viant/slotor/service/messaging"
	"github.com/viant/slotor/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service façade
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore sets the slot registry implementation, overriding the vendor
// selected by configuration
func WithStore(store dao.Service[string, model.Entry]) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithTable sets the handle table, letting several façades share one
// process-wide table
func WithTable(table *handle.Table) Option {
	return func(s *Service) {
		s.table = table
	}
}

// WithBodyFactories registers additional body factories
func WithBodyFactories(factories ...types.Factory) Option {
	return func(s *Service) {
		s.factories = append(s.factories, factories...)
	}
}

// WithExtensionTypes registers extension data types resolvable by body
// factories
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = append(s.extensionTypes, types...)
	}
}

// WithMetrics sets a pre-built metrics collector
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithRegisterer sets the Prometheus registerer used when monitoring is
// enabled via configuration
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = registerer
	}
}

// WithQueue sets the lifecycle event queue
func WithQueue(queue messaging.Queue[event.Event[*model.Task]]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stdout exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
