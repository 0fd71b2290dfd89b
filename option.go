package taskres

import (
	"fmt"

	"github.com/viant/afs/storage"
	"github.com/viant/taskres/mem"
	"github.com/viant/taskres/service/meta"
	"github.com/viant/taskres/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the Service.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithAllocator sets the allocator backing every registry the service
// creates, overriding the config memory budget.
func WithAllocator(allocator mem.Allocator) Option {
	return func(s *Service) { s.allocator = allocator }
}

// WithPermissionCapacity sets the maximum number of distinct resource types
// tracked in access signatures.
func WithPermissionCapacity(capacity int) Option {
	return func(s *Service) { s.ensureConfig().Permission.Capacity = capacity }
}

// WithStrictResolution makes every binding fail Exec on an unregistered
// resource instead of passing a typed nil through.
func WithStrictResolution(strict bool) Option {
	return func(s *Service) { s.ensureConfig().StrictResolution = strict }
}

// WithExtensionTypes registers resource types manifests can reference by
// name.
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) { s.extensionTypes = types }
}

// WithMetaService sets the manifest loader.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithMetaBaseURL sets the base URL manifests load relative to.
func WithMetaBaseURL(url string) Option {
	return func(s *Service) { s.metaBaseURL = url }
}

// WithMetaFsOptions sets meta file system options (for example an embedded
// file system).
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.metaFsOptions = options }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied
// file path. Safe to call multiple times - the first successful
// initialisation wins. An initialisation failure surfaces from New.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.tracingErr = fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling integrations such as OTLP, Jaeger or Zipkin. An
// initialisation failure surfaces from New.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.tracingErr = fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
}
