package slotor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/x"
	"go.uber.org/zap"

	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/model/types"
	"github.com/viant/slotor/monitoring"
	"github.com/viant/slotor/runtime/handle"
	"github.com/viant/slotor/service/body"
	"github.com/viant/slotor/service/body/exec"
	"github.com/viant/slotor/service/body/nop"
	"github.com/viant/slotor/service/body/printer"
	"github.com/viant/slotor/service/dao"
	slotenv "github.com/viant/slotor/service/dao/slot/env"
	slotmemory "github.com/viant/slotor/service/dao/slot/memory"
	"github.com/viant/slotor/service/event"
	"github.com/viant/slotor/service/messaging"
	mmemory "github.com/viant/slotor/service/messaging/memory"
	"github.com/viant/slotor/service/supervisor"
	"github.com/viant/slotor/tracing"
)

// Service represents the slot supervision façade
type Service struct {
	runtime        *Runtime
	config         *Config
	logger         *logging.Logger
	store          dao.Service[string, model.Entry]
	table          *handle.Table
	bodies         *body.Registry
	factories      []types.Factory
	extensionTypes []*x.Type
	metrics        *monitoring.Metrics
	registerer     prometheus.Registerer
	queue          messaging.Queue[event.Event[*model.Task]]
	publisher      *event.Publisher[*model.Task]
	listener       *event.Listener[*model.Task]
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()

	aSupervisor := supervisor.New(
		supervisor.WithStore(s.store),
		supervisor.WithTable(s.table),
		supervisor.WithLogger(s.logger),
		supervisor.WithMetrics(s.metrics),
		supervisor.WithPublisher(s.publisher))

	s.runtime = &Runtime{
		config:     s.config,
		logger:     s.logger,
		supervisor: aSupervisor,
		bodies:     s.bodies,
		listener:   s.listener,
	}
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logger == nil {
		logger, err := logging.New(s.config.Logging)
		if err != nil {
			logger = logging.NewDefault()
		}
		s.logger = logger
	}
	if s.store == nil {
		switch s.config.Registry.Vendor {
		case RegistryVendorEnv:
			s.store = slotenv.New(s.config.Registry.Prefix)
		default:
			s.store = slotmemory.New()
		}
	}
	if s.table == nil {
		s.table = handle.NewTable()
	}
	if s.bodies == nil {
		s.bodies = body.New(printer.New(), nop.New(), exec.New())
	}
	for _, factory := range s.factories {
		s.bodies.Register(factory)
	}
	for _, aType := range s.extensionTypes {
		s.bodies.RegisterType(aType)
	}
	if s.metrics == nil && s.config.Monitoring.Enabled {
		s.metrics = monitoring.New(s.registerer)
	}
	if s.config.Tracing.Enabled {
		_ = tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile)
	}
	if s.config.Events.Enabled {
		if s.queue == nil {
			queueConfig := mmemory.DefaultConfig()
			if s.config.Events.QueueBuffer > 0 {
				queueConfig.QueueBuffer = s.config.Events.QueueBuffer
			}
			s.queue = mmemory.NewQueue[event.Event[*model.Task]](queueConfig)
		}
		s.publisher = event.NewPublisher[*model.Task](s.queue)
		s.listener = event.NewListener[*model.Task](s.publisher, s.logTransition)
	}
}

// logTransition is the default lifecycle event handler.
func (s *Service) logTransition(anEvent *event.Event[*model.Task]) {
	s.logger.Info("task lifecycle event",
		zap.String("slot", anEvent.Context.Slot),
		zap.String("eventType", string(anEvent.Context.EventType)),
		zap.String("taskID", anEvent.Context.TaskID),
		zap.Int("generation", anEvent.Context.Generation))
}

// RegisterFactories adds body factories after construction
func (s *Service) RegisterFactories(factories ...types.Factory) {
	for i := range factories {
		s.bodies.Register(factories[i])
	}
}

// RegisterExtensionTypes adds extension data types after construction
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.bodies.RegisterType(types[i])
	}
}

// Runtime returns the slot operations surface
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Bodies returns the body factory registry
func (s *Service) Bodies() *body.Registry {
	return s.bodies
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// Metrics returns the metrics collector, nil unless monitoring is enabled
func (s *Service) Metrics() *monitoring.Metrics {
	return s.metrics
}

// New creates a service façade with the supplied options
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
