package supervisor

import (
	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/monitoring"
	"github.com/viant/slotor/runtime/handle"
	"github.com/viant/slotor/service/dao"
	"github.com/viant/slotor/service/event"
)

type Option func(*Service)

// WithStore sets the slot registry implementation
func WithStore(store dao.Service[string, model.Entry]) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithTable sets the handle table shared with other supervisors
func WithTable(table *handle.Table) Option {
	return func(s *Service) {
		s.table = table
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics attaches a metrics collector
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithPublisher attaches a lifecycle event publisher
func WithPublisher(publisher *event.Publisher[*model.Task]) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}
