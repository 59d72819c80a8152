// Package memory provides the default in-memory slot registry. It satisfies
// the cross-reset persistence contract only when the same Service instance
// is shared across host resets; the env vendor covers hosts that cannot hold
// onto one.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/slotor/internal/clock"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/service/dao"
	"github.com/viant/slotor/service/dao/criteria"
)

// Service implements an in-memory, thread-safe slot registry. All API
// methods work with copies to eliminate data races between goroutines.
type Service struct {
	entries map[string]*model.Entry
	mux     sync.RWMutex
}

var _ dao.Service[string, model.Entry] = (*Service)(nil)

func (s *Service) Save(_ context.Context, entry *model.Entry) error {
	if entry == nil {
		return dao.ErrNilEntity
	}
	if entry.Slot == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	stored := *entry
	stored.UpdatedAt = clock.Now()
	s.entries[entry.Slot] = &stored
	return nil
}

func (s *Service) Load(_ context.Context, slot string) (*model.Entry, error) {
	if slot == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	entry, ok := s.entries[slot]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	result := *entry
	return &result, nil
}

func (s *Service) Delete(_ context.Context, slot string) error {
	if slot == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.entries[slot]; !ok {
		return dao.ErrNotFound
	}
	delete(s.entries, slot)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*model.Entry, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*model.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if !criteria.FilterBySlot(entry.Slot, parameters) {
			continue
		}
		result := *entry
		out = append(out, &result)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func New() *Service {
	return &Service{entries: map[string]*model.Entry{}}
}
