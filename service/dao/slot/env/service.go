// Package env exposes the slot registry through process environment
// variables named "<PREFIX>_" + slot. This is the persistence boundary that
// survives a host-level state reset short of process exit: a rebuilt
// supervisor reading through a fresh Service instance observes the entries
// its predecessor wrote. Values hold only the decimal token text, so the
// variables double as the external tooling interface.
package env

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/viant/slotor/model"
	"github.com/viant/slotor/service/dao"
	"github.com/viant/slotor/service/dao/criteria"
)

// DefaultPrefix names registry variables FORK_<slot> unless configured
// otherwise.
const DefaultPrefix = "FORK"

// Service implements the environment-variable slot registry.
type Service struct {
	prefix string
}

var _ dao.Service[string, model.Entry] = (*Service)(nil)

// Prefix returns the variable name prefix in use.
func (s *Service) Prefix() string {
	return s.prefix
}

func (s *Service) name(slot string) string {
	return s.prefix + "_" + slot
}

func (s *Service) Save(_ context.Context, entry *model.Entry) error {
	if entry == nil {
		return dao.ErrNilEntity
	}
	if entry.Slot == "" {
		return dao.ErrInvalidID
	}
	return os.Setenv(s.name(entry.Slot), entry.Token)
}

func (s *Service) Load(_ context.Context, slot string) (*model.Entry, error) {
	if slot == "" {
		return nil, dao.ErrInvalidID
	}
	value, ok := os.LookupEnv(s.name(slot))
	if !ok {
		return nil, dao.ErrNotFound
	}
	return &model.Entry{Slot: slot, Token: value}, nil
}

func (s *Service) Delete(_ context.Context, slot string) error {
	if slot == "" {
		return dao.ErrInvalidID
	}
	if _, ok := os.LookupEnv(s.name(slot)); !ok {
		return dao.ErrNotFound
	}
	return os.Unsetenv(s.name(slot))
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*model.Entry, error) {
	marker := s.prefix + "_"
	var out []*model.Entry
	for _, pair := range os.Environ() {
		if !strings.HasPrefix(pair, marker) {
			continue
		}
		eq := strings.IndexByte(pair, '=')
		if eq < len(marker) {
			continue
		}
		slot := pair[len(marker):eq]
		if slot == "" || !criteria.FilterBySlot(slot, parameters) {
			continue
		}
		out = append(out, &model.Entry{Slot: slot, Token: pair[eq+1:]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// New creates an environment-variable registry; an empty prefix selects
// DefaultPrefix.
func New(prefix string) *Service {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Service{prefix: prefix}
}
