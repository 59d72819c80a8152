// Package policy provides a simple, optional replacement-approval layer that
// can be attached to a supervisor call via context.  It is deliberately
// decoupled from the rest of slotor so that using it is entirely opt-in –
// callers that do not embed the Policy in their context keep the original
// "auto" behaviour where starting into an occupied slot silently cancels the
// previous occupant.

package policy

import (
	"context"
	"strings"
)

// Replacement modes recognised by the supervisor.
const (
	ModeAsk  = "ask"  // ask user before displacing a live task
	ModeAuto = "auto" // replace automatically (default)
	ModeDeny = "deny" // block replacement of live tasks
)

// AskFunc is invoked when Mode==ask and the target slot holds a live task.
// Returning true approves the replacement, false rejects it.  Implementations
// MAY mutate the policy (for example, switching to ModeAuto after the first
// approval).
type AskFunc func(
	ctx context.Context,
	slot string, // slot about to be replaced
	taskID string, // identifier of the live occupant – may be empty
	p *Policy,
) bool

// Policy represents the replacement settings for the current supervisor call.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList allow coarse filtering by slot regardless of Mode.
//   - Ask is only used when Mode==ask.
//
// A nil *Policy means "replace everything automatically" and is therefore the
// zero-cost default.  The policy is only consulted when the slot holds a live
// occupant; starting into an empty or terminated slot never asks.
type Policy struct {
	Mode      string   // ask / auto / deny      (default = auto)
	AllowList []string // whitelist (empty => all slots)
	BlockList []string // blacklist
	Ask       AskFunc  // used only when Mode==ask
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters (Config is a serialisable subset used when a
// Policy with AskFunc cannot be persisted).
// ---------------------------------------------------------------------------

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without
// AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList.  Both lists match by exact,
// case-insensitive comparison of the slot name.
func (p *Policy) IsAllowed(slot string) bool {
	if p == nil {
		return true
	}

	normalized := strings.ToLower(slot)

	// BlockList has priority.
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}

	// AllowList – if empty every slot is allowed, otherwise only the listed
	// entries.
	if len(p.AllowList) == 0 {
		return true
	}

	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}

	return false
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts (*Policy, ok).
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
