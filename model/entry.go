package model

import "time"

// Entry is a slot registry record binding a slot name to the textual token
// of its most recent occupant. Entries are overwritten when a slot is reused
// and are never deleted; an entry for a finished task simply decodes to a
// terminated occupant.
type Entry struct {
	Slot      string    `json:"slot" yaml:"slot"`
	Token     string    `json:"token" yaml:"token"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}
