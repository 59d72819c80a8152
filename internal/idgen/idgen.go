package idgen

import "github.com/google/uuid"

// New returns a new globally unique identifier as string. Task and message
// identifiers come from here; tests stub NewFunc for stable ids.

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }
