// Package model contains the in-memory representation of slots, supervised
// tasks and registry entries used by the Slotor supervisor.
//
// A slot is a named, single-occupant location for one background task.  The
// root model package holds the records shared across the supervisor, the
// registry stores and the event layer; the `types` sub-package defines the
// body and factory contracts that user code implements.
package model
