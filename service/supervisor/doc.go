// Package supervisor sequences slot occupancy.  Starting a body under a slot
// name cancels the slot's previous occupant, waits for it to fully unwind,
// then spawns the new task and publishes its handle token to the registry
// before the body is allowed to run, so two generations of a slot never
// overlap and a token is always observable before its task produces effects.
package supervisor
