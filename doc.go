// Package slotor supervises long-lived background tasks under stable,
// user-chosen slot names.
//
// Starting a body into a slot cancels the slot's previous occupant, waits
// for it to fully unwind and only then spawns the replacement, whose handle
// token is published to the slot registry before the body runs.  The service
// comes with pluggable layers such as:
//
//   - supervisor – the replace-and-spawn sequencing per slot
//   - dao/slot   – the slot registry (in-memory or environment-variable backed)
//   - body       – factories turning declarative inputs into runnable bodies
//   - event      – lifecycle notifications over a messaging queue
//
// Slotor is designed to be embedded in host applications.  End-users
// typically interact via the high-level Service façade exposed by the root
// package:
//
//	srv := slotor.New()
//	rt  := srv.Runtime()
//	rt.Start(ctx)
//	task, _ := rt.ForkNamed(ctx, "worker1", "printer", &printer.Input{Message: "Hello"})
//	_, _ = rt.Stop(ctx, "worker1")
//	_ = rt.Shutdown(ctx)
//
// For more details see the individual sub-packages.
package slotor
