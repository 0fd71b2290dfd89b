// Package taskres lets independently authored task functions share a
// heterogeneous pool of typed singleton resources. Each task's read/write
// access footprint over those resource types is computed once, at
// registration time, from its parameter list - mutable access from pointer
// parameters, shared access from access.View parameters - so an external
// scheduler can decide which tasks may run concurrently without any task
// declaring dependencies by hand.
//
// End-users typically interact through the Service facade exposed by this
// package:
//
//	srv, _ := taskres.New()
//	_, _ = resource.Store(srv.Resources(), Counter{Value: 42})
//	fn, _ := srv.NewTask(func(c *Counter) { c.Value++ })
//	_ = fn.Exec(ctx, srv.Resources())
//
// The conflict relation between bindings is exposed via Conflicts and the
// permissions themselves; walking that relation into an execution graph and
// dispatching work across threads is deliberately left to the host
// scheduler. For more details see the individual sub-packages.
package taskres
