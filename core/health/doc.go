// Package health provides HTTP handlers for service health monitoring.
//
//   - Liveness: the process is running, no checks.
//   - Readiness: every supplied check passes.
//
// Checks follow the func(context.Context) error signature:
//
//	r.Get("/-/healthz", health.Liveness[*router.Context])
//	r.Get("/-/readyz", health.Readiness[*router.Context](log, selfTest))
package health
