// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs a set of named [Checks] in parallel under a shared timeout
// and answers 503 when any of them fails. Both handlers negotiate between
// plain text and JSON (Accept: application/json or ?format=json).
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "analytics": analytics.UpstreamCheck(nil, analytics.DefaultUpstream),
//	}))
package health
