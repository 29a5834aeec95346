// Package observable wraps lending command and query handlers with metrics, tracing, and logging
// while the wrapped handlers stay free of infrastructure concerns.
//
// Wrappers are applied at wiring time:
//
//	coreHandler := issuebook.NewCommandHandler(backend.Store(), clock)
//
//	handler, err := observable.NewCommandWrapper[issuebook.Command, issuebook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[issuebook.Command, issuebook.Result](metricsCollector),
//		observable.WithCommandTracing[issuebook.Command, issuebook.Result](tracingCollector),
//	)
//
// Each option is independent; a wrapper without options just delegates.
// The status recorded for a call is derived from the returned error with shell.StatusFor,
// so a rejection by the lending rules is never counted as an error.
package observable
