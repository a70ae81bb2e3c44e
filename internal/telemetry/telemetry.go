// Package telemetry is the reporting surface shared by the sources, the store
// and the harvest pipeline, plus the otel wiring behind it.
package telemetry

// API is an abstraction over logging/metrics, tests swap it for a Recorder.
type API interface {
	// ReportBroken reports a component that failed in a way an operator should
	// look at, ex. a source that could not acquire a ranking.
	//
	// `id` names the component and method, `<component>.<method>` in lowercase
	// with underscores, ex. `direct_source.scrape`. The cause goes in params.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that did not stop the
	// operation, ex. a malformed row that was skipped.
	ReportWarning(id string, params ...any)

	// ReportDebug reports detail that is only logged in verbose mode.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the size of something at this moment, ex. the rows a
	// scrape returned. Counts are samples, they should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace. Scoping a ScopedAPI nests
// the namespaces, "harvest" then "run-1" reports as "harvest/run-1: <id>".
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if scoped, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{namespace: scoped.namespace + "/" + namespace, inner: scoped.inner}
	}
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) id(id string) string {
	return s.namespace + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.id(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.id(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.id(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.id(id), count)
}
