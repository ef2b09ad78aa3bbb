package painting

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'l14paint.painting'.
func tracer() tracing.Trace {
	return tracing.Select("l14paint.painting")
}
