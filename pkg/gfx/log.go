package gfx

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'l14paint.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("l14paint.gfx")
}
