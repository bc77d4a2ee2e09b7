// Package telemetry provides trace correlation for provider runs. Tracing is
// fire-and-forget: it never returns errors into the caller's control flow.
package telemetry

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TraceContext carries the opaque correlation identifier for one operation.
type TraceContext struct {
	TraceID string
}

type Tracer interface {
	Start(operation string) TraceContext
	End(trace TraceContext, status string)
}

// LogTracer always hands out a trace id so runs stay correlatable, and emits
// start/end records only when exporting is enabled.
type LogTracer struct {
	enabled bool
}

func NewTracer(enabled bool) *LogTracer {
	return &LogTracer{enabled: enabled}
}

func (t *LogTracer) Start(operation string) TraceContext {
	trace := TraceContext{TraceID: uuid.NewString()}
	if t.enabled {
		log.WithFields(log.Fields{"trace_id": trace.TraceID, "op": operation}).Info("trace_start")
	}
	return trace
}

func (t *LogTracer) End(trace TraceContext, status string) {
	if t.enabled {
		log.WithFields(log.Fields{"trace_id": trace.TraceID, "status": status}).Info("trace_end")
	}
}
