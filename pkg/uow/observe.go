package uow

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ghuser/menagerist/pkg/uow"

// Outcome labels recorded on the uow.scopes counter.
const (
	OutcomeCommit   = "commit"
	OutcomeRollback = "rollback"
)

var scopeCounter metric.Int64Counter

func init() {
	// The global meter delegates to whatever provider telemetry.Setup installs later.
	c, err := otel.Meter(instrumentationName).Int64Counter("uow.scopes",
		metric.WithDescription("Unit-of-work scopes by backend and outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	scopeCounter = c
}

// Scope is the observability handle for one unit-of-work execution.
type Scope struct {
	ctx     context.Context
	span    trace.Span
	backend string
	hooks   *commitHooks
}

// StartScope opens a span for a unit-of-work scope and binds the scope's
// AfterCommit hooks to the returned context. Adapters call End exactly once,
// after the commit or rollback has happened.
func StartScope(ctx context.Context, backend string) (context.Context, *Scope) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "uow.scope",
		trace.WithAttributes(attribute.String("uow.backend", backend)),
	)
	ctx, hooks := withCommitHooks(ctx)
	return ctx, &Scope{ctx: ctx, span: span, backend: backend, hooks: hooks}
}

// End records the scope outcome. A nil err means the scope committed, and
// the hooks registered with AfterCommit run before the span closes.
func (s *Scope) End(err error) {
	outcome := OutcomeCommit
	if err != nil {
		outcome = OutcomeRollback
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.SetAttributes(attribute.String("uow.outcome", outcome))
	if scopeCounter != nil {
		scopeCounter.Add(s.ctx, 1, metric.WithAttributes(
			attribute.String("backend", s.backend),
			attribute.String("outcome", outcome),
		))
	}
	if err == nil {
		s.hooks.run(s.ctx)
	}
	s.span.End()
}
