package media

import (
	"context"

	"github.com/portfoliobuilder/backend/internal/metrics"
	"go.uber.org/zap"
)

// Resolver is the long-lived entry point used by the portfolio services. For
// each submission it pairs the object store with that submission's draft
// handles and runs an Orchestrator over them.
type Resolver struct {
	uploader Uploader
	metrics  metrics.UploadMetrics
	logger   *zap.Logger
}

// NewResolver creates a resolver uploading through uploader.
func NewResolver(uploader Uploader, m metrics.UploadMetrics, logger *zap.Logger) *Resolver {
	if m == nil {
		m = metrics.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{uploader: uploader, metrics: m, logger: logger}
}

// ResolveAll resolves fields against handles. handles may be nil if the
// request named no draft session.
func (r *Resolver) ResolveAll(ctx context.Context, handles HandleTable, fields []Field) ([]Ref, error) {
	o := NewOrchestrator(
		NewGatewayClient(handles, r.uploader),
		WithMetrics(r.metrics),
		WithLogger(r.logger),
	)
	return o.ResolveAll(ctx, fields)
}

// Release drops the staged bytes of ephemeral fields once their record has
// been saved. Failures are only logged; staged bytes expire with the session.
func (r *Resolver) Release(ctx context.Context, handles HandleTable, fields []Field) {
	if handles == nil {
		return
	}
	for _, field := range fields {
		if field.Ref.Kind() != KindEphemeral {
			continue
		}
		if err := handles.Release(ctx, field.Ref); err != nil {
			r.logger.Warn("failed to release draft handle",
				zap.String("handle", field.Ref.Handle()),
				zap.Error(err),
			)
		}
	}
}
