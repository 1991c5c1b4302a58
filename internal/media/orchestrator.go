package media

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/portfoliobuilder/backend/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 4

// Field is one media input of a form together with the label used to name
// its stored object.
type Field struct {
	Label string
	Ref   Ref
}

// Orchestrator resolves media references, uploading only ephemeral ones.
type Orchestrator struct {
	gateway     Gateway
	metrics     metrics.UploadMetrics
	logger      *zap.Logger
	parallelism int
	keyFunc     func(label, extension string) string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records uploads and skips.
func WithMetrics(m metrics.UploadMetrics) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger logs uploads at debug and failures at warn.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParallelism caps how many fields ResolveAll uploads at once.
func WithParallelism(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// ResolveBudget bounds how long ResolveAll takes for n ephemeral fields at the
// default parallelism when each upload gives up after perUpload.
func ResolveBudget(n int, perUpload time.Duration) time.Duration {
	waves := (n + defaultParallelism - 1) / defaultParallelism
	return time.Duration(waves) * perUpload
}

// NewOrchestrator creates an orchestrator over gateway.
func NewOrchestrator(gateway Gateway, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gateway:     gateway,
		metrics:     metrics.Noop{},
		logger:      zap.NewNop(),
		parallelism: defaultParallelism,
		keyFunc:     GenerateKey,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve returns the reference to save for one field.
//
// Empty and persisted references come back unchanged without any network
// call, so resolving a persisted result again is a no-op. An ephemeral
// reference is fetched, named after label, and uploaded exactly once. On
// failure the original reference is returned with an *UploadError and the
// caller must not save the record.
func (o *Orchestrator) Resolve(ctx context.Context, ref Ref, label string) (Ref, error) {
	switch ref.Kind() {
	case KindEmpty, KindPersisted:
		o.metrics.IncSkipped(ref.Kind().String())
		return ref, nil
	}

	start := time.Now()
	resolved, err := o.upload(ctx, ref, label)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	o.metrics.ObserveUpload(label, outcome, time.Since(start).Seconds())

	if err != nil {
		o.logger.Warn("media upload failed",
			zap.String("label", label),
			zap.String("handle", ref.Handle()),
			zap.Error(err),
		)
		return ref, &UploadError{Label: label, Err: err}
	}
	return resolved, nil
}

func (o *Orchestrator) upload(ctx context.Context, ref Ref, label string) (Ref, error) {
	blob, err := o.gateway.FetchBytes(ctx, ref)
	if err != nil {
		return Ref{}, err
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(blob.Data)
	}
	key := o.keyFunc(label, DeriveExtension(contentType))

	location, err := o.gateway.Upload(ctx, blob.Data, contentType, key)
	if err != nil {
		return Ref{}, err
	}

	resolved, err := Parse(location)
	if err != nil || resolved.Kind() != KindPersisted {
		return Ref{}, &TransportError{
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("gateway returned %q, not a persisted url", location),
		}
	}

	o.logger.Debug("media uploaded",
		zap.String("label", label),
		zap.String("key", key),
		zap.Int("size", len(blob.Data)),
	)
	return resolved, nil
}

// ResolveAll resolves every field concurrently and waits for all of them.
// Results are positional. If any field fails, the first error is returned,
// the remaining uploads see a cancelled context, and no results are returned:
// a record is never saved with a mix of new and stale references.
func (o *Orchestrator) ResolveAll(ctx context.Context, fields []Field) ([]Ref, error) {
	resolved := make([]Ref, len(fields))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for i, field := range fields {
		i, field := i, field
		g.Go(func() error {
			ref, err := o.Resolve(gctx, field.Ref, field.Label)
			if err != nil {
				return err
			}
			resolved[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
