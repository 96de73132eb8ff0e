package content

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
)

// Source names where a document's content came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Failure kinds reported in logs and the fallback metric.
const (
	FailureProvider      = "provider"
	FailureEmptyResponse = "empty_response"
	FailureParse         = "parse"
	FailureValidation    = "validation"
	FailureUnexpected    = "unexpected"
)

// Generator is the model call the pipeline depends on. llm.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Recorder receives one observation per pipeline run.
type Recorder interface {
	RecordGeneration(ctx context.Context, source, failureKind string, duration time.Duration)
}

// Result is the outcome of one run. Document is always shape-valid and
// carries the slug. Failure is the recovered error when Source is fallback.
type Result struct {
	Document    *domain.ContentDocument
	Source      Source
	Failure     error
	FailureKind string
	Duration    time.Duration
}

// Pipeline turns product input into a content document. It is safe for
// concurrent use.
type Pipeline struct {
	client   Generator
	log      logger.Logger
	recorder Recorder
	tracer   trace.Tracer
	timeout  time.Duration
	retry    retry.Config
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTimeout bounds each model call. Zero means no pipeline timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithMaxAttempts retries temporary provider failures. 1 disables retrying.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.retry.MaxAttempts = n
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithTracer sets the tracer used for generation spans.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// NewPipeline builds a pipeline around a long-lived model client.
func NewPipeline(client Generator, log logger.Logger, opts ...Option) *Pipeline {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 1
	retryCfg.InitialDelay = 250 * time.Millisecond

	p := &Pipeline{
		client:   client,
		log:      log,
		recorder: nopRecorder{},
		tracer:   noop.NewTracerProvider().Tracer(""),
		retry:    retryCfg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate never fails: any failure of the model path is logged, counted and
// replaced by Synthesize(in).
func (p *Pipeline) Generate(ctx context.Context, in domain.ProductInput) *Result {
	start := time.Now()
	in = in.Normalize()
	slug := DeriveSlug(in.Name)

	ctx, span := p.tracer.Start(ctx, "content.Generate", trace.WithAttributes(
		attribute.String("page.slug", slug),
	))
	defer span.End()

	log := logger.FromContextOr(ctx, p.log).With(logger.String("slug", slug))

	res := &Result{Source: SourceAI}
	doc, err := p.generateWithModel(ctx, in)
	if err != nil {
		res.Source = SourceFallback
		res.Failure = err
		res.FailureKind = FailureKind(err)
		doc = Synthesize(in)

		span.RecordError(err)
		span.SetStatus(codes.Error, res.FailureKind)
		fields := []logger.Field{
			logger.String("failure_kind", res.FailureKind),
			logger.Error(err),
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			fields = append(fields, logger.String("reply_snippet", parseErr.Snippet))
		}
		if res.FailureKind == FailureUnexpected {
			log.Error("Unexpected generation failure, using fallback content", fields...)
		} else {
			log.Warn("Generation failed, using fallback content", fields...)
		}
	}

	doc.Slug = slug
	res.Document = doc
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.String("content.source", string(res.Source)))
	p.recorder.RecordGeneration(ctx, string(res.Source), res.FailureKind, res.Duration)
	log.Info("Page content generated",
		logger.String("source", string(res.Source)),
		logger.Duration("duration", res.Duration),
	)
	return res
}

func (p *Pipeline) generateWithModel(ctx context.Context, in domain.ProductInput) (*domain.ContentDocument, error) {
	raw, err := p.call(ctx, BuildPrompt(in))
	if err != nil {
		return nil, err
	}
	candidate, err := ParseReply(raw)
	if err != nil {
		return nil, err
	}
	return Validate(candidate)
}

// call runs the model under the per-call timeout and retry policy. A context
// error that escapes the client is reported as a ProviderError.
func (p *Pipeline) call(ctx context.Context, prompt string) (string, error) {
	var reply string
	err := retry.Retry(ctx, p.retry, func() error {
		callCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		out, err := p.client.Generate(callCtx, SystemInstruction, prompt)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return llm.WrapError("generation", err)
			}
			return err
		}
		reply = out
		return nil
	})
	if err != nil && errors.Is(err, retry.ErrContextCancelled) {
		return "", llm.WrapError("generation", err)
	}
	return reply, err
}

// FailureKind classifies an error recovered by the pipeline.
func FailureKind(err error) string {
	var (
		providerErr   *llm.ProviderError
		emptyErr      *llm.EmptyResponseError
		parseErr      *ParseError
		validationErr *ValidationError
	)
	switch {
	case errors.As(err, &providerErr):
		return FailureProvider
	case errors.As(err, &emptyErr):
		return FailureEmptyResponse
	case errors.As(err, &parseErr):
		return FailureParse
	case errors.As(err, &validationErr):
		return FailureValidation
	default:
		return FailureUnexpected
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(context.Context, string, string, time.Duration) {}
