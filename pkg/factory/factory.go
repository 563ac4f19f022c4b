package factory

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	hl7errors "github.com/ajitpratap0/hl7-sdk-go/pkg/errors"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/logging"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/message"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/observability"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

// unknownSettingLabel replaces setting names outside protocol.Settings in metrics.
const unknownSettingLabel = "unknown"

// Factory owns one delimiter configuration and builds messages and headers
// from snapshots of it. A Factory is safe for concurrent use.
type Factory struct {
	mu  sync.RWMutex
	cfg protocol.DelimiterConfig

	logger  logging.Logger
	metrics observability.MetricsProvider
	tracer  trace.Tracer
	mshOpts []message.MSHOption
	workers int
}

// Option configures a Factory
type Option func(*Factory)

// WithLogger sets the logger. Only debug-level events are emitted.
func WithLogger(logger logging.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMetrics sets the metrics provider
func WithMetrics(provider observability.MetricsProvider) Option {
	return func(f *Factory) {
		f.metrics = provider
	}
}

// WithTracerProvider sets the provider parse spans are started from
// (default: the otel global provider). A nil provider is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *Factory) {
		if tp != nil {
			f.tracer = tp.Tracer(observability.InstrumentationName)
		}
	}
}

// WithControlIDGenerator sets the generator used for MSH-10 by CreateMSH
func WithControlIDGenerator(g message.ControlIDGenerator) Option {
	return func(f *Factory) {
		f.mshOpts = append(f.mshOpts, message.WithControlIDGenerator(g))
	}
}

// WithBatchWorkers bounds the number of messages ParseBatch parses at once
// (default: GOMAXPROCS).
func WithBatchWorkers(n int) Option {
	return func(f *Factory) {
		f.workers = n
	}
}

// New returns a factory holding the default configuration.
func New(opts ...Option) *Factory {
	f := &Factory{
		cfg:     protocol.DefaultConfig(),
		logger:  logging.GetGlobalLogger().WithFields(logging.String("component", "factory")),
		metrics: observability.NoopMetricsProvider{},
		tracer:  otel.GetTracerProvider().Tracer(observability.InstrumentationName),
		workers: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = logging.NewNop()
	}
	if f.metrics == nil {
		f.metrics = observability.NoopMetricsProvider{}
	}
	if f.workers < 1 {
		f.workers = 1
	}

	return f
}

// Config returns a snapshot of the current configuration.
func (f *Factory) Config() protocol.DelimiterConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// CreateMessage builds a message from text and a snapshot of the current
// configuration. Empty text gives an empty message; malformed text is
// reported by the message parser.
func (f *Factory) CreateMessage(text string) (*message.Message, error) {
	msg, err := message.NewMessage(text, f.Config())
	if err != nil {
		f.metrics.RecordCreate(context.Background(), observability.KindMessage, observability.StatusError)
		return nil, err
	}
	f.metrics.RecordCreate(context.Background(), observability.KindMessage, observability.StatusOK)
	return msg, nil
}

// CreateMSH builds a header segment from a snapshot of the current
// configuration.
func (f *Factory) CreateMSH() *message.MSHSegment {
	msh := message.NewMSH(f.Config(), f.mshOpts...)
	f.metrics.RecordCreate(context.Background(), observability.KindHeader, observability.StatusOK)
	return msh
}

// Update replaces one setting. Delimiter settings must be exactly one
// byte long; on rejection the configuration is left unchanged and an
// error coded CodeInvalidDelimiter is returned.
func (f *Factory) Update(setting protocol.Setting, value string) error {
	f.mu.Lock()
	next, err := f.cfg.With(setting, value)
	if err == nil {
		f.cfg = next
	}
	f.mu.Unlock()

	label := string(setting)
	if !setting.Valid() {
		// keep label values bounded
		label = unknownSettingLabel
	}
	f.metrics.RecordConfigUpdate(context.Background(), label, err == nil)
	if err != nil {
		return err
	}

	f.logger.Debug("Configuration updated",
		logging.String("setting", string(setting)),
		logging.String("value", value))
	return nil
}

// SetComponentSeparator reports whether value was accepted.
func (f *Factory) SetComponentSeparator(value string) bool {
	return f.Update(protocol.SettingComponentSeparator, value) == nil
}

// SetSubcomponentSeparator reports whether value was accepted.
func (f *Factory) SetSubcomponentSeparator(value string) bool {
	return f.Update(protocol.SettingSubcomponentSeparator, value) == nil
}

// SetRepetitionSeparator reports whether value was accepted.
func (f *Factory) SetRepetitionSeparator(value string) bool {
	return f.Update(protocol.SettingRepetitionSeparator, value) == nil
}

// SetFieldSeparator reports whether value was accepted.
func (f *Factory) SetFieldSeparator(value string) bool {
	return f.Update(protocol.SettingFieldSeparator, value) == nil
}

// SetSegmentSeparator reports whether value was accepted.
func (f *Factory) SetSegmentSeparator(value string) bool {
	return f.Update(protocol.SettingSegmentSeparator, value) == nil
}

// SetEscapeCharacter reports whether value was accepted.
func (f *Factory) SetEscapeCharacter(value string) bool {
	return f.Update(protocol.SettingEscapeCharacter, value) == nil
}

// SetVersion stores the MSH-12 version. Any string is accepted.
func (f *Factory) SetVersion(value string) bool {
	return f.Update(protocol.SettingVersion, value) == nil
}

// SetNull stores the null token. Any string is accepted.
func (f *Factory) SetNull(value string) bool {
	return f.Update(protocol.SettingNull, value) == nil
}

// Null returns the current null token.
func (f *Factory) Null() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg.Null
}

// ParseMessage is CreateMessage for received messages: it honours
// cancellation, records a span and parse metrics, and rejects empty text
// with CodeEmptyMessage.
func (f *Factory) ParseMessage(ctx context.Context, text string) (*message.Message, error) {
	return f.parse(ctx, text, f.Config())
}

func (f *Factory) parse(ctx context.Context, text string, cfg protocol.DelimiterConfig) (*message.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, hl7errors.OperationCancelled("parse", err)
	}

	ctx, span := f.tracer.Start(ctx, "hl7.parse", trace.WithAttributes(
		observability.AttrOperation.String("parse"),
		observability.AttrBytes.Int(len(text)),
	))
	defer span.End()

	start := time.Now()
	var msg *message.Message
	var err error
	if text == "" {
		err = hl7errors.EmptyMessage()
	} else {
		msg, err = message.NewMessage(text, cfg)
	}
	elapsed := time.Since(start)

	if err != nil {
		var attrs []attribute.KeyValue
		if hl7Err, ok := hl7errors.AsHL7Error(err); ok {
			attrs = append(attrs, observability.AttrErrorCode.Int(hl7Err.Code()))
		}
		observability.RecordError(ctx, err, attrs...)
		f.metrics.RecordParse(ctx, observability.StatusError, 0, elapsed)
		f.logger.WithError(err).Debug("Failed to parse message",
			logging.Int("bytes", len(text)),
			logging.Duration("duration", elapsed))
		return nil, err
	}

	attrs := []attribute.KeyValue{
		observability.AttrSegments.Int(msg.Len()),
		observability.AttrVersion.String(msg.Config().Version),
	}
	if header := msg.Header(); header != nil {
		attrs = append(attrs, observability.AttrControlID.String(header.ControlID()))
		ctx = logging.ContextWithControlID(ctx, header.ControlID())
	}
	span.SetAttributes(attrs...)

	f.metrics.RecordParse(ctx, observability.StatusOK, msg.Len(), elapsed)
	f.logger.WithContext(ctx).Debug("Parsed message",
		logging.Int("segments", msg.Len()),
		logging.Duration("duration", elapsed))

	return msg, nil
}

// ParseBatch parses texts concurrently against one configuration snapshot.
// Results are in input order. The first failure cancels the remaining work
// and is returned as an HL7Error whose details name the item index.
func (f *Factory) ParseBatch(ctx context.Context, texts []string) ([]*message.Message, error) {
	cfg := f.Config()

	ctx, span := f.tracer.Start(ctx, "hl7.batch", trace.WithAttributes(
		observability.AttrOperation.String("batch"),
		observability.AttrBatchSize.Int(len(texts)),
	))
	defer span.End()

	start := time.Now()
	results := make([]*message.Message, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			msg, err := f.parse(gctx, text, cfg)
			if err != nil {
				return hl7errors.ConvertStandardError(err).WithDetail(fmt.Sprintf("batch item %d", i))
			}
			results[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		observability.RecordError(ctx, err)
		f.metrics.RecordBatch(ctx, len(texts), observability.StatusError, time.Since(start))
		return nil, err
	}

	f.metrics.RecordBatch(ctx, len(texts), observability.StatusOK, time.Since(start))
	return results, nil
}
