package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func findFamily(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestMetricsProviderRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewMetricsProvider(MetricsConfig{Registerer: reg, ServiceName: "lab"})
	require.NoError(t, err)

	ctx := context.Background()
	p.RecordCreate(ctx, KindMessage, StatusOK)
	p.RecordCreate(ctx, KindMessage, StatusOK)
	p.RecordCreate(ctx, KindHeader, StatusOK)
	p.RecordConfigUpdate(ctx, "FIELD_SEPARATOR", true)
	p.RecordConfigUpdate(ctx, "FIELD_SEPARATOR", false)
	p.RecordParse(ctx, StatusOK, 4, 2*time.Millisecond)
	p.RecordParse(ctx, StatusError, 0, time.Millisecond)
	p.RecordBatch(ctx, 3, StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.createTotal.WithLabelValues(KindMessage, StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.createTotal.WithLabelValues(KindHeader, StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.configUpdateTotal.WithLabelValues("FIELD_SEPARATOR", StatusRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.parseTotal.WithLabelValues(StatusError)))

	families, err := reg.Gather()
	require.NoError(t, err)

	segments := findFamily(t, families, "hl7_parse_segments")
	require.Len(t, segments.GetMetric(), 1)
	h := segments.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), h.GetSampleCount(), "failed parses are not observed")
	assert.Equal(t, 4.0, h.GetSampleSum())
	assert.Equal(t, "lab", labelValue(segments.GetMetric()[0], "service"))

	batch := findFamily(t, families, "hl7_batch_size")
	assert.Equal(t, 3.0, batch.GetMetric()[0].GetHistogram().GetSampleSum())
}

func TestMetricsProviderToleratesReregistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetricsProvider(MetricsConfig{Registerer: reg})
	require.NoError(t, err)
	second, err := NewMetricsProvider(MetricsConfig{Registerer: reg})
	require.NoError(t, err)

	ctx := context.Background()
	first.RecordCreate(ctx, KindMessage, StatusOK)
	second.RecordCreate(ctx, KindMessage, StatusOK)
	second.RecordParse(ctx, StatusOK, 2, time.Millisecond)
	second.RecordBatch(ctx, 4, StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.createTotal.WithLabelValues(KindMessage, StatusOK)),
		"both providers share the registered series")

	count, err := testutil.GatherAndCount(reg, "hl7_factory_create_total", "hl7_parse_total", "hl7_batch_size")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetricsProviderDoesNotMutateLabels(t *testing.T) {
	labels := prometheus.Labels{"team": "lab"}
	_, err := NewMetricsProvider(MetricsConfig{
		Registerer:  prometheus.NewRegistry(),
		ConstLabels: labels,
		Environment: "test",
	})
	require.NoError(t, err)
	assert.Len(t, labels, 1)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewMetricsProvider(MetricsConfig{Registerer: reg, Namespace: "lab"})
	require.NoError(t, err)
	p.RecordCreate(context.Background(), KindMessage, StatusOK)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `lab_factory_create_total{kind="message",status="ok"} 1`)
}

func TestNoopMetricsProvider(t *testing.T) {
	var p MetricsProvider = NoopMetricsProvider{}
	ctx := context.Background()
	assert.NotPanics(t, func() {
		p.RecordCreate(ctx, KindMessage, StatusOK)
		p.RecordConfigUpdate(ctx, "NULL", true)
		p.RecordParse(ctx, StatusOK, 1, time.Millisecond)
		p.RecordBatch(ctx, 1, StatusOK, time.Millisecond)
	})
}

func TestNewTracingProvider(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{ServiceName: "lab"})
	require.NoError(t, err)

	ctx, span := tp.StartSpan(context.Background(), "hl7.parse")
	assert.True(t, span.SpanContext().IsValid())
	RecordError(ctx, errors.New("boom"))
	span.End()

	assert.NotNil(t, tp.TracerProvider())
	require.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestNewTracingProviderUnsupportedExporter(t *testing.T) {
	_, err := NewTracingProvider(TracingConfig{ExporterType: "jaeger"})
	assert.Error(t, err)
}

func TestRecordErrorMarksSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	ctx, span := tp.Tracer("test").Start(context.Background(), "hl7.parse")
	RecordError(ctx, errors.New("bad header"), AttrErrorCode.Int(1102))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "bad header", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Contains(t, ended[0].Attributes(), AttrErrorCode.Int(1102))
}

func TestOperationSampler(t *testing.T) {
	s := createSampler(TracingConfig{
		SampleRate:   1.0,
		AlwaysSample: []string{"parse"},
		NeverSample:  []string{"batch"},
	})

	byName := s.ShouldSample(sdktrace.SamplingParameters{Name: "hl7.batch", Attributes: nil})
	assert.Equal(t, sdktrace.RecordAndSample, byName.Decision, "span name is not an operation")

	never := s.ShouldSample(sdktrace.SamplingParameters{Name: "hl7.batch", Attributes: []attribute.KeyValue{AttrOperation.String("batch")}})
	assert.Equal(t, sdktrace.Drop, never.Decision)

	always := s.ShouldSample(sdktrace.SamplingParameters{Name: "x", Attributes: []attribute.KeyValue{AttrOperation.String("parse")}})
	assert.Equal(t, sdktrace.RecordAndSample, always.Decision)

	assert.Equal(t, sdktrace.NeverSample().Description(), createSampler(TracingConfig{SampleRate: -1}).Description())
}
