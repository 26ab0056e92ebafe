package tracing

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torrejonv/movecall/errors"
	"github.com/torrejonv/movecall/settings"
	"github.com/torrejonv/movecall/ulogger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// initTestTracer installs a provider that records spans in memory
func initTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()

	setTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(recorder),
	))

	t.Cleanup(func() {
		_ = ShutdownTracer(context.Background())
	})

	return recorder
}

type observer struct {
	mu     sync.Mutex
	values []float64
}

func (o *observer) Observe(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.values = append(o.values, v)
}

func TestUTracer_LogMessage(t *testing.T) {
	logger := newLineLogger()

	_, _, endFn := Tracer("test-service").Start(
		context.Background(),
		"GetReferenceGasPrice",
		WithLogMessage(logger, "%s %s", "hello", "world"),
	)

	assert.Equal(t, "hello world", logger.lastLog)

	endFn()

	assert.Contains(t, logger.lastLog, "hello world DONE in")
	assert.Equal(t, "INFO", logger.lastLevel)
}

func TestUTracer_WithError(t *testing.T) {
	recorder := initTestTracer(t)
	logger := newLineLogger()

	_, _, endFn := Tracer("test-service").Start(context.Background(), "ExecuteTransactionBlock",
		WithLogMessage(logger, "Submitting transaction"),
		WithTag("sender", "0x1"),
	)

	endFn(nil, errors.NewTxRejectedError("effects status failure"))

	assert.Contains(t, logger.lastLog, "Submitting transaction DONE in")
	assert.Contains(t, logger.lastLog, "with error: Error: TX_REJECTED")
	assert.Equal(t, "ERROR", logger.lastLevel)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ExecuteTransactionBlock", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("sender", "0x1"))
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestUTracer_ChildSpansAndHistogram(t *testing.T) {
	recorder := initTestTracer(t)
	hist := &observer{}

	tracer := Tracer("test-service")

	ctx, parentSpan, endParent := tracer.Start(context.Background(), "Run")
	_, childSpan, endChild := tracer.Start(ctx, "SelectGasCoin", WithHistogram(hist))

	assert.NotNil(t, parentSpan)
	assert.NotNil(t, childSpan)

	endChild()
	endParent()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "SelectGasCoin", spans[0].Name())
	assert.Equal(t, "Run", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	require.Len(t, hist.values, 1)
	assert.GreaterOrEqual(t, hist.values[0], 0.0)
}

func TestInitTracerDisabled(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.Tracing.Enabled = false

	require.NoError(t, InitTracer(tSettings))
	require.NoError(t, ShutdownTracer(context.Background()))
}

type lineLogger struct {
	lastLog   string
	lastLevel string
}

func newLineLogger() *lineLogger {
	return &lineLogger{}
}

func (l *lineLogger) New(service string, options ...ulogger.Option) ulogger.Logger {
	return l
}
func (l *lineLogger) Duplicate(options ...ulogger.Option) ulogger.Logger { return l }

func (l *lineLogger) LogLevel() int {
	return 0
}
func (l *lineLogger) SetLogLevel(level string) {}

func (l *lineLogger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args...)
}

func (l *lineLogger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

func (l *lineLogger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

func (l *lineLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *lineLogger) Fatalf(format string, args ...interface{}) {
	l.log("FATAL", format, args...)
}

func (l *lineLogger) log(level string, format string, args ...interface{}) {
	l.lastLevel = level
	l.lastLog = fmt.Sprintf(format, args...)
}
