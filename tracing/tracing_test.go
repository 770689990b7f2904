package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("kernel", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "mutex_lock", "INTERNAL")
	span.WithAttributes(map[string]string{"pid": "1"}).WithInt("tid", 0)
	EndSpan(span, errors.New("deadlock"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mutex_lock")
}

func TestTracingExporter(t *testing.T) {
	testCases := []struct {
		description string
		name        string
		err         error
		expectCode  codes.Code
	}{
		{description: "ok", name: "yield", expectCode: codes.Ok},
		{description: "error", name: "mutex_lock", err: errors.New("deadlock"), expectCode: codes.Error},
	}
	for _, testCase := range testCases {
		exporter := tracetest.NewInMemoryExporter()
		require.NoError(t, InitWithExporter("kernel", "0.0.1", exporter), testCase.description)

		_, span := StartSpan(context.Background(), testCase.name, "SERVER")
		EndSpan(span.WithInt("ret", 0), testCase.err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1, testCase.description)
		assert.Equal(t, testCase.name, spans[0].Name, testCase.description)
		assert.Equal(t, testCase.expectCode, spans[0].Status.Code, testCase.description)
	}
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	assert.Nil(t, span.WithInt("k", 1))
	EndSpan(span, nil)
	assert.NoError(t, InitWithExporter("kernel", "0.0.1", nil))
}
