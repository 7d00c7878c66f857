package tracer

import (
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJaegerTracerNoop(t *testing.T) {
	tr, closer, err := NewJaegerTracer("kb", "")
	require.NoError(t, err)
	assert.IsType(t, opentracing.NoopTracer{}, tr)
	assert.NoError(t, closer.Close())
}

func TestNewJaegerTracer(t *testing.T) {
	tr, closer, err := NewJaegerTracer("kb", "127.0.0.1:6831")
	require.NoError(t, err)
	defer closer.Close()

	span := tr.StartSpan("test")
	span.Finish()
	_, isNoop := tr.(opentracing.NoopTracer)
	assert.False(t, isNoop)
}
