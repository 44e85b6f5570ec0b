package obs

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewTracerProviderExportsSpans(t *testing.T) {
	var buf bytes.Buffer

	tp, err := NewTracerProvider(&buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "Generate")
	span.SetAttributes(attribute.Int("trip.total_days", 3))
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name":"Generate"`)
	assert.Contains(t, out, "trip.total_days")
	assert.Contains(t, out, serviceName)
}
