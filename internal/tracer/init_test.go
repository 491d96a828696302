package tracer

import (
	"context"
	"testing"

	"medfollow-client/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDisabledTracerIsNoop(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: false}, "medfollow-client")
	assert.NoError(t, shutdown(context.Background()))
}
