package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Desugar().Core().Enabled(zap.ErrorLevel))
}

func TestSetLoggerRoutesNamedChildren(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	Named("store").Infow("ping dropped", "bearing", 12)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "ping dropped", entries[0].Message)
	assert.EqualValues(t, 12, entries[0].ContextMap()["bearing"])
}
