package proximity_test

import (
	"testing"

	"github.com/reehan7086/EchoVibe-sub000/pkg/proximity"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, proximity.Progress(5, 0))
	assert.Equal(t, 0.0, proximity.Progress(10, 10))
	assert.Equal(t, 0.0, proximity.Progress(15, 10))
	assert.InDelta(t, 50.0, proximity.Progress(5, 10), 1e-9)
	assert.InDelta(t, 100.0, proximity.Progress(0, 10), 1e-9)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Very close", proximity.Label(90))
	assert.Equal(t, "Nearby", proximity.Label(60))
	assert.Equal(t, "In your area", proximity.Label(30))
	assert.Equal(t, "Within range", proximity.Label(10))
	assert.Equal(t, "", proximity.Label(0))
}
