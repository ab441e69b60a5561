package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMood(t *testing.T) {
	for _, m := range Moods {
		assert.True(t, ValidMood(m), m)
	}
	assert.False(t, ValidMood(""))
	assert.False(t, ValidMood("grumpy"))
	assert.False(t, ValidMood("Happy"))
}
