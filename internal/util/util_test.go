package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 42))
	assert.Equal(t, 42, Clamp(100, 0, 42))
	assert.Equal(t, 10, Clamp(10, 0, 42))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, -5, Min(-5, -1))
}
