package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridLines(t *testing.T) {
	assert.Equal(t, []float32{0, 10, 20, 30}, gridLines(0, 30, 10))
	assert.Equal(t, []float32{20, 30}, gridLines(12.5, 35, 10))
	assert.Empty(t, gridLines(11, 19, 10))
}
