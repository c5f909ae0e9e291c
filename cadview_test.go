package cadview

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseButton(t *testing.T) {
	for b := MouseButtonLeft; b <= MouseButtonForward; b++ {
		got, err := ParseMouseButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	assert.Equal(t, "unknown", MouseButton(42).String())
	_, err := ParseMouseButton("Left")
	assert.Error(t, err)
}

func TestModeForButton(t *testing.T) {
	tests := []struct {
		button MouseButton
		mode   InteractionMode
		ok     bool
	}{
		{MouseButtonLeft, ModeRotating, true},
		{MouseButtonRight, ModeZooming, true},
		{MouseButtonMiddle, ModePanning, true},
		{MouseButtonBack, ModeIdle, false},
		{MouseButtonForward, ModeIdle, false},
	}
	for _, tt := range tests {
		mode, ok := modeForButton(tt.button)
		assert.Equal(t, tt.mode, mode, tt.button.String())
		assert.Equal(t, tt.ok, ok, tt.button.String())
	}
	assert.Equal(t, "panning", ModePanning.String())
	assert.Equal(t, "unknown", InteractionMode(9).String())
}

func TestColorToRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, ColorWhite.toRGBA())
	assert.Equal(t, color.RGBA{128, 0, 0, 128}, Color{R: 1, A: 0.5}.toRGBA())
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, Color{R: -1, G: 2, A: 3}.toRGBA())
}
