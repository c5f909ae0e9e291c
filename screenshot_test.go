package cadview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"front/left", "front_left"},
		{"v1.2-final", "v1.2-final"},
		{"  padded  ", "padded"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"a:b*c?", "a_b_c_"},
		{"ünï", "_n_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), "sanitizeLabel(%q)", tt.in)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-transparent
		0, 0, 0, 0, // transparent
		200, 10, 10, 100, // over-bright premultiplied value clamps
	}
	img := unpremultiply(pixels, 2, 2)
	assert.Equal(t, 2, img.Rect.Dx())
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[0:4])
	assert.Equal(t, []byte{127, 63, 0, 128}, img.Pix[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, img.Pix[8:12])
	assert.Equal(t, []byte{255, 25, 25, 100}, img.Pix[12:16])
}

func TestScreenshotQueue(t *testing.T) {
	v := &Viewer{}
	v.Screenshot("one")
	v.Screenshot("two")
	assert.Equal(t, []string{"one", "two"}, v.screenshotQueue)
}
