package engine2d

import (
	"image"
	"image/color"
	"testing"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUploadInstancesCopiesAndReuses(t *testing.T) {
	r := NewSpriteRenderer()
	in := []Instance{{Rotation: 1}, {Rotation: 2}, {Rotation: 3}}
	r.UploadInstances(in)
	in[0].Rotation = 99

	got := r.Instances()
	if len(got) != 3 || got[0].Rotation != 1 {
		t.Fatalf("Instances = %+v, want a copy of the upload", got)
	}
	if cap(got) != 4 {
		t.Errorf("cap = %d, want 4", cap(got))
	}

	// A smaller upload fully replaces the previous one and keeps the buffer.
	first := &got[0]
	r.UploadInstances(in[:1])
	got = r.Instances()
	if len(got) != 1 || &got[0] != first {
		t.Errorf("second upload len = %d, buffer reused = %v", len(got), &got[0] == first)
	}
}

func TestSubRect(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 64)
	atlas := NewAtlas(2, 2, 32)
	s := NewSprite(Splat(1), 3)
	inst := NewInstance(NewTransform(Vec2{}), &s, atlas)

	got := subRect(bounds, 64, 64, &inst)
	if got != image.Rect(32, 32, 64, 64) {
		t.Errorf("subRect = %v, want (32,32)-(64,64)", got)
	}

	// Offset bounds, as for a sub-image texture.
	offset := image.Rect(100, 200, 164, 264)
	got = subRect(offset, 64, 64, &inst)
	if got != image.Rect(132, 232, 164, 264) {
		t.Errorf("offset subRect = %v", got)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if got := (Color{2, -1, 0, 1}).toRGBA(); got != (color.RGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("toRGBA out of range = %v, want clamped", got)
	}
}
