package qoi

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// addMinimalSeeds adds hand-crafted minimal streams to the corpus.
func addMinimalSeeds(f *testing.F) {
	f.Helper()
	// 1x1 red.
	{
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
		var buf bytes.Buffer
		if err := Encode(&buf, img, nil); err == nil {
			f.Add(buf.Bytes())
		}
	}
	// 4x4 translucent.
	{
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
			}
		}
		var buf bytes.Buffer
		if err := Encode(&buf, img, nil); err == nil {
			f.Add(buf.Bytes())
		}
	}
	// 3x1 RGB without alpha.
	{
		img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
		var buf bytes.Buffer
		if err := Encode(&buf, img, &Options{DropAlpha: true}); err == nil {
			f.Add(buf.Bytes())
		}
	}
	// Bare header with no chunk stream.
	f.Add([]byte("qoif\x00\x00\x00\x01\x00\x00\x00\x01\x04\x00"))
}

// FuzzDecode ensures that no input can cause a panic or an out-of-bounds
// read in the decoder.
func FuzzDecode(f *testing.F) {
	addMinimalSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		Decode(bytes.NewReader(data)) //nolint:errcheck
	})
}

// FuzzDecodeConfig ensures header parsing never panics on arbitrary input.
func FuzzDecodeConfig(f *testing.F) {
	addMinimalSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		DecodeConfig(bytes.NewReader(data)) //nolint:errcheck
	})
}

// FuzzRoundtrip constructs a small NRGBA image from fuzzer input, encodes
// it, decodes it back and verifies the pixels match exactly.
func FuzzRoundtrip(f *testing.F) {
	seed := make([]byte, 8*8*4)
	for i := range seed {
		seed[i] = byte(i * 3)
	}
	f.Add(seed)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 4 {
			return
		}
		w := int(data[0]%32) + 1
		h := int(data[1]%32) + 1
		pixData := data[2:]
		needed := w * h * 4
		if len(pixData) < needed {
			padded := make([]byte, needed)
			copy(padded, pixData)
			pixData = padded
		} else {
			pixData = pixData[:needed]
		}

		img := &image.NRGBA{
			Pix:    pixData,
			Stride: w * 4,
			Rect:   image.Rect(0, 0, w, h),
		}

		var buf bytes.Buffer
		if err := Encode(&buf, img, nil); err != nil {
			t.Fatalf("Encode: %v", err)
		}

		decoded, err := Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Encode succeeded but Decode failed: %v", err)
		}

		got := decoded.(*image.NRGBA)
		b := got.Bounds()
		if b.Dx() != w || b.Dy() != h {
			t.Fatalf("dimensions mismatch: encoded %dx%d, decoded %dx%d", w, h, b.Dx(), b.Dy())
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if got.NRGBAAt(x, y) != img.NRGBAAt(x, y) {
					t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got.NRGBAAt(x, y), img.NRGBAAt(x, y))
				}
			}
		}
	})
}
