package codec

import (
	"errors"
	"testing"
)

// validHeader returns a well-formed header for a 3x2 RGBA sRGB file.
func validHeader() []byte {
	return []byte{'q', 'o', 'i', 'f', 0, 0, 0, 3, 0, 0, 0, 2, 4, 0}
}

func TestParseHeaderFields(t *testing.T) {
	h, err := ParseHeader(validHeader())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Width != 3 || h.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", h.Width, h.Height)
	}
	if h.Channels != ChannelsRGBA {
		t.Errorf("Channels = %d, want %d", h.Channels, ChannelsRGBA)
	}
	if h.Colorspace != ColorspaceSRGB {
		t.Errorf("Colorspace = %v, want %v", h.Colorspace, ColorspaceSRGB)
	}
	if !h.HasAlpha() {
		t.Error("HasAlpha() = false, want true")
	}
}

func TestParseHeaderBigEndian(t *testing.T) {
	data := validHeader()
	data[4], data[5], data[6], data[7] = 0x00, 0x01, 0x02, 0x03
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Width != 0x010203 {
		t.Errorf("Width = %d, want %d", h.Width, 0x010203)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{"short buffer", func(b []byte) []byte { return b[:13] }, ErrUnexpectedEOF},
		{"empty buffer", func(b []byte) []byte { return nil }, ErrUnexpectedEOF},
		{"wrong magic", func(b []byte) []byte { b[0] = 'Q'; return b }, ErrBadMagic},
		{"png magic", func(b []byte) []byte { copy(b, "\x89PNG"); return b }, ErrBadMagic},
		{"two channels", func(b []byte) []byte { b[12] = 2; return b }, ErrUnsupportedChannels},
		{"five channels", func(b []byte) []byte { b[12] = 5; return b }, ErrUnsupportedChannels},
		{"colorspace 2", func(b []byte) []byte { b[13] = 2; return b }, ErrUnsupportedColorspace},
		{"colorspace 255", func(b []byte) []byte { b[13] = 255; return b }, ErrUnsupportedColorspace},
		{"zero width", func(b []byte) []byte { b[7] = 0; return b }, ErrInvalidDimension},
		{"zero height", func(b []byte) []byte { b[11] = 0; return b }, ErrInvalidDimension},
		{"huge width", func(b []byte) []byte { b[4] = 0xFF; return b }, ErrInvalidDimension},
		{"huge height", func(b []byte) []byte { b[8] = 0xFF; return b }, ErrInvalidDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.mutate(validHeader()))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseHeader error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppendHeaderRoundTrip(t *testing.T) {
	in := Header{Width: 640, Height: 480, Channels: ChannelsRGB, Colorspace: ColorspaceLinear}
	data := appendHeader(nil, in)
	if len(data) != HeaderSize {
		t.Fatalf("appendHeader wrote %d bytes, want %d", len(data), HeaderSize)
	}
	if string(data[:4]) != Magic {
		t.Errorf("magic = %q, want %q", data[:4], Magic)
	}
	out, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestHashSlotRange(t *testing.T) {
	pixels := []Pixel{
		{},
		{A: 255},
		{255, 255, 255, 255},
		{1, 2, 3, 4},
		{200, 100, 50, 25},
	}
	for _, p := range pixels {
		if slot := hash(p); slot >= cacheSize {
			t.Errorf("hash(%+v) = %d, want < %d", p, slot, cacheSize)
		}
	}
	// The reference slot formula uses unbounded integers; the byte
	// arithmetic must agree with it.
	p := Pixel{200, 150, 100, 255}
	want := uint8((3*200 + 5*150 + 7*100 + 11*255) % 64)
	if got := hash(p); got != want {
		t.Errorf("hash(%+v) = %d, want %d", p, got, want)
	}
}
