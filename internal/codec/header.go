package codec

import (
	"encoding/binary"
	"fmt"
)

// Channel counts stored in the header. The count is informative only:
// both variants use the same chunk stream, an RGB file simply never
// carries an RGBA chunk.
const (
	ChannelsRGB  uint8 = 3
	ChannelsRGBA uint8 = 4
)

// Header is the fixed 14-byte QOI preamble. Width and height are stored
// big-endian regardless of host byte order.
type Header struct {
	Width      int
	Height     int
	Channels   uint8
	Colorspace Colorspace
}

// HasAlpha reports whether the file carries an alpha channel.
func (h Header) HasAlpha() bool {
	return h.Channels == ChannelsRGBA
}

// ParseHeader reads and validates the fixed header at the start of data.
// It has no side effects and reads nothing past the first 14 bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d byte header, want %d", ErrUnexpectedEOF, len(data), HeaderSize)
	}
	if string(data[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: % x", ErrBadMagic, data[:4])
	}

	width := binary.BigEndian.Uint32(data[4:8])
	height := binary.BigEndian.Uint32(data[8:12])
	channels := data[12]
	cs := Colorspace(data[13])

	if channels != ChannelsRGB && channels != ChannelsRGBA {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	if cs != ColorspaceSRGB && cs != ColorspaceLinear {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedColorspace, uint8(cs))
	}
	// Bounds are checked on the raw uint32 so an oversized field can
	// never wrap a smaller int.
	if width == 0 || width > MaxDimension {
		return Header{}, fmt.Errorf("%w: width %d", ErrInvalidDimension, width)
	}
	if height == 0 || height > MaxDimension {
		return Header{}, fmt.Errorf("%w: height %d", ErrInvalidDimension, height)
	}
	return Header{
		Width:      int(width),
		Height:     int(height),
		Channels:   channels,
		Colorspace: cs,
	}, nil
}

// appendHeader serializes h onto dst. The caller validates h first.
func appendHeader(dst []byte, h Header) []byte {
	dst = append(dst, Magic...)
	dst = binary.BigEndian.AppendUint32(dst, uint32(h.Width))
	dst = binary.BigEndian.AppendUint32(dst, uint32(h.Height))
	return append(dst, h.Channels, uint8(h.Colorspace))
}
