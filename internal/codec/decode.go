package codec

import (
	"bytes"
	"fmt"
)

// Decode decodes a complete QOI stream (header, chunks, end marker) into
// a freshly allocated Image. The decode is all-or-nothing: on any error
// the partially filled image is discarded and only the error returned.
func Decode(data []byte) (*Image, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(h.Width)*uint64(h.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, h.Width, h.Height)
	}

	img := &Image{
		Width:      h.Width,
		Height:     h.Height,
		HasAlpha:   h.HasAlpha(),
		Colorspace: h.Colorspace,
		Pix:        make([]Pixel, h.Width*h.Height),
	}
	if err := decodeChunks(data[HeaderSize:], img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeChunks fills pix from the chunk stream in data, then verifies
// that exactly the 8-byte end marker remains.
func decodeChunks(data []byte, pix []Pixel) error {
	var cache recencyCache
	px := Pixel{A: 255}

	pos := 0
	i, n := 0, len(pix)
	for i < n {
		// Every chunk is at most 5 bytes and every stream ends with the
		// 8-byte marker, so fewer than 8 remaining bytes means the stream
		// was cut short.
		if len(data)-pos < EndMarkerSize {
			return fmt.Errorf("%w: chunk stream ends at pixel %d of %d", ErrUnexpectedEOF, i, n)
		}

		// A 0x00 tag is both an index chunk for slot 0 and the first byte
		// of the end marker. The full 8-byte match is authoritative and
		// terminates the stream, even if the image is not complete yet.
		if data[pos] == 0 && bytes.Equal(data[pos:pos+EndMarkerSize], endMarker[:]) {
			break
		}

		tag := data[pos]
		pos++

		switch {
		case tag == opRGB:
			px.R, px.G, px.B = data[pos], data[pos+1], data[pos+2]
			pos += 3
			cache.insert(px)
			pix[i] = px
			i++

		case tag == opRGBA:
			px.R, px.G, px.B, px.A = data[pos], data[pos+1], data[pos+2], data[pos+3]
			pos += 4
			cache.insert(px)
			pix[i] = px
			i++

		case tag&maskOp == opIndex:
			// The slot already holds exactly this pixel; re-inserting it
			// would be a no-op.
			px = cache[tag&mask6]
			pix[i] = px
			i++

		case tag&maskOp == opDiff:
			px.R += ((tag >> 4) & mask2) - 2
			px.G += ((tag >> 2) & mask2) - 2
			px.B += (tag & mask2) - 2
			cache.insert(px)
			pix[i] = px
			i++

		case tag&maskOp == opLuma:
			drdb := data[pos]
			pos++
			dg := (tag & mask6) - 32
			px.R += dg - 8 + ((drdb >> 4) & mask4)
			px.G += dg
			px.B += dg - 8 + (drdb & mask4)
			cache.insert(px)
			pix[i] = px
			i++

		default: // opRun
			run := int(tag&mask6) + 1
			if i+run > n {
				return fmt.Errorf("%w: run of %d at pixel %d of %d", ErrRunOverflow, run, i, n)
			}
			for ; run > 0; run-- {
				pix[i] = px
				i++
			}
		}
	}

	rest := data[pos:]
	if len(rest) < EndMarkerSize {
		return fmt.Errorf("%w: %d trailing bytes, want %d byte end marker", ErrUnexpectedEOF, len(rest), EndMarkerSize)
	}
	if !bytes.Equal(rest[:EndMarkerSize], endMarker[:]) {
		return fmt.Errorf("%w: % x", ErrBadEndMarker, rest[:EndMarkerSize])
	}
	if len(rest) > EndMarkerSize {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, len(rest)-EndMarkerSize)
	}
	return nil
}
