package codec

// Encode serializes img into a complete QOI stream. The output buffer is
// sized for the worst case up front (5 bytes per pixel plus header and
// end marker), so the append calls below never reallocate.
func Encode(img *Image) ([]byte, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	h := Header{
		Width:      img.Width,
		Height:     img.Height,
		Channels:   ChannelsRGB,
		Colorspace: img.Colorspace,
	}
	if img.HasAlpha {
		h.Channels = ChannelsRGBA
	}

	buf := make([]byte, 0, HeaderSize+len(img.Pix)*MaxBytesPerPixel+EndMarkerSize)
	buf = appendHeader(buf, h)
	buf = appendChunks(buf, img.Pix, img.HasAlpha)
	return append(buf, endMarker[:]...), nil
}

// appendChunks encodes the pixel sequence onto buf. The previous pixel
// and the recency cache are tracked purely from the input sequence,
// never re-derived from emitted bytes, which is what guarantees the
// decoder reconstructs identical state.
func appendChunks(buf []byte, pix []Pixel, hasAlpha bool) []byte {
	var cache recencyCache
	prev := Pixel{A: 255}

	n := len(pix)
	for i := 0; i < n; {
		px := pix[i]

		if px == prev {
			// Extend the streak, emitting a chunk each time it reaches 62
			// or the matching pixels end. A run is never 0 or longer than 62.
			run := 0
			for {
				run++
				i++
				more := i < n && pix[i] == prev
				if run == maxRunLength || !more {
					buf = append(buf, opRun|uint8(run-1))
					run = 0
				}
				if !more {
					break
				}
			}
			continue
		}

		if slot, ok := cache.contains(px); ok {
			buf = append(buf, opIndex|slot)
		} else {
			cache.insert(px)

			if !hasAlpha || px.A == prev.A {
				// Deltas are 8-bit signed with silent wraparound: a red
				// step from 255 to 0 is +1, not -255. The luma biases wrap
				// the same way; the decoder's modular sums undo both.
				dr := int8(px.R - prev.R)
				dg := int8(px.G - prev.G)
				db := int8(px.B - prev.B)
				drdg := dr - dg
				dbdg := db - dg

				switch {
				case -2 <= dr && dr <= 1 &&
					-2 <= dg && dg <= 1 &&
					-2 <= db && db <= 1:
					buf = append(buf, opDiff|uint8(dr+2)<<4|uint8(dg+2)<<2|uint8(db+2))
				case -32 <= dg && dg <= 31 &&
					-8 <= drdg && drdg <= 7 &&
					-8 <= dbdg && dbdg <= 7:
					buf = append(buf, opLuma|uint8(dg+32), uint8(drdg+8)<<4|uint8(dbdg+8))
				default:
					buf = append(buf, opRGB, px.R, px.G, px.B)
				}
			} else {
				buf = append(buf, opRGBA, px.R, px.G, px.B, px.A)
			}
		}

		prev = px
		i++
	}
	return buf
}
