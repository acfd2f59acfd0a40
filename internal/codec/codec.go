// Package codec implements the QOI byte format: the fixed 14-byte header
// and the chunk stream that encodes a row-major pixel sequence using
// delta, index and run chunks.
//
// The format is bit-exact. Chunk layout, the recency-cache hash and the
// modulo-256 channel arithmetic are all part of the wire contract, so
// none of them may be "improved" without breaking every existing file.
//
// Reference: the QOI specification at qoiformat.org.
package codec

// Magic is the four-byte tag that opens every QOI file.
const Magic = "qoif"

const (
	// HeaderSize is the size of the fixed preamble in bytes.
	HeaderSize = 14
	// EndMarkerSize is the size of the stream-terminating sentinel.
	EndMarkerSize = 8
	// MaxBytesPerPixel is the worst-case chunk size (a literal RGBA).
	MaxBytesPerPixel = 5

	maxRunLength = 62
	cacheSize    = 64
)

// endMarker terminates every chunk stream. Its first byte collides with
// an index chunk for slot 0, which is why the decoder peeks the full
// eight bytes before interpreting a 0x00 tag.
var endMarker = [EndMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Chunk tags. The two-byte ops are full-byte tags; the rest occupy the
// top two bits with their payload packed below.
const (
	opIndex uint8 = 0x00 // 00xxxxxx  cache slot
	opDiff  uint8 = 0x40 // 01xxxxxx  per-channel delta in [-2,1]
	opLuma  uint8 = 0x80 // 10xxxxxx  green delta plus red/blue biases
	opRun   uint8 = 0xC0 // 11xxxxxx  run of 1-62 identical pixels
	opRGB   uint8 = 0xFE // literal RGB, alpha unchanged
	opRGBA  uint8 = 0xFF // literal RGBA

	maskOp uint8 = 0xC0
	mask6  uint8 = 0x3F
	mask4  uint8 = 0x0F
	mask2  uint8 = 0x03
)

// Pixel is one pixel with four unsigned 8-bit channels. Channel
// arithmetic in the diff and luma chunks wraps modulo 256; uint8
// wraparound is load-bearing, not an accident.
type Pixel struct {
	R, G, B, A uint8
}

// hash maps a pixel to its recency-cache slot. The byte multiplications
// wrap, but 64 divides 256 so the slot is unaffected.
func hash(p Pixel) uint8 {
	return (3*p.R + 5*p.G + 7*p.B + 11*p.A) % cacheSize
}

// recencyCache is the 64-slot direct-mapped table of recently seen
// pixels, zero-initialized at the start of each encode or decode pass.
// Every non-run, non-index chunk unconditionally overwrites the slot for
// its pixel's hash; there is no eviction policy and no true LRU order.
type recencyCache [cacheSize]Pixel

func (c *recencyCache) insert(p Pixel) {
	c[hash(p)] = p
}

// contains reports whether p sits at its own hash slot, returning the
// slot for an index chunk when it does.
func (c *recencyCache) contains(p Pixel) (uint8, bool) {
	slot := hash(p)
	return slot, c[slot] == p
}
