package codec

import "fmt"

// MaxDimension is the largest width or height the codec accepts, in
// pixels. The header field is a uint32, but no image editor this codec
// feeds handles anything close to 4 billion pixels on an axis, so the
// cap keeps hostile headers from driving huge allocations.
const MaxDimension = 1 << 19

// MaxPixels caps width*height. The worst case is 5 bytes per encoded
// pixel, so 400 million pixels keeps every buffer under 2 GB.
const MaxPixels = 400_000_000

// Colorspace tags how pixel values are to be interpreted downstream. It
// is pure metadata and never alters the chunk layout.
type Colorspace uint8

const (
	// ColorspaceSRGB marks sRGB channels with linear alpha.
	ColorspaceSRGB Colorspace = 0
	// ColorspaceLinear marks all channels as linear light.
	ColorspaceLinear Colorspace = 1
)

func (c Colorspace) String() string {
	switch c {
	case ColorspaceSRGB:
		return "sRGB"
	case ColorspaceLinear:
		return "linear"
	default:
		return fmt.Sprintf("Colorspace(%d)", uint8(c))
	}
}

// Image is a decoded QOI image: a dense row-major pixel array plus the
// header metadata. The image owns Pix exclusively; encode and decode
// never alias it, so independent calls are safe to run concurrently.
type Image struct {
	Width      int
	Height     int
	HasAlpha   bool
	Colorspace Colorspace

	// Pix holds exactly Width*Height pixels, row-major.
	Pix []Pixel
}

// NewImage allocates an image after validating its dimensions, so the
// width*height product is known not to overflow before any allocation.
func NewImage(width, height int, hasAlpha bool, cs Colorspace) (*Image, error) {
	if err := validateMeta(width, height, cs); err != nil {
		return nil, err
	}
	return &Image{
		Width:      width,
		Height:     height,
		HasAlpha:   hasAlpha,
		Colorspace: cs,
		Pix:        make([]Pixel, width*height),
	}, nil
}

func validateMeta(width, height int, cs Colorspace) error {
	if width <= 0 || width > MaxDimension {
		return fmt.Errorf("%w: width %d", ErrInvalidDimension, width)
	}
	if height <= 0 || height > MaxDimension {
		return fmt.Errorf("%w: height %d", ErrInvalidDimension, height)
	}
	if uint64(width)*uint64(height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	if cs != ColorspaceSRGB && cs != ColorspaceLinear {
		return fmt.Errorf("%w: %d", ErrUnsupportedColorspace, uint8(cs))
	}
	return nil
}

// validate checks the image before encoding.
func (m *Image) validate() error {
	if err := validateMeta(m.Width, m.Height, m.Colorspace); err != nil {
		return err
	}
	if len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("qoi: pixel buffer holds %d pixels, want %d", len(m.Pix), m.Width*m.Height)
	}
	if !m.HasAlpha {
		// A 3-channel stream never carries alpha, but the run, cache and
		// delta comparisons all include it, so a stray value would
		// desynchronize encoder state from the decoder's. Opaque only.
		for i, p := range m.Pix {
			if p.A != 255 {
				return fmt.Errorf("qoi: pixel %d has alpha %d in a 3-channel image", i, p.A)
			}
		}
	}
	return nil
}
