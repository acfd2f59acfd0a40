package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/deepteams/qoi/internal/codec"
)

func init() {
	image.RegisterFormat("qoi", codec.Magic, Decode, DecodeConfig)
}

// MaxDimension is the maximum allowed width or height for a QOI image,
// in pixels. The header stores dimensions as uint32, but anything past
// this cap is either hostile or a mistake and is rejected before any
// pixel buffer is allocated.
const MaxDimension = codec.MaxDimension

// Errors returned by the decoder and encoder. Decode wraps them with
// positional context; match with errors.Is.
var (
	ErrBadMagic              = codec.ErrBadMagic
	ErrUnsupportedChannels   = codec.ErrUnsupportedChannels
	ErrUnsupportedColorspace = codec.ErrUnsupportedColorspace
	ErrInvalidDimension      = codec.ErrInvalidDimension
	ErrUnexpectedEOF         = codec.ErrUnexpectedEOF
	ErrBadEndMarker          = codec.ErrBadEndMarker
	ErrTrailingData          = codec.ErrTrailingData
	ErrRunOverflow           = codec.ErrRunOverflow
	ErrTooLarge              = codec.ErrTooLarge
)

// Colorspace tags how the pixel values are to be interpreted downstream.
// It does not alter the encoded bits.
type Colorspace = codec.Colorspace

const (
	ColorspaceSRGB   = codec.ColorspaceSRGB
	ColorspaceLinear = codec.ColorspaceLinear
)

// HeaderInfo describes a QOI file's properties without decoding pixels.
type HeaderInfo struct {
	Width      int
	Height     int
	Channels   int // 3 (RGB) or 4 (RGBA)
	Colorspace Colorspace
	HasAlpha   bool
}

// readAll reads all data from r. If r implements Len() int (e.g.
// *bytes.Reader), a single exact-sized allocation is used instead of
// the repeated doublings that io.ReadAll performs.
func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		n := lr.Len()
		if n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// Decode reads a QOI image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("qoi: reading data: %w", err)
	}
	img, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	return nrgbaImage(img), nil
}

// DecodeConfig returns the color model and dimensions of a QOI image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	info, err := Info(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      info.Width,
		Height:     info.Height,
	}, nil
}

// Info reads QOI header fields without decoding pixel data.
func Info(r io.Reader) (*HeaderInfo, error) {
	var buf [codec.HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: short header", ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("qoi: reading header: %w", err)
	}
	return ParseHeader(buf[:])
}

// ParseHeader validates the 14-byte header at the start of data. It is
// useful for format sniffing without a full decode.
func ParseHeader(data []byte) (*HeaderInfo, error) {
	h, err := codec.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	return &HeaderInfo{
		Width:      h.Width,
		Height:     h.Height,
		Channels:   int(h.Channels),
		Colorspace: h.Colorspace,
		HasAlpha:   h.HasAlpha(),
	}, nil
}

// nrgbaImage copies a decoded pixel buffer into an *image.NRGBA.
func nrgbaImage(m *codec.Image) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		off := y * img.Stride
		for _, p := range row {
			img.Pix[off] = p.R
			img.Pix[off+1] = p.G
			img.Pix[off+2] = p.B
			img.Pix[off+3] = p.A
			off += 4
		}
	}
	return img
}
