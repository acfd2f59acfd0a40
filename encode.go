package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/deepteams/qoi/internal/codec"
)

// Options controls QOI encoding metadata. A nil *Options encodes RGBA
// pixels tagged as sRGB, which is what nearly every producer wants.
type Options struct {
	// Colorspace is recorded in the header for downstream consumers.
	// It does not change how pixels are compressed.
	Colorspace Colorspace

	// DropAlpha writes a three-channel RGB file. Source alpha is
	// discarded and every pixel decodes as fully opaque.
	DropAlpha bool
}

// Encode writes m to w in QOI format. Images that are not *image.NRGBA
// are converted first; unlike lossy formats this is the only place the
// codec can lose information (premultiplied color models round-trip
// through NRGBA).
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = &Options{}
	}

	b := m.Bounds()
	img, err := codec.NewImage(b.Dx(), b.Dy(), !o.DropAlpha, o.Colorspace)
	if err != nil {
		return err
	}
	fillPixels(img, toNRGBA(m), o.DropAlpha)

	data, err := codec.Encode(img)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("qoi: writing data: %w", err)
	}
	return nil
}

// toNRGBA converts any image to *image.NRGBA without premultiplying.
func toNRGBA(m image.Image) *image.NRGBA {
	if img, ok := m.(*image.NRGBA); ok {
		return img
	}
	b := m.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			img.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return img
}

// fillPixels flattens src row-major into img.Pix. With dropAlpha set the
// alpha channel is forced opaque so the encoder never needs RGBA chunks.
func fillPixels(img *codec.Image, src *image.NRGBA, dropAlpha bool) {
	b := src.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := src.PixOffset(b.Min.X, y)
		for x := 0; x < img.Width; x++ {
			p := codec.Pixel{
				R: src.Pix[off],
				G: src.Pix[off+1],
				B: src.Pix[off+2],
				A: src.Pix[off+3],
			}
			if dropAlpha {
				p.A = 255
			}
			img.Pix[i] = p
			i++
			off += 4
		}
	}
}
