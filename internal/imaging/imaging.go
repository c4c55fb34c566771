// Package imaging decodes skin texture files into the raw RGBA byte layout
// stored in appearance records.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"io"
	"os"

	"github.com/zjrosen/skinstore/internal/log"
)

// ErrInvalidSize is returned for images whose dimensions are not a
// supported skin size.
var ErrInvalidSize = errors.New("invalid skin size")

// SupportedSizes lists the accepted skin dimensions.
var SupportedSizes = []image.Point{
	{X: 64, Y: 32},
	{X: 64, Y: 64},
	{X: 128, Y: 128},
}

// RawImage is a decoded skin: row-major, non-premultiplied RGBA, 4 bytes per pixel.
type RawImage struct {
	Width  int
	Height int
	Pix    []byte
}

// DecodeSkinFile reads and decodes the image at path.
func DecodeSkinFile(path string) (RawImage, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path resolved against the data dir
	if err != nil {
		return RawImage{}, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := DecodeSkin(f)
	if err != nil {
		log.ErrorErr(log.CatImage, "Failed to decode skin image", err, "path", path)
		return RawImage{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	log.Debug(log.CatImage, "Decoded skin image", "path", path, "width", img.Width, "height", img.Height)
	return img, nil
}

// DecodeSkin decodes an image stream and converts it to raw skin bytes.
func DecodeSkin(r io.Reader) (RawImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return RawImage{}, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if !supported(w, h) {
		return RawImage{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	pix := make([]byte, 0, w*h*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return RawImage{Width: w, Height: h, Pix: pix}, nil
}

func supported(w, h int) bool {
	for _, s := range SupportedSizes {
		if s.X == w && s.Y == h {
			return true
		}
	}
	return false
}
