// Package cover synthesizes placeholder album art for albums without a
// cover.png: a solid color derived from a hash of the title, with the
// album's initials drawn on top.
package cover

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Hue maps a title to a stable hue in [0, 360) via FNV-1a.
func Hue(title string) float64 {
	h := fnv.New32a()
	h.Write([]byte(title))
	return float64(h.Sum32() % 360)
}

// Color returns the placeholder background color for a title
// (full saturation, 45% lightness).
func Color(title string) colorful.Color {
	return colorful.Hsl(Hue(title), 1.0, 0.45)
}

// Initials returns the uppercased first letters of up to three words of the
// title, or "ALB" when the title yields nothing.
func Initials(title string) string {
	var b strings.Builder
	for _, w := range strings.Fields(title) {
		for _, r := range w {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		if b.Len() >= 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "ALB"
	}
	return b.String()
}

// Image renders a size x size placeholder cover.
func Image(title string, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := Color(title)
	r, g, b := bg.RGB255()
	fill(img, color.RGBA{R: r, G: g, B: b, A: 255})
	drawInitials(img, Initials(title))
	return img
}

// WritePNG renders a placeholder cover and encodes it as PNG.
func WritePNG(w io.Writer, title string, size int) error {
	return png.Encode(w, Image(title, size))
}

func fill(img *image.RGBA, c color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawInitials rasterizes the initials with the basic bitmap face and
// nearest-neighbor upscales them onto the center of the cover, keeping the
// blocky look crisp at any output size.
func drawInitials(dst *image.RGBA, initials string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, initials).Ceil()
	h := face.Metrics().Height.Ceil()
	if w == 0 {
		return
	}

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 235}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: face.Metrics().Ascent},
	}
	d.DrawString(initials)

	size := dst.Bounds().Dx()
	targetW := size * 3 / 4
	targetH := targetW * h / w
	x0 := (size - targetW) / 2
	y0 := (size - targetH) / 2
	rect := image.Rect(x0, y0, x0+targetW, y0+targetH)
	xdraw.NearestNeighbor.Scale(dst, rect, small, small.Bounds(), xdraw.Over, nil)
}
