package debugui

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayPadding = 6
	indentWidth    = 14
)

var (
	overlayBackground = color.RGBA{0, 0, 0, 180}
	overlayText       = color.RGBA{255, 255, 255, 255}
	overlayHeader     = color.RGBA{255, 255, 0, 255}
	overlaySelection  = color.RGBA{60, 90, 160, 255}
)

// Overlay rasterises panel lines into an RGBA image with a fixed bitmap font, for
// compositing over the frame or dumping to disk.
type Overlay struct {
	face font.Face
}

func NewOverlay() *Overlay {
	return &Overlay{face: basicfont.Face7x13}
}

func (o *Overlay) LineHeight() int {
	return o.face.Metrics().Height.Ceil()
}

// Measure returns the pixel size needed to draw lines.
func (o *Overlay) Measure(lines []Line) (int, int) {
	w := 0
	for _, l := range lines {
		lw := l.Depth*indentWidth + font.MeasureString(o.face, l.Text).Ceil()
		w = max(w, lw)
	}
	return w + 2*overlayPadding, len(lines)*o.LineHeight() + 2*overlayPadding
}

// Render draws lines onto a new image sized to fit them.
func (o *Overlay) Render(lines []Line) *image.RGBA {
	w, h := o.Measure(lines)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(overlayBackground), image.Point{}, draw.Src)

	ascent := o.face.Metrics().Ascent.Ceil()
	lineH := o.LineHeight()
	for i, l := range lines {
		top := overlayPadding + i*lineH
		if l.Selected {
			bar := image.Rect(0, top, w, top+lineH)
			draw.Draw(img, bar, image.NewUniform(overlaySelection), image.Point{}, draw.Src)
		}
		c := overlayText
		if l.Header {
			c = overlayHeader
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: o.face,
			Dot:  fixed.P(overlayPadding+l.Depth*indentWidth, top+ascent),
		}
		d.DrawString(l.Text)
	}
	return img
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encode overlay png")
	}
	return nil
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
