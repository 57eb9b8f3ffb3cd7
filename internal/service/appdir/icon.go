package appdir

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholderSize is the edge length of the synthesized icon in pixels.
const placeholderSize = 256

// writePlaceholderIcon renders a plain square icon with the application
// name as a centered label. It keeps the layout invariant that the icon
// referenced by the desktop entry always exists, even when no icon asset
// was shipped with the build.
func writePlaceholderIcon(path, label string) error {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}

	width := drawer.MeasureString(label)
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(placeholderSize) - width) / 2,
		Y: fixed.I(placeholderSize / 2),
	}
	drawer.DrawString(label)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, regularFileMode)
	if err != nil {
		return err
	}

	if err = png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
