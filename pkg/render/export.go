package render

import (
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// ExportPNG writes the framebuffer to disk, optionally resampled. A scale
// of 1 writes the raw pixels; larger scales upsample with Catmull-Rom so
// exported frames do not look blocky at terminal resolution.
func ExportPNG(fb *Framebuffer, path string, scale int) error {
	img := fb.ToImage()

	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
