package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/mfeldt/renderbox/pkg/layout"
)

// Palette for nodes without an explicit background, indexed by tree
// depth modulo the palette size. Border entries are pre-darkened fills.
var (
	fillPalette = []color.NRGBA{
		{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}, // light blue
		{R: 0xe8, G: 0xf5, B: 0xe9, A: 0xff}, // light green
		{R: 0xff, G: 0xf3, B: 0xe0, A: 0xff}, // light amber
		{R: 0xf3, G: 0xe5, B: 0xf5, A: 0xff}, // light purple
		{R: 0xff, G: 0xeb, B: 0xee, A: 0xff}, // light red
		{R: 0xe0, G: 0xf7, B: 0xfa, A: 0xff}, // light cyan
	}
	borderPalette = []color.NRGBA{
		{R: 0x90, G: 0xca, B: 0xf9, A: 0xff},
		{R: 0xa5, G: 0xd6, B: 0xa7, A: 0xff},
		{R: 0xff, G: 0xcc, B: 0x80, A: 0xff},
		{R: 0xce, G: 0x93, B: 0xd8, A: 0xff},
		{R: 0xef, G: 0x9a, B: 0x9a, A: 0xff},
		{R: 0x80, G: 0xde, B: 0xea, A: 0xff},
	}
)

// background selects the white canvas fill.
var background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// paletteFill returns the depth-selected fill color. Depth is a plain
// parameter, never shared state, so rasterization stays a pure function.
func paletteFill(depth int) color.NRGBA {
	return fillPalette[depth%len(fillPalette)]
}

// paletteBorder returns the border entry matching paletteFill(depth).
func paletteBorder(depth int) color.NRGBA {
	return borderPalette[depth%len(borderPalette)]
}

// darken multiplies the color channels of c by 0.8, clamped to [0, 255].
// Alpha is preserved so translucent backgrounds keep their coverage.
func darken(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * 0.8),
		G: uint8(float64(c.G) * 0.8),
		B: uint8(float64(c.B) * 0.8),
		A: c.A,
	}
}

// toNRGBA converts a layout color to the image color type.
func toNRGBA(c layout.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Rasterize paints the rendered tree into a fresh NRGBA image. The
// canvas spans the root frame rounded up, never smaller than 1x1. The
// caller owns the returned image exclusively.
func Rasterize(root *layout.RenderedNode) *image.NRGBA {
	w := int(math.Ceil(root.Frame.Width))
	h := int(math.Ceil(root.Frame.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, background)
		}
	}

	paintNode(img, root, 0, 0, 0)
	return img
}

// paintNode draws one node and then its children on top of it. offsetX
// and offsetY accumulate the parent chain's origin, since frames are
// stored relative to their container.
func paintNode(img *image.NRGBA, n *layout.RenderedNode, offsetX, offsetY float64, depth int) {
	x := offsetX + n.Frame.X
	y := offsetY + n.Frame.Y

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := int(math.Ceil(x + n.Frame.Width))
	y1 := int(math.Ceil(y + n.Frame.Height))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	bounds := img.Bounds()
	if x0 < bounds.Max.X && y0 < bounds.Max.Y && x1 > bounds.Min.X && y1 > bounds.Min.Y {
		fill := paletteFill(depth)
		border := paletteBorder(depth)
		if n.Background != nil {
			fill = toNRGBA(*n.Background)
			border = darken(fill)
		}

		cx0, cy0 := max(x0, bounds.Min.X), max(y0, bounds.Min.Y)
		cx1, cy1 := min(x1, bounds.Max.X), min(y1, bounds.Max.Y)
		for py := cy0; py < cy1; py++ {
			for px := cx0; px < cx1; px++ {
				// The 1px border lives on the rectangle's outer edge.
				if px == x0 || px == x1-1 || py == y0 || py == y1-1 {
					img.SetNRGBA(px, py, border)
				} else {
					img.SetNRGBA(px, py, fill)
				}
			}
		}
	}

	for _, c := range n.Children {
		paintNode(img, c, x, y, depth+1)
	}
}
