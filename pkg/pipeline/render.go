package pipeline

import (
	"image"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/raster"
)

// Render generates output artifacts in the requested formats. The
// rasterized image is shared across the png and b64 formats, so asking
// for both costs one rasterization.
func Render(rendered *layout.RenderedNode, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var img *image.NRGBA
	rasterized := func() *image.NRGBA {
		if img == nil {
			img = raster.Rasterize(rendered)
		}
		return img
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data = raster.Encode(rasterized())
		case FormatB64:
			data = []byte(raster.EncodeBase64(rasterized()))
		case FormatJSON:
			data, err = MarshalLayout(rendered)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data. This
// is the path taken when the layout stage was served from cache.
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	rendered, err := UnmarshalLayout(layoutData)
	if err != nil {
		return nil, err
	}
	return Render(rendered, opts)
}
